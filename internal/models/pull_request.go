package models

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

// issueMention matches GitHub closing references like "Fixes #123" or "closed #7".
var issueMention = regexp.MustCompile(`(?i)\b(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?)\s+#(\d+)`)

// PullRequest represents a GitHub pull request
type PullRequest struct {
	ID             int64
	Number         int
	Title          string
	Body           string
	State          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ClosedAt       *time.Time
	MergedAt       *time.Time
	Assignee       string
	MergeCommitSHA string
	Labels         []string

	// commits are registered after construction by the caller that
	// correlates commits to the pull request. The list only grows.
	commits []Commit
}

// IsMerged reports whether the pull request has been merged
func (p *PullRequest) IsMerged() bool {
	return p.MergedAt != nil
}

// IsClosed reports whether the pull request is closed
func (p *PullRequest) IsClosed() bool {
	return p.State == StateClosed || p.ClosedAt != nil
}

// ContainsLabels reports whether the pull request carries at least one of the given label names
func (p *PullRequest) ContainsLabels(names []string) bool {
	return containsAny(p.Labels, names)
}

// MentionedIssues returns the numbers of issues referenced in the body with
// a closing keyword, deduplicated and in ascending order.
func (p *PullRequest) MentionedIssues() []int {
	seen := make(map[int]struct{})
	for _, match := range issueMention.FindAllStringSubmatch(p.Body, -1) {
		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		seen[number] = struct{}{}
	}

	numbers := make([]int, 0, len(seen))
	for number := range seen {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)
	return numbers
}

// BodyContainsIssueMention reports whether the body references at least one issue
func (p *PullRequest) BodyContainsIssueMention() bool {
	return len(p.MentionedIssues()) > 0
}

// RegisterCommit associates a commit with the pull request
func (p *PullRequest) RegisterCommit(commit Commit) {
	p.commits = append(p.commits, commit)
}

// CommitsCount returns the number of registered commits
func (p *PullRequest) CommitsCount() int {
	return len(p.commits)
}

// Commits returns the registered commits in registration order
func (p *PullRequest) Commits() []Commit {
	commits := make([]Commit, len(p.commits))
	copy(commits, p.commits)
	return commits
}
