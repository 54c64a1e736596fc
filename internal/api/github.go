package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v57/github"
	"github.com/wesm/github-action-support/internal/models"
	"golang.org/x/oauth2"
)

// GitHubClient represents a client for the GitHub API
type GitHubClient struct {
	client *github.Client
}

// NewGitHubClient creates a new GitHub API client. The client waits out
// secondary rate limits transparently; the primary rate limit is surfaced
// to callers via CoreRateLimit.
func NewGitHubClient(token string) (*GitHubClient, error) {
	var base http.RoundTripper

	if token != "" {
		// Authenticate every request when a token is provided
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		base = &oauth2.Transport{Source: ts}
	}

	httpClient, err := github_ratelimit.NewRateLimitWaiterClient(base)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit client: %w", err)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{client: client}, nil
}

// NewGitHubClientFromRaw wraps an already-configured go-github client.
func NewGitHubClientFromRaw(client *github.Client) *GitHubClient {
	return &GitHubClient{client: client}
}

// ParseRepositoryFullName splits an "owner/name" identifier into its parts
func ParseRepositoryFullName(fullName string) (string, string, error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format, expected 'owner/name', got '%s'", fullName)
	}
	return parts[0], parts[1], nil
}

// IsNotFound reports whether err is a GitHub "not found" response.
func IsNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

// GetRepository gets a repository by owner and name
func (c *GitHubClient) GetRepository(ctx context.Context, owner, name string) (*models.Repository, error) {
	repo, _, err := c.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}

	return ConvertRepository(repo), nil
}

// GetLatestRelease gets the latest published release of a repository
func (c *GitHubClient) GetLatestRelease(ctx context.Context, owner, name string) (*models.Release, error) {
	release, _, err := c.client.Repositories.GetLatestRelease(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest release: %w", err)
	}

	return ConvertRelease(release), nil
}

// GetIssue gets a single issue by number
func (c *GitHubClient) GetIssue(ctx context.Context, owner, name string, number int) (*models.Issue, error) {
	issue, _, err := c.client.Issues.Get(ctx, owner, name, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return ConvertIssue(issue), nil
}

// ListIssues lists issues for a repository in the given state, optionally
// since a specific time. Every state is covered by a single request when
// state is "all".
func (c *GitHubClient) ListIssues(ctx context.Context, owner, name string, since time.Time, state string) ([]*models.Issue, error) {
	var allIssues []*models.Issue
	opts := &github.IssueListByRepoOptions{
		State: state,
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	if !since.IsZero() {
		opts.Since = since
	}

	for {
		issues, resp, err := c.client.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}

		for _, issue := range issues {
			allIssues = append(allIssues, ConvertIssue(issue))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allIssues, nil
}

// ListClosedPullRequests lists the pull requests of a repository that are in
// the "closed" state. Open pull requests are never returned.
func (c *GitHubClient) ListClosedPullRequests(ctx context.Context, owner, name string) ([]*models.PullRequest, error) {
	var allPulls []*models.PullRequest
	opts := &github.PullRequestListOptions{
		State: "closed",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	for {
		pulls, resp, err := c.client.PullRequests.List(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests: %w", err)
		}

		for _, pull := range pulls {
			allPulls = append(allPulls, ConvertPullRequest(pull))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allPulls, nil
}

// ListCommits lists all commits of a repository
func (c *GitHubClient) ListCommits(ctx context.Context, owner, name string) ([]*models.Commit, error) {
	var allCommits []*models.Commit
	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	for {
		commits, resp, err := c.client.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits: %w", err)
		}

		for _, commit := range commits {
			allCommits = append(allCommits, ConvertCommit(commit))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allCommits, nil
}

// RateLimit describes the core REST quota at a point in time.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// CoreRateLimit queries the current core rate limit status
func (c *GitHubClient) CoreRateLimit(ctx context.Context) (*RateLimit, error) {
	limits, _, err := c.client.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate limit: %w", err)
	}

	core := limits.GetCore()
	if core == nil {
		return nil, errors.New("rate limit response has no core quota")
	}
	return &RateLimit{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Time,
	}, nil
}
