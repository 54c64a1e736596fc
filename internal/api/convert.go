package api

import (
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/wesm/github-action-support/internal/models"
)

// ConvertRepository converts a GitHub repository to our model
func ConvertRepository(repo *github.Repository) *models.Repository {
	return &models.Repository{
		Owner:     repo.GetOwner().GetLogin(),
		Name:      repo.GetName(),
		FullName:  repo.GetFullName(),
		CreatedAt: repo.GetCreatedAt().Time,
	}
}

// ConvertRelease converts a GitHub release to our model
func ConvertRelease(release *github.RepositoryRelease) *models.Release {
	var publishedAt *time.Time
	if release.PublishedAt != nil {
		t := release.PublishedAt.Time
		publishedAt = &t
	}

	return &models.Release{
		TagName:     release.GetTagName(),
		CreatedAt:   release.GetCreatedAt().Time,
		PublishedAt: publishedAt,
	}
}

// ConvertIssue converts a GitHub issue to our model. A missing body becomes
// an empty string.
func ConvertIssue(issue *github.Issue) *models.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	return &models.Issue{
		ID:          issue.GetID(),
		Number:      issue.GetNumber(),
		Title:       issue.GetTitle(),
		Body:        issue.GetBody(),
		State:       issue.GetState(),
		StateReason: issue.GetStateReason(),
		CreatedAt:   issue.GetCreatedAt().Time,
		Labels:      labels,
	}
}

// ConvertPullRequest converts a GitHub pull request to our model
func ConvertPullRequest(pull *github.PullRequest) *models.PullRequest {
	var closedAt, mergedAt *time.Time
	if pull.ClosedAt != nil {
		t := pull.ClosedAt.Time
		closedAt = &t
	}
	if pull.MergedAt != nil {
		t := pull.MergedAt.Time
		mergedAt = &t
	}

	labels := make([]string, 0, len(pull.Labels))
	for _, label := range pull.Labels {
		labels = append(labels, label.GetName())
	}

	return &models.PullRequest{
		ID:             pull.GetID(),
		Number:         pull.GetNumber(),
		Title:          pull.GetTitle(),
		Body:           pull.GetBody(),
		State:          pull.GetState(),
		CreatedAt:      pull.GetCreatedAt().Time,
		UpdatedAt:      pull.GetUpdatedAt().Time,
		ClosedAt:       closedAt,
		MergedAt:       mergedAt,
		Assignee:       pull.GetAssignee().GetLogin(),
		MergeCommitSHA: pull.GetMergeCommitSHA(),
		Labels:         labels,
	}
}

// ConvertCommit converts a GitHub commit to our model
func ConvertCommit(commit *github.RepositoryCommit) *models.Commit {
	return &models.Commit{
		SHA:     commit.GetSHA(),
		Message: commit.GetCommit().GetMessage(),
		Author:  commit.GetAuthor().GetLogin(),
	}
}
