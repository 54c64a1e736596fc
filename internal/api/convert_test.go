package api

import (
	"testing"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
)

func TestConvertRepository(t *testing.T) {
	createdAt := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &github.Repository{
		Owner:     &github.User{Login: github.String("owner")},
		Name:      github.String("repo"),
		FullName:  github.String("owner/repo"),
		CreatedAt: &github.Timestamp{Time: createdAt},
	}

	got := ConvertRepository(repo)
	assert.Equal(t, "owner", got.Owner)
	assert.Equal(t, "repo", got.Name)
	assert.Equal(t, "owner/repo", got.FullName)
	assert.Equal(t, createdAt, got.CreatedAt)
}

func TestConvertRelease(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	publishedAt := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)

	release := &github.RepositoryRelease{
		TagName:   github.String("v1.0.0"),
		CreatedAt: &github.Timestamp{Time: createdAt},
	}
	got := ConvertRelease(release)
	assert.Equal(t, "v1.0.0", got.TagName)
	assert.Equal(t, createdAt, got.CreatedAt)
	assert.Nil(t, got.PublishedAt, "unpublished release has no publication time")

	release.PublishedAt = &github.Timestamp{Time: publishedAt}
	got = ConvertRelease(release)
	assert.NotNil(t, got.PublishedAt)
	assert.Equal(t, publishedAt, *got.PublishedAt)
}

func TestConvertIssue(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	issue := &github.Issue{
		ID:          github.Int64(1),
		Number:      github.Int(42),
		Title:       github.String("Test Issue"),
		State:       github.String("open"),
		StateReason: github.String("open reason"),
		CreatedAt:   &github.Timestamp{Time: createdAt},
		Labels: []*github.Label{
			{Name: github.String("bug")},
			{Name: github.String("enhancement")},
		},
	}

	got := ConvertIssue(issue)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, 42, got.Number)
	assert.Equal(t, "Test Issue", got.Title)
	assert.Equal(t, "", got.Body, "missing body becomes an empty string")
	assert.Equal(t, "open", got.State)
	assert.Equal(t, "open reason", got.StateReason)
	assert.Equal(t, createdAt, got.CreatedAt)
	assert.Equal(t, []string{"bug", "enhancement"}, got.Labels)
}

func TestConvertPullRequest(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)
	mergedAt := time.Date(2023, 1, 3, 12, 0, 0, 0, time.UTC)

	pull := &github.PullRequest{
		ID:             github.Int64(1),
		Number:         github.Int(42),
		Title:          github.String("Test Pull Request"),
		State:          github.String("open"),
		CreatedAt:      &github.Timestamp{Time: createdAt},
		UpdatedAt:      &github.Timestamp{Time: updatedAt},
		Assignee:       &github.User{Login: github.String("octocat")},
		MergeCommitSHA: github.String("def456"),
		Labels: []*github.Label{
			{Name: github.String("bug")},
		},
	}

	got := ConvertPullRequest(pull)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, 42, got.Number)
	assert.Equal(t, "", got.Body)
	assert.Equal(t, createdAt, got.CreatedAt)
	assert.Equal(t, updatedAt, got.UpdatedAt)
	assert.Nil(t, got.ClosedAt)
	assert.Nil(t, got.MergedAt)
	assert.Equal(t, "octocat", got.Assignee)
	assert.Equal(t, "def456", got.MergeCommitSHA)
	assert.Equal(t, []string{"bug"}, got.Labels)

	pull.MergedAt = &github.Timestamp{Time: mergedAt}
	got = ConvertPullRequest(pull)
	assert.NotNil(t, got.MergedAt)
	assert.Equal(t, mergedAt, *got.MergedAt)
	assert.True(t, got.IsMerged())
}

func TestConvertPullRequestNoAssignee(t *testing.T) {
	got := ConvertPullRequest(&github.PullRequest{Number: github.Int(7)})
	assert.Equal(t, "", got.Assignee)
}

func TestConvertCommit(t *testing.T) {
	commit := &github.RepositoryCommit{
		SHA: github.String("abc123"),
		Commit: &github.Commit{
			Message: github.String("Initial commit"),
		},
		Author: &github.User{Login: github.String("octocat")},
	}

	got := ConvertCommit(commit)
	assert.Equal(t, "abc123", got.SHA)
	assert.Equal(t, "Initial commit", got.Message)
	assert.Equal(t, "octocat", got.Author)
}

func TestConvertCommitNoAuthor(t *testing.T) {
	got := ConvertCommit(&github.RepositoryCommit{SHA: github.String("abc123")})
	assert.Equal(t, "abc123", got.SHA)
	assert.Equal(t, "", got.Author)
	assert.Equal(t, "", got.Message)
}
