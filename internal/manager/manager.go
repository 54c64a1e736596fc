// Package manager coordinates GitHub data access for one action invocation.
// A Manager holds the API client, the selected repository, and the latest
// known release, so call sites can omit the repository argument after the
// first StoreRepository.
package manager

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wesm/github-action-support/internal/api"
	"github.com/wesm/github-action-support/internal/logging"
	"github.com/wesm/github-action-support/internal/models"
)

// Start the sleep logic when less than 10% of the rate limit remains.
const rateLimitThresholdPercent = 10

// rateLimitResetMargin is added to the computed sleep so the quota window
// has definitely rolled over before the next request.
const rateLimitResetMargin = 10 * time.Second

// ErrInvalidRepository is returned by StoreRepository for any reference that
// is neither an identifier string nor a resolved repository. It indicates a
// programming mistake at the call site and is the only error the Manager
// propagates; remote failures are logged and yield nil or empty results.
var ErrInvalidRepository = errors.New("Store repository failed. Repository must be a string or a Repository object")

// GitHubAPI is the surface of the API client the Manager depends on.
// *api.GitHubClient implements it; tests substitute doubles.
type GitHubAPI interface {
	GetRepository(ctx context.Context, owner, name string) (*models.Repository, error)
	GetLatestRelease(ctx context.Context, owner, name string) (*models.Release, error)
	GetIssue(ctx context.Context, owner, name string, number int) (*models.Issue, error)
	ListIssues(ctx context.Context, owner, name string, since time.Time, state string) ([]*models.Issue, error)
	ListClosedPullRequests(ctx context.Context, owner, name string) ([]*models.PullRequest, error)
	ListCommits(ctx context.Context, owner, name string) ([]*models.Commit, error)
	CoreRateLimit(ctx context.Context) (*api.RateLimit, error)
}

// Manager is an explicitly constructed session over one GitHub client.
// It is not safe for concurrent use; the intended usage is one sequential
// action script per Manager.
type Manager struct {
	client  GitHubAPI
	logger  *slog.Logger
	repo    *models.Repository
	release *models.Release

	// injectable for tests
	sleep func(time.Duration)
	now   func() time.Time
}

// New creates a Manager around the given client. A nil logger falls back to
// slog.Default.
func New(client GitHubAPI, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		client: client,
		logger: logger,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// Reset clears the client, the selected repository, and the stored release.
// It returns the Manager for chaining.
func (m *Manager) Reset() *Manager {
	m.client = nil
	m.repo = nil
	m.release = nil
	return m
}

// Client returns the API client handle.
func (m *Manager) Client() GitHubAPI {
	return m.client
}

// SetClient replaces the API client handle.
func (m *Manager) SetClient(client GitHubAPI) {
	m.client = client
}

// Repository returns the selected repository, or nil if none is stored.
func (m *Manager) Repository() *models.Repository {
	return m.repo
}

// LatestRelease returns the stored latest release, or nil if none is stored.
func (m *Manager) LatestRelease() *models.Release {
	return m.release
}

// StoreRepository selects the session repository. The reference is either an
// "owner/name" identifier string, which triggers a fetch, or an already
// resolved *models.Repository. Any other reference returns
// ErrInvalidRepository. A failed fetch leaves the selection empty.
func (m *Manager) StoreRepository(ctx context.Context, repository any) error {
	switch repo := repository.(type) {
	case string:
		m.repo = m.FetchRepository(ctx, repo)
	case *models.Repository:
		m.repo = repo
	default:
		return ErrInvalidRepository
	}
	return nil
}

// StoreLatestRelease fetches and stores the latest release of the given or
// currently selected repository. It returns the Manager for chaining.
func (m *Manager) StoreLatestRelease(ctx context.Context, repo *models.Repository) *Manager {
	m.release = m.FetchLatestRelease(ctx, repo)
	return m
}

// FetchRepository resolves a repository by its "owner/name" identifier.
// It returns nil on any failure; a missing repository is logged distinctly
// from other failures.
func (m *Manager) FetchRepository(ctx context.Context, id string) *models.Repository {
	owner, name, err := api.ParseRepositoryFullName(id)
	if err != nil {
		m.logger.Error("fetching repository failed", logging.Repository(id), logging.Err(err))
		return nil
	}

	m.logger.Info("fetching repository", logging.Repository(id))
	repo, err := m.client.GetRepository(ctx, owner, name)
	if err != nil {
		if api.IsNotFound(err) {
			m.logger.Error("repository not found", logging.Repository(id))
		} else {
			m.logger.Error("fetching repository failed", logging.Repository(id), logging.Err(err))
		}
		return nil
	}

	return repo
}

// FetchLatestRelease returns the latest release of the given or currently
// selected repository, or nil when no repository is resolvable, when the
// repository has no release yet, or on any other failure.
func (m *Manager) FetchLatestRelease(ctx context.Context, repo *models.Repository) *models.Release {
	r := m.resolveRepository(repo)
	if r == nil {
		m.logger.Error("fetching latest release failed: repository is not set")
		return nil
	}

	m.logger.Info("fetching latest release", logging.Repository(r.FullName))
	release, err := m.client.GetLatestRelease(ctx, r.Owner, r.Name)
	if err != nil {
		if api.IsNotFound(err) {
			m.logger.Error("latest release not found, expected first release for repository",
				logging.Repository(r.FullName))
		} else {
			m.logger.Error("fetching latest release failed",
				logging.Repository(r.FullName), logging.Err(err))
		}
		return nil
	}

	m.logger.Debug("found latest release",
		logging.Tag(release.TagName),
		slog.Time("created_at", release.CreatedAt),
		slog.Any("published_at", release.PublishedAt))
	return release
}

// FetchIssue returns a single issue by number from the given or currently
// selected repository, or nil on any failure.
func (m *Manager) FetchIssue(ctx context.Context, number int, repo *models.Repository) *models.Issue {
	r := m.resolveRepository(repo)
	if r == nil {
		m.logger.Error("fetching issue failed: repository is not set")
		return nil
	}

	m.logger.Info("fetching issue", logging.Repository(r.FullName), slog.Int("number", number))
	issue, err := m.client.GetIssue(ctx, r.Owner, r.Name, number)
	if err != nil {
		m.logger.Error("fetching issue failed",
			logging.Repository(r.FullName), slog.Int("number", number), logging.Err(err))
		return nil
	}

	m.logger.Debug("fetched issue", slog.String("title", issue.Title))
	return issue
}

// FetchIssues returns the issues of the given or currently selected
// repository. A zero since defaults to the stored release's publish or
// creation time, falling back to the repository creation time when no
// release is stored. An empty state defaults to "all", fetching every state
// in one request. The result is an empty slice, never nil, including when
// the repository is unresolved or the fetch fails.
func (m *Manager) FetchIssues(ctx context.Context, since time.Time, state string, repo *models.Repository) []*models.Issue {
	r := m.resolveRepository(repo)
	if r == nil {
		m.logger.Error("fetching all issues failed: repository is not set")
		return []*models.Issue{}
	}

	if since.IsZero() {
		since = m.sinceFor(r, nil)
	}
	if state == "" {
		state = "all"
	}

	m.logger.Info("fetching all issues",
		logging.Repository(r.FullName), slog.Time("since", since), slog.String("state", state))
	issues, err := m.client.ListIssues(ctx, r.Owner, r.Name, since, state)
	if err != nil {
		m.logger.Error("fetching issues failed", logging.Repository(r.FullName), logging.Err(err))
		return []*models.Issue{}
	}

	m.logger.Info("found issues", logging.Repository(r.FullName), slog.Int("count", len(issues)))
	if issues == nil {
		issues = []*models.Issue{}
	}
	return issues
}

// FetchPullRequests returns the closed pull requests of the given or
// currently selected repository. Only pull requests in the "closed" state
// are fetched; open pull requests are never returned. The result is an
// empty slice when the repository is unresolved or the fetch fails.
func (m *Manager) FetchPullRequests(ctx context.Context, repo *models.Repository) []*models.PullRequest {
	r := m.resolveRepository(repo)
	if r == nil {
		m.logger.Error("fetching all closed pull requests failed: repository is not set")
		return []*models.PullRequest{}
	}

	m.logger.Info("fetching all closed pull requests", logging.Repository(r.FullName))
	pulls, err := m.client.ListClosedPullRequests(ctx, r.Owner, r.Name)
	if err != nil {
		m.logger.Error("fetching pull requests failed", logging.Repository(r.FullName), logging.Err(err))
		return []*models.PullRequest{}
	}

	m.logger.Info("found pull requests", logging.Repository(r.FullName), slog.Int("count", len(pulls)))
	if pulls == nil {
		pulls = []*models.PullRequest{}
	}
	return pulls
}

// FetchCommits returns all commits of the given or currently selected
// repository. The result is an empty slice when the repository is unresolved
// or the fetch fails.
func (m *Manager) FetchCommits(ctx context.Context, repo *models.Repository) []*models.Commit {
	r := m.resolveRepository(repo)
	if r == nil {
		m.logger.Error("fetching all commits failed: repository is not set")
		return []*models.Commit{}
	}

	m.logger.Info("fetching all commits", logging.Repository(r.FullName))
	commits, err := m.client.ListCommits(ctx, r.Owner, r.Name)
	if err != nil {
		m.logger.Error("fetching commits failed", logging.Repository(r.FullName), logging.Err(err))
		return []*models.Commit{}
	}

	if commits == nil {
		commits = []*models.Commit{}
	}
	return commits
}

// ChangeURL builds the link for viewing changes up to tag. With a known
// release the link compares the release tag with the given tag; without one
// it points at the commit listing for the tag. It returns "" when no
// repository is resolvable.
func (m *Manager) ChangeURL(tag string, repo *models.Repository, release *models.Release) string {
	r := m.resolveRepository(repo)
	if r == nil {
		m.logger.Error("get change url failed: repository is not set")
		return ""
	}

	rls := release
	if rls == nil {
		rls = m.release
	}

	if rls == nil {
		// No release yet, point at the full commit listing for the tag
		return "https://github.com/" + r.FullName + "/commits/" + tag
	}
	return "https://github.com/" + r.FullName + "/compare/" + rls.TagName + "..." + tag
}

// FullName returns the selected repository's full name, or "" when no
// repository is stored.
func (m *Manager) FullName() string {
	if m.repo == nil {
		return ""
	}
	return m.repo.FullName
}

// ShowRateLimit inspects the current core rate limit and sleeps until the
// quota window resets when less than 10% of the allowance remains. The
// inspection only happens when debug logging is enabled; the check precedes
// the API call on purpose so non-verbose runs spend no quota here. Query
// failures are logged and swallowed.
func (m *Manager) ShowRateLimit(ctx context.Context) {
	if !m.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	if m.client == nil {
		m.logger.Error("show rate limit failed: client is not set")
		return
	}

	limit, err := m.client.CoreRateLimit(ctx)
	if err != nil {
		m.logger.Error("failed to get rate limit", logging.Err(err))
		return
	}

	threshold := float64(limit.Limit) * rateLimitThresholdPercent / 100
	if float64(limit.Remaining) < threshold {
		sleep := limit.Reset.Sub(m.now()) + rateLimitResetMargin
		m.logger.Debug("rate limit reached, sleeping", slog.Duration("sleep", sleep))
		m.sleep(sleep)
		return
	}

	m.logger.Debug("rate limit",
		slog.Int("remaining", limit.Remaining), slog.Int("limit", limit.Limit))
}

// resolveRepository encodes the argument-or-stored precedence used by every
// operation that accepts an optional repository.
func (m *Manager) resolveRepository(repo *models.Repository) *models.Repository {
	if repo != nil {
		return repo
	}
	return m.repo
}

// sinceFor returns the lower bound for incremental fetches: the release's
// publish or creation time when a release is known, the repository creation
// time otherwise.
func (m *Manager) sinceFor(repo *models.Repository, release *models.Release) time.Time {
	rls := release
	if rls == nil {
		rls = m.release
	}
	if rls == nil {
		return repo.CreatedAt
	}
	return rls.Since()
}
