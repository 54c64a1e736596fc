package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv(EnvGithubToken, "token-123")
	t.Setenv(EnvGithubRepository, "owner/repo")
	t.Setenv("INPUT_TAG_NAME", "v2.0.0")
	t.Setenv("INPUT_VERBOSE", "true")

	cfg := Load()

	assert.Equal(t, "token-123", cfg.GitHubToken)
	assert.Equal(t, "owner/repo", cfg.Repository)
	assert.Equal(t, "v2.0.0", cfg.TagName)
	assert.True(t, cfg.Verbose)
}

func TestLoadRepositoryInputWins(t *testing.T) {
	t.Setenv(EnvGithubRepository, "workflow/repo")
	t.Setenv("INPUT_GITHUB_REPOSITORY", "explicit/repo")

	cfg := Load()

	assert.Equal(t, "explicit/repo", cfg.Repository)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvGithubToken, "")
	t.Setenv(EnvGithubRepository, "")
	t.Setenv("INPUT_GITHUB_REPOSITORY", "")
	t.Setenv("INPUT_TAG_NAME", "")
	t.Setenv("INPUT_VERBOSE", "")

	cfg := Load()

	assert.Equal(t, "", cfg.Repository)
	assert.False(t, cfg.Verbose)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{GitHubToken: "t", Repository: "owner/repo"},
		},
		{
			name:    "missing token",
			cfg:     Config{Repository: "owner/repo"},
			wantErr: "GITHUB_TOKEN",
		},
		{
			name:    "missing repository",
			cfg:     Config{GitHubToken: "t"},
			wantErr: "repository is required",
		},
		{
			name:    "malformed repository",
			cfg:     Config{GitHubToken: "t", Repository: "just-a-name"},
			wantErr: "invalid repository format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
