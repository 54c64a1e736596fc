package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/wesm/github-action-support/internal/action"
)

const (
	// EnvGithubToken is the environment variable name for the GitHub API token
	EnvGithubToken = "GITHUB_TOKEN"

	// EnvGithubRepository is the environment variable GitHub Actions sets to
	// the "owner/name" of the repository the workflow runs in
	EnvGithubRepository = "GITHUB_REPOSITORY"
)

// Config represents the inputs of one action invocation
type Config struct {
	// GitHub API token for authentication
	GitHubToken string

	// Repository to operate on in the format "owner/name"
	Repository string

	// Tag the action is producing a changelog link for
	TagName string

	// Verbose enables debug logging (and with it the rate limit inspection)
	Verbose bool
}

// Load reads the configuration from action inputs and the environment.
// The github-repository input takes precedence over GITHUB_REPOSITORY.
func Load() *Config {
	repository := action.GetInput("github-repository")
	if repository == "" {
		repository = os.Getenv(EnvGithubRepository)
	}

	return &Config{
		GitHubToken: os.Getenv(EnvGithubToken),
		Repository:  repository,
		TagName:     action.GetInput("tag-name"),
		Verbose:     strings.EqualFold(action.GetInput("verbose"), "true"),
	}
}

// Validate checks that the required inputs are present and well-formed.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("%s environment variable is required", EnvGithubToken)
	}
	if c.Repository == "" {
		return errors.New("repository is required, set the github-repository input or GITHUB_REPOSITORY")
	}
	if parts := strings.Split(c.Repository, "/"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid repository format, expected 'owner/name', got '%s'", c.Repository)
	}
	return nil
}

// Config satisfies the action input contract.
var _ action.Inputs = (*Config)(nil)
