// Package main is the entry point for the github-action-support CLI, a
// small driver for running the library's operations inside a composite
// action.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/wesm/github-action-support/config"
	"github.com/wesm/github-action-support/internal/action"
	"github.com/wesm/github-action-support/internal/api"
	"github.com/wesm/github-action-support/internal/logging"
	"github.com/wesm/github-action-support/internal/manager"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		action.Fail(err.Error())
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "github-action-support",
		Short: "GitHub data helpers for composite actions",
		Long: `github-action-support wraps the GitHub REST API behind a small
session manager for use in composite actions. Inputs are read from the
INPUT_* environment variables and results are written to GITHUB_OUTPUT.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newChangeURLCmd())
	root.AddCommand(newIssuesCmd())
	return root
}

// newSession validates the configuration and builds a manager with the
// configured repository and its latest release stored.
func newSession(ctx context.Context, cfg *config.Config) (*manager.Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.Setup(cfg.Verbose)

	client, err := api.NewGitHubClient(cfg.GitHubToken)
	if err != nil {
		return nil, err
	}

	m := manager.New(client, logger)
	m.ShowRateLimit(ctx)
	if err := m.StoreRepository(ctx, cfg.Repository); err != nil {
		return nil, err
	}
	if m.Repository() == nil {
		return nil, fmt.Errorf("repository %q could not be resolved", cfg.Repository)
	}

	m.StoreLatestRelease(ctx, nil)
	return m, nil
}

func newChangeURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "change-url",
		Short: "Write the changelog comparison URL for the tag-name input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			if cfg.TagName == "" {
				return fmt.Errorf("tag-name input is required")
			}

			m, err := newSession(ctx, cfg)
			if err != nil {
				return err
			}

			url := m.ChangeURL(cfg.TagName, nil, nil)
			if url == "" {
				return fmt.Errorf("failed to build change url for %q", cfg.TagName)
			}

			if err := action.SetOutput("changelog-url", url); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

func newIssuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "issues",
		Short: "List issues changed since the latest release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			m, err := newSession(ctx, cfg)
			if err != nil {
				return err
			}

			for _, issue := range m.FetchIssues(ctx, time.Time{}, "", nil) {
				fmt.Fprintf(cmd.OutOrStdout(), "#%d\t%s\t%s\n", issue.Number, issue.State, issue.Title)
			}
			return nil
		},
	}
}
