// Package logging provides slog setup and attribute helpers for consistent
// log output across the library.
package logging

import (
	"log/slog"
	"os"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyRepository = "repository"
	KeyTag        = "tag"
	KeyError      = "error"
)

// Setup installs and returns a text logger on stderr. Verbose enables
// debug level, which is also what gates the rate limit inspection.
func Setup(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// Repository returns a slog attribute for a repository full name.
func Repository(fullName string) slog.Attr {
	return slog.String(KeyRepository, fullName)
}

// Tag returns a slog attribute for a release or comparison tag.
func Tag(tag string) slog.Attr {
	return slog.String(KeyTag, tag)
}

// Err returns a slog attribute for an error. If err is nil, returns an
// empty group attribute that is omitted from output.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
