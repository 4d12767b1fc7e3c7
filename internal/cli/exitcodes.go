package cli

import (
	"context"
	"errors"

	"github.com/yaklabco/govimwiki/pkg/runner"
)

// Exit codes for govimwiki.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitLoadFailures indicates the command ran but some files could not
	// be loaded.
	ExitLoadFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitInterrupted is returned after SIGINT or SIGTERM cancels a command.
	ExitInterrupted = 130
)

var (
	// ErrLoadFailures is returned when at least one file failed to load.
	// The failures have already been reported.
	ErrLoadFailures = errors.New("some files failed to load")

	// ErrConfig wraps configuration loading and validation errors.
	ErrConfig = errors.New("invalid configuration")

	// ErrUsage wraps invalid flag combinations.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code of a run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitLoadFailures
	}
	return ExitSuccess
}

// ExitCodeForError maps a command error to a process exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLoadFailures):
		return ExitLoadFailures
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitInternalError
	}
}
