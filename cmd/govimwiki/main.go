// Command govimwiki parses, inspects and serves vimwiki pages.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/govimwiki/internal/cli"
	"github.com/yaklabco/govimwiki/internal/logging"
)

// Set by -ldflags at release time.
//
//nolint:gochecknoglobals // linker-injected
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	err := root.ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	// Per-file load failures are already logged by stats.
	if !errors.Is(err, cli.ErrLoadFailures) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCodeForError(err)
}
