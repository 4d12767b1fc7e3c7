// Package cli wires the govimwiki commands onto cobra.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/govimwiki/internal/logging"
)

// BuildInfo is stamped into the binary by the linker.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

const (
	groupPages  = "pages"
	groupServer = "server"
	groupSetup  = "setup"
)

// NewRootCommand returns the govimwiki command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var (
		debug bool
		color string
	)

	root := &cobra.Command{
		Use:   "govimwiki",
		Short: "Parse, inspect and serve vimwiki pages",
		Long: `govimwiki parses vimwiki and markdown pages into a located element tree.

Every element carries its source region, so pages can be printed as trees,
searched by offset, summarized across a whole wiki, or served to an editor
through the language server. Parsed pages are cached by content checksum.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.String("config", "", "path to config file")
	flags.StringVar(&color, "color", "auto", "colorize output: auto, always, never")
	flags.String("cache-backend", "", "override the cache backend: sqlite, file, none")

	root.AddGroup(
		&cobra.Group{ID: groupPages, Title: "Page Commands:"},
		&cobra.Group{ID: groupServer, Title: "Editor Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)
	for group, cmds := range map[string][]*cobra.Command{
		groupPages:  {newParseCommand(), newFindCommand(), newStatsCommand(), newTodoCommand()},
		groupServer: {newLSPCommand(info)},
		groupSetup:  {newInitCommand(), newCacheCommand(), newVersionCommand(info)},
	} {
		for _, cmd := range cmds {
			cmd.GroupID = group
			root.AddCommand(cmd)
		}
	}

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(root)

	return root
}
