package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/internal/lsp"
)

func newLSPCommand(info BuildInfo) *cobra.Command {
	var noHover bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Serve the language server on stdio",
		Long: `Run the language server over standard input and output.

It provides hover descriptions, a header outline as document symbols, and
clickable document links. Logs go to standard error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)
			logger := logging.NewInteractive()
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logger.SetLevel(log.DebugLevel)
			}
			ctx = logging.WithLogger(ctx, logger)

			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			loader, err := newLoader(ctx, cfg, nil)
			if err != nil {
				return err
			}
			defer closeLoader(logger, loader)

			server := lsp.NewServer(loader, logger, lsp.Options{
				Version: info.Version,
				Hover:   cfg.LSP.Hover && !noHover,
				Debug:   debug,
			})
			return server.RunStdio()
		},
	}

	cmd.Flags().BoolVar(&noHover, "no-hover", false, "disable hover responses")

	return cmd
}
