package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/pkg/config"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the parsed page cache",
	}
	cmd.AddCommand(newCacheClearCommand())
	cmd.AddCommand(newCachePathCommand())
	return cmd
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.NewInteractive()
			ctx := commandContext(cmd)

			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					logger.Warn("close cache", logging.FieldError, closeErr)
				}
			}()

			if err := store.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			logger.Info("cache cleared", logging.FieldBackend, cfg.Cache.Backend)
			return nil
		},
	}
}

func newCachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the location of the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.CacheNone {
				fmt.Fprintln(cmd.OutOrStdout(), "(caching disabled)")
				return nil
			}
			path, err := cfg.CachePath()
			if err != nil {
				return fmt.Errorf("resolve cache path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
