package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/yaklabco/govimwiki/internal/configloader"
	"github.com/yaklabco/govimwiki/internal/logging"
	"github.com/yaklabco/govimwiki/internal/ui/pretty"
	"github.com/yaklabco/govimwiki/pkg/cache"
	"github.com/yaklabco/govimwiki/pkg/cache/sqlite"
	"github.com/yaklabco/govimwiki/pkg/config"
)

// commandContext returns the command's context with the default logger
// attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig merges every configuration source with the values set on
// the command line.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()
	if cliCfg == nil {
		cliCfg = &config.Config{}
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}
	if backend, _ := cmd.Flags().GetString("cache-backend"); backend != "" {
		cliCfg.Cache.Backend = config.CacheBackend(backend)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, result.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldSyntax, result.Config.Syntax,
		logging.FieldJobs, result.Config.Jobs,
		logging.FieldBackend, result.Config.Cache.Backend,
	)
	return result.Config, nil
}

// openStore opens the cache store selected by cfg.
func openStore(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	if cfg.Cache.Backend == config.CacheNone {
		return cache.NopStore{}, nil
	}

	path, err := cfg.CachePath()
	if err != nil {
		return nil, fmt.Errorf("resolve cache path: %w", err)
	}
	logging.FromContext(ctx).Debug("opening cache", logging.FieldBackend, cfg.Cache.Backend, logging.FieldPath, path)

	switch cfg.Cache.Backend {
	case config.CacheFile:
		return cache.NewFileStore(path), nil
	case config.CacheSQLite:
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown cache backend %q", ErrConfig, cfg.Cache.Backend)
	}
}

// newLoader builds a page loader over the configured store. Counters are
// registered with reg when it is non-nil. The caller closes the store.
func newLoader(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (*cache.Loader, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return cache.NewLoader(store,
		cache.WithExtensions(cfg.Extensions),
		cache.WithDefaultSyntax(cfg.Syntax),
		cache.WithMetrics(cache.NewMetrics(reg)),
	), nil
}

func closeLoader(logger *log.Logger, loader *cache.Loader) {
	if err := loader.Store().Close(); err != nil {
		logger.Warn("close cache", logging.FieldError, err)
	}
}

// stylesFor returns output styles for cmd's stdout honouring --color.
func stylesFor(cmd *cobra.Command) *pretty.Styles {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))
}
