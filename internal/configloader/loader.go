// Package configloader finds govimwiki configuration files, layers them
// over the defaults with environment and flag overrides, and validates the
// result.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/govimwiki/pkg/config"
)

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	// WorkingDir starts the upward search for a project config. Empty means
	// the process working directory.
	WorkingDir string

	// ExplicitPath is the --config file, applied above the project config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values; only set fields override.
	CLIConfig *config.Config

	// lookupEnv replaces os.LookupEnv in tests.
	lookupEnv func(string) (string, bool)
}

// LoadResult is the validated configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files applied, lowest precedence first.
	LoadedFrom []string

	// Warnings are validation findings that did not stop the load.
	Warnings []string
}

// fileLayer is one configuration file in precedence order.
type fileLayer struct {
	name string
	path string
	skip bool
}

func fileLayers(paths *ConfigPaths, opts LoadOptions) []fileLayer {
	return []fileLayer{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}
}

// Load builds the configuration from, lowest to highest precedence: the
// defaults, the system file, the user file, the nearest project file, the
// --config file, GOVIMWIKI_* variables and command-line flags.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	dir := opts.WorkingDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}

	paths, err := DiscoverPaths(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, layer := range fileLayers(paths, opts) {
		if layer.skip || layer.path == "" {
			continue
		}
		if err := overlayFile(cfg, layer.path); err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		lookup := opts.lookupEnv
		if lookup == nil {
			lookup = os.LookupEnv
		}
		if err := loadFromLookup(cfg, lookup); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, validation.Err()
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// overlayFile decodes the file at path on top of cfg.
func overlayFile(cfg *config.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	if err := config.DecodeInto(cfg, data); err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	return nil
}
