// Package runner parses many wiki files concurrently through a cache.Loader.
package runner

import (
	"maps"
	"runtime"
	"slices"
	"strings"

	"github.com/yaklabco/govimwiki/pkg/config"
	"github.com/yaklabco/govimwiki/pkg/parser"
)

// Options selects the files to load and how many to load at once.
type Options struct {
	// Paths are files or directories; empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors the globs. Empty means
	// the process working directory.
	WorkingDir string

	// Extensions are matched case-insensitively, with the leading dot.
	// Empty means every extension with a registered syntax.
	Extensions []string

	// IncludeGlobs, when set, restrict discovery to matching files.
	IncludeGlobs []string
	ExcludeGlobs []string

	FollowSymlinks bool

	// Jobs caps the concurrent loads; 0 or less means one per CPU.
	Jobs int
}

// OptionsFromConfig seeds Options with the extensions, ignore globs and job
// count of cfg.
func OptionsFromConfig(cfg *config.Config, paths ...string) Options {
	opts := Options{Paths: paths}
	if cfg != nil {
		opts.Extensions = cfg.ExtensionList()
		opts.ExcludeGlobs = slices.Clone(cfg.Ignore)
		opts.Jobs = cfg.Jobs
	}
	return opts
}

// DefaultExtensions returns the registered extensions, sorted.
func DefaultExtensions() []string {
	return slices.Sorted(maps.Keys(parser.DefaultExtensions))
}

// withDefaults fills the empty fields and lowercases the extensions.
func (o Options) withDefaults() Options {
	if len(o.Paths) == 0 {
		o.Paths = []string{"."}
	}
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	o.Extensions = make([]string, len(exts))
	for i, ext := range exts {
		o.Extensions[i] = strings.ToLower(ext)
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.NumCPU()
	}
	return o
}
