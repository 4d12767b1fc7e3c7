package configloader

import (
	"cmp"
	"maps"

	"github.com/yaklabco/govimwiki/pkg/config"
)

// merge returns a copy of base with the fields set in flags applied.
// A field counts as set when it is non-zero; JSON can only be switched on.
// Extensions merge per key, and the other collections replace base's.
func merge(base, flags *config.Config) *config.Config {
	switch {
	case base == nil:
		return flags
	case flags == nil:
		return base
	}

	out := base.Clone()
	out.Syntax = cmp.Or(flags.Syntax, out.Syntax)
	out.Jobs = cmp.Or(flags.Jobs, out.Jobs)
	out.Cache.Backend = cmp.Or(flags.Cache.Backend, out.Cache.Backend)
	out.Cache.Path = cmp.Or(flags.Cache.Path, out.Cache.Path)
	out.JSON = out.JSON || flags.JSON

	if flags.Extensions != nil {
		if out.Extensions == nil {
			out.Extensions = map[string]string{}
		}
		maps.Copy(out.Extensions, flags.Extensions)
	}
	if flags.Ignore != nil {
		out.Ignore = flags.Ignore
	}
	if flags.HTML.Wikis != nil {
		out.HTML.Wikis = flags.HTML.Wikis
	}
	return out
}

// MergeAll folds configs left to right with merge, so later entries win.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for i, cfg := range configs {
		if i == 0 {
			out = cfg
			continue
		}
		out = merge(out, cfg)
	}
	return out
}
