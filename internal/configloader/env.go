package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/govimwiki/pkg/config"
)

// envVarPrefix is the prefix for all govimwiki environment variables.
const envVarPrefix = "GOVIMWIKI_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
	envTypeMap
)

// envMapping binds an environment variable to a config field.
type envMapping struct {
	typ  envFieldType
	desc string

	setString func(*config.Config, string)
	setBool   func(*config.Config, bool)
	setInt    func(*config.Config, int)
	setSlice  func(*config.Config, []string)
	setMap    func(*config.Config, map[string]string)
}

func stringVar(desc string, set func(*config.Config, string)) envMapping {
	return envMapping{typ: envTypeString, desc: desc, setString: set}
}

func boolVar(desc string, set func(*config.Config, bool)) envMapping {
	return envMapping{typ: envTypeBool, desc: desc, setBool: set}
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SYNTAX": stringVar("Syntax of files with unknown extensions: vimwiki or markdown",
		func(c *config.Config, v string) { c.Syntax = v }),
	"EXTENSIONS": {
		typ:    envTypeMap,
		desc:   "Comma-separated ext:syntax pairs, e.g. .txt:markdown",
		setMap: func(c *config.Config, v map[string]string) { c.Extensions = v },
	},
	"JOBS": {
		typ:    envTypeInt,
		desc:   "Number of parallel workers (0 = auto)",
		setInt: func(c *config.Config, v int) { c.Jobs = v },
	},
	"IGNORE": {
		typ:      envTypeSlice,
		desc:     "Comma-separated list of ignore patterns",
		setSlice: func(c *config.Config, v []string) { c.Ignore = v },
	},
	"CACHE_BACKEND": stringVar("Page cache backend: sqlite, file or none",
		func(c *config.Config, v string) { c.Cache.Backend = config.CacheBackend(v) }),
	"CACHE_PATH": stringVar("Page cache database file or directory",
		func(c *config.Config, v string) { c.Cache.Path = v }),
	"LSP_HOVER": boolVar("Enable hover in the language server: true or false",
		func(c *config.Config, v bool) { c.LSP.Hover = v }),
	"HTML_LIST_IGNORE_NEWLINE": boolVar("Join list item lines when rendering",
		func(c *config.Config, v bool) { c.HTML.List.IgnoreNewline = v }),
	"HTML_PARAGRAPH_IGNORE_NEWLINE": boolVar("Join paragraph lines when rendering",
		func(c *config.Config, v bool) { c.HTML.Paragraph.IgnoreNewline = v }),
	"HTML_LINKS_BASE_URL": stringVar("Base URL for rendered links",
		func(c *config.Config, v string) { c.HTML.Links.BaseURL = v }),
	"HTML_LINKS_CANONICALIZE": boolVar("Canonicalize rendered links",
		func(c *config.Config, v bool) { c.HTML.Links.Canonicalize = v }),
	"HTML_HEADER_TOC_HEADER": stringVar("Header text of the table of contents",
		func(c *config.Config, v string) { c.HTML.Header.TOCHeader = v }),
	"HTML_CODE_THEME": stringVar("Code highlighting theme",
		func(c *config.Config, v string) { c.HTML.Code.Theme = v }),
	"HTML_CODE_SERVER_SIDE": boolVar("Highlight code when rendering",
		func(c *config.Config, v bool) { c.HTML.Code.ServerSide = v }),
	"HTML_COMMENT_INCLUDE": boolVar("Keep comments in rendered output",
		func(c *config.Config, v bool) { c.HTML.Comment.Include = v }),
	"HTML_TEMPLATE_NAME": stringVar("Page template name",
		func(c *config.Config, v string) { c.HTML.Template.Name = v }),
	"HTML_TEMPLATE_EXT": stringVar("Page template extension",
		func(c *config.Config, v string) { c.HTML.Template.Ext = v }),
	"HTML_TEMPLATE_DIR": stringVar("Page template directory",
		func(c *config.Config, v string) { c.HTML.Template.Dir = v }),
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOVIMWIKI_ (e.g., GOVIMWIKI_SYNTAX).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}
	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}
		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}
	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		mapping.setString(cfg, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		mapping.setBool(cfg, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		mapping.setInt(cfg, i)
	case envTypeSlice:
		mapping.setSlice(cfg, parseSliceValue(value))
	case envTypeMap:
		m, err := parseMapValue(value)
		if err != nil {
			return fmt.Errorf("invalid mapping for %s: %w", envVar, err)
		}
		mapping.setMap(cfg, m)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseMapValue parses "k1:v1,k2:v2".
func parseMapValue(value string) (map[string]string, error) {
	result := make(map[string]string)
	for _, pair := range parseSliceValue(value) {
		k, v, ok := strings.Cut(pair, ":")
		if !ok || strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("expected key:value, got %q", pair)
		}
		result[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return result, nil
}

// ListEnvVars returns every supported environment variable with its
// description, sorted by name.
func ListEnvVars() [][2]string {
	out := make([][2]string, 0, len(envMappings))
	for suffix, m := range envMappings {
		out = append(out, [2]string{envVarPrefix + suffix, m.desc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
