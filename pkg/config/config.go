// Package config defines the configuration types for govimwiki.
// They are pure data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Syntax names accepted by Config.Syntax and Config.Extensions.
const (
	SyntaxVimwiki  = "vimwiki"
	SyntaxMarkdown = "markdown"
)

// CacheBackend selects where parsed pages are cached.
type CacheBackend string

// Cache backends.
const (
	CacheSQLite CacheBackend = "sqlite"
	CacheFile   CacheBackend = "file"
	CacheNone   CacheBackend = "none"
)

// IsValid returns true if b names a known backend.
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheSQLite, CacheFile, CacheNone:
		return true
	default:
		return false
	}
}

// CacheConfig controls the parsed-page cache.
type CacheConfig struct {
	Backend CacheBackend `json:"backend" yaml:"backend"`

	// Path is the SQLite database file or the file store directory.
	// Empty selects a location under the user cache directory.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// WikiConfig describes one wiki for the HTML renderer.
type WikiConfig struct {
	Path     string `json:"path" yaml:"path"`
	PathHTML string `json:"path_html" yaml:"path_html"`
	Index    string `json:"index" yaml:"index"`
}

// ListConfig controls how list items are rendered.
type ListConfig struct {
	IgnoreNewline bool `json:"ignore_newline" yaml:"ignore_newline"`
}

// ParagraphConfig controls how paragraphs are rendered.
type ParagraphConfig struct {
	IgnoreNewline bool `json:"ignore_newline" yaml:"ignore_newline"`
}

// LinkConfig controls link resolution.
type LinkConfig struct {
	BaseURL      string `json:"base_url" yaml:"base_url"`
	Canonicalize bool   `json:"canonicalize" yaml:"canonicalize"`
}

// HeaderConfig controls header rendering.
type HeaderConfig struct {
	// TOCHeader is the header text that marks a table of contents.
	TOCHeader string `json:"toc_header" yaml:"toc_header"`
}

// CodeConfig controls code block highlighting.
type CodeConfig struct {
	Theme      string `json:"theme" yaml:"theme"`
	ServerSide bool   `json:"server_side" yaml:"server_side"`
}

// CommentConfig controls whether comments reach the output.
type CommentConfig struct {
	Include bool `json:"include" yaml:"include"`
}

// TemplateConfig selects the page template.
type TemplateConfig struct {
	Name string `json:"name" yaml:"name"`
	Ext  string `json:"ext" yaml:"ext"`
	Dir  string `json:"dir" yaml:"dir"`

	// Text is an inline template used instead of Dir/Name.Ext when set.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// HTMLConfig holds the options of an HTML renderer. govimwiki validates
// and exposes them; it does not render HTML itself.
type HTMLConfig struct {
	Wikis     []WikiConfig    `json:"wikis" yaml:"wikis"`
	List      ListConfig      `json:"list" yaml:"list"`
	Paragraph ParagraphConfig `json:"paragraph" yaml:"paragraph"`
	Links     LinkConfig      `json:"links" yaml:"links"`
	Header    HeaderConfig    `json:"header" yaml:"header"`
	Code      CodeConfig      `json:"code" yaml:"code"`
	Comment   CommentConfig   `json:"comment" yaml:"comment"`
	Template  TemplateConfig  `json:"template" yaml:"template"`
}

// LSPConfig controls the language server.
type LSPConfig struct {
	// Hover enables element descriptions on hover.
	Hover bool `json:"hover" yaml:"hover"`
}

// Config is the root configuration structure.
type Config struct {
	// Syntax is the syntax of files whose extension is not in Extensions.
	Syntax string `json:"syntax" yaml:"syntax"`

	// Extensions maps file extensions (with leading dot) to syntaxes.
	Extensions map[string]string `json:"extensions" yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `json:"jobs" yaml:"jobs"`

	Cache CacheConfig `json:"cache" yaml:"cache"`
	HTML  HTMLConfig  `json:"html" yaml:"html"`
	LSP   LSPConfig   `json:"lsp" yaml:"lsp"`

	// CLI-level options (not persisted to config files).

	// JSON selects machine-readable output.
	JSON bool `json:"-" yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Syntax: SyntaxVimwiki,
		Extensions: map[string]string{
			".wiki":     SyntaxVimwiki,
			".md":       SyntaxMarkdown,
			".markdown": SyntaxMarkdown,
		},
		Cache: CacheConfig{Backend: CacheSQLite},
		HTML: HTMLConfig{
			Wikis: []WikiConfig{{
				Path:     "~/vimwiki",
				PathHTML: "~/vimwiki_html",
				Index:    "index",
			}},
			List:      ListConfig{IgnoreNewline: true},
			Paragraph: ParagraphConfig{IgnoreNewline: true},
			Links:     LinkConfig{BaseURL: "https://localhost"},
			Header:    HeaderConfig{TOCHeader: "Contents"},
			Code:      CodeConfig{Theme: "InspiredGitHub"},
			Template: TemplateConfig{
				Name: "default",
				Ext:  "tpl",
				Dir:  "~/vimwiki/templates",
			},
		},
		LSP: LSPConfig{Hover: true},
	}
}

// ExtensionList returns the configured extensions in sorted order.
func (c *Config) ExtensionList() []string {
	exts := make([]string, 0, len(c.Extensions))
	for ext := range c.Extensions {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// CachePath returns the configured cache location, or the default one
// for the backend below the user cache directory.
func (c *Config) CachePath() (string, error) {
	if c.Cache.Path != "" {
		return ExpandHome(c.Cache.Path), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	if c.Cache.Backend == CacheFile {
		return filepath.Join(dir, "govimwiki", "pages"), nil
	}
	return filepath.Join(dir, "govimwiki", "cache.db"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
