// Package parser selects a front-end for a page's markup language.
package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/parser/markdown"
	"github.com/yaklabco/govimwiki/pkg/parser/vimwiki"
)

// Supported syntaxes.
const (
	SyntaxVimwiki  = "vimwiki"
	SyntaxMarkdown = "markdown"
)

// ErrUnsupportedLanguage is returned for a syntax with no front-end.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Parser parses a page into the element model.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - side-effect free (no I/O).
type Parser interface {
	// Parse converts raw bytes into a page.
	//
	// path is only used for diagnostics. On error no partial page is
	// returned.
	Parse(ctx context.Context, path string, content []byte) (*elements.Page, error)
}

// DefaultExtensions maps file extensions to syntaxes.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultExtensions = map[string]string{
	".wiki":     SyntaxVimwiki,
	".md":       SyntaxMarkdown,
	".markdown": SyntaxMarkdown,
}

// ForSyntax returns the front-end for syntax. An empty syntax selects
// vimwiki.
func ForSyntax(syntax string) (Parser, error) {
	switch strings.ToLower(syntax) {
	case "", SyntaxVimwiki:
		return vimwiki.New(), nil
	case SyntaxMarkdown, "md":
		return markdown.New(markdown.FlavorWiki), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, syntax)
	}
}

// SyntaxForPath picks a syntax from the file extension using exts, then
// DefaultExtensions. fallback is returned for unknown extensions.
func SyntaxForPath(path string, exts map[string]string, fallback string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if s, ok := exts[ext]; ok {
		return s
	}
	if s, ok := DefaultExtensions[ext]; ok {
		return s
	}
	return fallback
}

// ForPath returns the front-end for path.
func ForPath(path string, exts map[string]string, fallback string) (Parser, error) {
	return ForSyntax(SyntaxForPath(path, exts, fallback))
}
