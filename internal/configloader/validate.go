package configloader

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/govimwiki/pkg/config"
	"github.com/yaklabco/govimwiki/pkg/parser"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "cache.backend").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins every error, or returns nil. Each joined error is a
// *ValidationError, reachable with errors.As.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field: field, Value: value, Message: fmt.Sprintf(format, args...),
	})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{
		Field: field, Value: value, Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if !IsValidSyntax(cfg.Syntax) {
		result.fail("syntax", cfg.Syntax,
			"invalid syntax %q; must be one of: vimwiki, markdown", cfg.Syntax)
	}

	for _, ext := range cfg.ExtensionList() {
		syntax := cfg.Extensions[ext]
		field := "extensions." + ext
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.fail(field, ext, "extension must start with a dot")
		}
		if !IsValidSyntax(syntax) {
			result.fail(field, syntax,
				"invalid syntax %q; must be one of: vimwiki, markdown", syntax)
		}
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if !cfg.Cache.Backend.IsValid() {
		result.fail("cache.backend", cfg.Cache.Backend,
			"invalid cache backend %q; must be one of: sqlite, file, none", cfg.Cache.Backend)
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	validateHTML(&cfg.HTML, result)
	return result
}

func validateHTML(h *config.HTMLConfig, result *ValidationResult) {
	if base := h.Links.BaseURL; base != "" {
		u, err := url.Parse(base)
		switch {
		case err != nil:
			result.fail("html.links.base_url", base, "invalid URL: %v", err)
		case u.Scheme == "":
			result.warn("html.links.base_url", base, "base URL has no scheme")
		}
	}

	if h.Template.Text == "" && h.Template.Ext == "" {
		result.fail("html.template.ext", h.Template.Ext, "template extension must not be empty")
	}

	for i, wiki := range h.Wikis {
		if wiki.Path == "" {
			result.fail(fmt.Sprintf("html.wikis[%d].path", i), wiki.Path, "wiki path must not be empty")
		}
		if wiki.Index == "" {
			result.warn(fmt.Sprintf("html.wikis[%d].index", i), wiki.Index, "no index page; links to the wiki root will not resolve")
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidSyntax returns true if a parser is registered for syntax.
func IsValidSyntax(syntax string) bool {
	_, err := parser.ForSyntax(syntax)
	return err == nil && syntax != ""
}
