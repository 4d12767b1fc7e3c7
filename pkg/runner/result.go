package runner

import "github.com/yaklabco/govimwiki/pkg/elements"

// FileOutcome is the result of loading one file.
type FileOutcome struct {
	Path   string
	Syntax string

	// Page is nil when Error is set.
	Page *elements.Page

	// Cached is true when the page came from the cache store.
	Cached bool

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesParsed     int
	FilesCached     int
	FilesFailed     int

	// Elements counts top-level elements across all pages.
	Elements int

	// BySyntax counts loaded files per syntax.
	BySyntax map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any file failed to load.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesFailed > 0
}

// Pages returns the outcomes that loaded successfully.
func (r *Result) Pages() []FileOutcome {
	if r == nil {
		return nil
	}
	out := make([]FileOutcome, 0, len(r.Files))
	for _, f := range r.Files {
		if f.Error == nil {
			out = append(out, f)
		}
	}
	return out
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}
	if outcome.Cached {
		r.Stats.FilesCached++
	} else {
		r.Stats.FilesParsed++
	}
	if r.Stats.BySyntax == nil {
		r.Stats.BySyntax = make(map[string]int)
	}
	r.Stats.BySyntax[outcome.Syntax]++
	if outcome.Page != nil {
		r.Stats.Elements += outcome.Page.Len()
	}
}
