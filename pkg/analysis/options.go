package analysis

import (
	"cmp"
	"fmt"
	"strings"
)

// SortField orders the pages of a report.
type SortField string

// Sort fields accepted by stats --sort.
const (
	SortByPath     SortField = "path"
	SortByElements SortField = "elements"
	SortByProgress SortField = "progress"
	SortByOpen     SortField = "open"
)

// SortFields lists the valid sort fields in help order.
func SortFields() []SortField {
	return []SortField{SortByPath, SortByElements, SortByProgress, SortByOpen}
}

// ParseSortField accepts a sort field name in any case.
func ParseSortField(name string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(name)))
	if !f.IsValid() {
		return "", fmt.Errorf("unknown sort field %q", name)
	}
	return f, nil
}

// IsValid returns true for one of SortFields.
func (s SortField) IsValid() bool {
	switch s {
	case SortByPath, SortByElements, SortByProgress, SortByOpen:
		return true
	}
	return false
}

// compare orders two pages ascending by s. Unknown fields order by path.
func (s SortField) compare(left, right PageAnalysis) int {
	switch s {
	case SortByElements:
		return cmp.Compare(left.Elements, right.Elements)
	case SortByProgress:
		return cmp.Compare(left.Todos.Progress, right.Todos.Progress)
	case SortByOpen:
		return cmp.Compare(left.Todos.Total-left.Todos.Done, right.Todos.Total-right.Todos.Done)
	default:
		return cmp.Compare(left.Path, right.Path)
	}
}

// Options configures Analyze.
type Options struct {
	IncludeOutline  bool
	IncludeByKind   bool
	DetectLanguages bool // guess the language of untagged code blocks

	SortBy   SortField
	SortDesc bool

	// WorkingDir makes report paths relative when set.
	WorkingDir string
}

// DefaultOptions enables every section and sorts by path.
func DefaultOptions() Options {
	return Options{
		IncludeOutline:  true,
		IncludeByKind:   true,
		DetectLanguages: true,
		SortBy:          SortByPath,
	}
}
