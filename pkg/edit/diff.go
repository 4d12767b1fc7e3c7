package edit

import (
	"bytes"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

// Diff is the difference between a page before and after edits.
type Diff struct {
	Path     string
	Original []byte
	Modified []byte
}

// HasChanges returns true if the contents differ.
func (d Diff) HasChanges() bool {
	return !bytes.Equal(d.Original, d.Modified)
}

// Unified renders the diff with n lines of context. Unchanged content
// renders as "".
func (d Diff) Unified(n int) (string, error) {
	if !d.HasChanges() {
		return "", nil
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(d.Original)),
		B:        difflib.SplitLines(string(d.Modified)),
		FromFile: "a/" + d.Path,
		ToFile:   "b/" + d.Path,
		Context:  n,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", d.Path, err)
	}
	return text, nil
}

// String renders the diff with DefaultContext lines of context.
func (d Diff) String() string {
	text, err := d.Unified(DefaultContext)
	if err != nil {
		return ""
	}
	return text
}
