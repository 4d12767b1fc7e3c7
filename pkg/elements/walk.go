package elements

import (
	"errors"

	"github.com/yaklabco/govimwiki/pkg/located"
)

// errStopWalk stops a walk early without reporting an error.
var errStopWalk = errors.New("stop walk")

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(e located.Located[Element], depth int) error

// Walk performs a pre-order traversal starting at root. depth is 0 for
// root. If fn returns a non-nil error, the walk stops and returns it.
func Walk(root located.Located[Element], fn WalkFunc) error {
	return walk(root, 0, fn)
}

func walk(e located.Located[Element], depth int, fn WalkFunc) error {
	if e.Value == nil {
		return nil
	}
	if err := fn(e, depth); err != nil {
		return err
	}
	for _, child := range e.Value.Children() {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkPage walks every top-level element of page in order.
func WalkPage(page *Page, fn WalkFunc) error {
	for _, e := range page.Elements.Elements() {
		if err := Walk(e, fn); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns all elements of page matching the predicate.
func FindAll(page *Page, predicate func(e located.Located[Element]) bool) []located.Located[Element] {
	var result []located.Located[Element]

	//nolint:errcheck // The callback never fails.
	WalkPage(page, func(e located.Located[Element], _ int) error {
		if predicate(e) {
			result = append(result, e)
		}
		return nil
	})

	return result
}

// FindFirst returns the first element matching the predicate.
func FindFirst(page *Page, predicate func(e located.Located[Element]) bool) (located.Located[Element], bool) {
	var found located.Located[Element]
	ok := false

	//nolint:errcheck // errStopWalk is expected.
	WalkPage(page, func(e located.Located[Element], _ int) error {
		if predicate(e) {
			found, ok = e, true
			return errStopWalk
		}
		return nil
	})

	return found, ok
}

// FindByKind returns all elements of the specified kind.
func FindByKind(page *Page, kind Kind) []located.Located[Element] {
	return FindAll(page, func(e located.Located[Element]) bool {
		return e.Value.Kind() == kind
	})
}

// CountByKind tallies the elements of page by kind.
func CountByKind(page *Page) map[Kind]int {
	counts := make(map[Kind]int)

	//nolint:errcheck // The callback never fails.
	WalkPage(page, func(e located.Located[Element], _ int) error {
		counts[e.Value.Kind()]++
		return nil
	})

	return counts
}
