package edit

import (
	"cmp"
	"fmt"
	"slices"
)

// RangeError describes an edit that does not fit the content.
type RangeError struct {
	Edit    TextEdit
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes two edits that touch the same bytes.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// Validate checks every edit against a content of length n.
func Validate(edits []TextEdit, n int) error {
	for _, e := range edits {
		switch {
		case e.Start < 0:
			return &RangeError{Edit: e, Message: "start offset is negative"}
		case e.End < e.Start:
			return &RangeError{Edit: e, Message: "end offset is before start offset"}
		case e.End > n:
			return &RangeError{Edit: e, Message: fmt.Sprintf("end offset %d exceeds content length %d", e.End, n)}
		}
	}
	return nil
}

// Sort orders edits by start, then end offset. Insertions at the same
// offset keep their relative order.
func Sort(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
}

// Conflicts returns the first pair of overlapping edits in a sorted slice.
func Conflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		prev, cur := edits[i-1], edits[i]
		if cur.Start < prev.End {
			return &ConflictError{First: prev, Second: cur}
		}
	}
	return nil
}

// Prepare validates edits and returns a sorted, conflict-free copy.
func Prepare(edits []TextEdit, n int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := Validate(edits, n); err != nil {
		return nil, err
	}
	out := slices.Clone(edits)
	Sort(out)
	if err := Conflicts(out); err != nil {
		return nil, err
	}
	return out, nil
}
