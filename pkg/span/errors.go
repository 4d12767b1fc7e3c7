package span

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/govimwiki/pkg/located"
)

// ErrNoMatch is wrapped by every local parse failure.
var ErrNoMatch = errors.New("no match")

// ErrNoProgress is returned by repetition combinators whose inner parser
// succeeded without consuming input.
var ErrNoProgress = errors.New("parser made no progress")

// Error is a positioned parse failure.
//
// Contexts holds the labels of every Context combinator the failure
// passed through, innermost first.
type Error struct {
	Expected string
	Contexts []string
	Err      error

	at Span
}

// Fail creates a failure at s.
func Fail(s Span, expected string) *Error {
	return &Error{Expected: expected, Err: ErrNoMatch, at: s}
}

// Offset returns the byte offset the failure occurred at.
func (e *Error) Offset() int { return e.at.Offset() }

// Position returns the 1-based line and column the failure occurred at.
func (e *Error) Position() located.Position { return e.at.Position() }

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: expected %s", e.Position(), e.Expected)
	if len(e.Contexts) > 0 {
		b.WriteString(" (in ")
		for i := len(e.Contexts) - 1; i >= 0; i-- {
			b.WriteString(e.Contexts[i])
			if i > 0 {
				b.WriteString(" > ")
			}
		}
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// furthest returns whichever error was raised deeper into the input.
func furthest(a, b error) error {
	var ea, eb *Error
	if !errors.As(a, &ea) {
		return b
	}
	if !errors.As(b, &eb) {
		return a
	}
	if eb.Offset() > ea.Offset() {
		return b
	}
	return a
}
