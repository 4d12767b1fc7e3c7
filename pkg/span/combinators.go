package span

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Parser consumes a prefix of a Span and produces a value. On failure the
// returned Span is meaningless and the error wraps ErrNoMatch.
type Parser[T any] func(Span) (Span, T, error)

// Unit is the value produced by parsers that only recognize input.
type Unit = struct{}

// Try runs p and reports success as a boolean, returning s unchanged on
// failure.
func Try[T any](s Span, p Parser[T]) (Span, T, bool) {
	rest, v, err := p(s)
	if err != nil {
		var zero T
		return s, zero, false
	}
	return rest, v, true
}

// Matches reports whether p would succeed at s.
func Matches[T any](s Span, p Parser[T]) bool {
	_, _, err := p(s)
	return err == nil
}

// Tag matches the literal text.
func Tag(text string) Parser[string] {
	return func(s Span) (Span, string, error) {
		if !s.HasPrefix(text) {
			return s, "", Fail(s, "'"+text+"'")
		}
		return s.Advance(len(text)), text, nil
	}
}

// Char matches a single byte.
func Char(c byte) Parser[byte] {
	return func(s Span) (Span, byte, error) {
		if b, ok := s.First(); ok && b == c {
			return s.Advance(1), c, nil
		}
		return s, 0, Fail(s, "'"+string(c)+"'")
	}
}

// OneOf matches any single byte from chars.
func OneOf(chars string) Parser[byte] {
	return func(s Span) (Span, byte, error) {
		if b, ok := s.First(); ok {
			for i := 0; i < len(chars); i++ {
				if chars[i] == b {
					return s.Advance(1), b, nil
				}
			}
		}
		return s, 0, Fail(s, "one of "+chars)
	}
}

// AnyChar matches a single UTF-8 encoded rune.
func AnyChar(s Span) (Span, rune, error) {
	if s.IsEmpty() {
		return s, 0, Fail(s, "any character")
	}
	r, size := utf8.DecodeRuneInString(s.Remaining())
	return s.Advance(size), r, nil
}

// TakeWhile consumes bytes while pred holds. It may match nothing.
func TakeWhile(pred func(byte) bool) Parser[Span] {
	return func(s Span) (Span, Span, error) {
		rest := s.Remaining()
		n := 0
		for n < len(rest) && pred(rest[n]) {
			n++
		}
		return s.Advance(n), s.WithLength(n), nil
	}
}

// TakeWhile1 is TakeWhile that requires at least one byte.
func TakeWhile1(pred func(byte) bool, expected string) Parser[Span] {
	inner := TakeWhile(pred)
	return func(s Span) (Span, Span, error) {
		rest, taken, _ := inner(s)
		if taken.IsEmpty() {
			return s, taken, Fail(s, expected)
		}
		return rest, taken, nil
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }

// Space0 consumes zero or more spaces and tabs.
func Space0(s Span) (Span, Span, error) {
	return TakeWhile(isSpace)(s)
}

// Space1 consumes one or more spaces and tabs.
func Space1(s Span) (Span, Span, error) {
	return TakeWhile1(isSpace, "whitespace")(s)
}

// Not succeeds without consuming input when p fails, and fails when p
// succeeds.
func Not[T any](p Parser[T]) Parser[Unit] {
	return func(s Span) (Span, Unit, error) {
		if _, _, err := p(s); err == nil {
			return s, Unit{}, Fail(s, "no match")
		}
		return s, Unit{}, nil
	}
}

// Peek runs p without consuming input.
func Peek[T any](p Parser[T]) Parser[T] {
	return func(s Span) (Span, T, error) {
		_, v, err := p(s)
		return s, v, err
	}
}

// Opt runs p, producing nil instead of failing.
func Opt[T any](p Parser[T]) Parser[*T] {
	return func(s Span) (Span, *T, error) {
		rest, v, err := p(s)
		if err != nil {
			return s, nil, nil
		}
		return rest, &v, nil
	}
}

// Alt tries each parser in order and returns the first success. When all
// fail the error that reached furthest into the input is returned.
func Alt[T any](parsers ...Parser[T]) Parser[T] {
	return func(s Span) (Span, T, error) {
		var errOut error
		for _, p := range parsers {
			rest, v, err := p(s)
			if err == nil {
				return rest, v, nil
			}
			errOut = furthest(errOut, err)
		}
		var zero T
		if errOut == nil {
			errOut = Fail(s, "an alternative")
		}
		return s, zero, errOut
	}
}

// Many0 applies p until it fails.
func Many0[T any](p Parser[T]) Parser[[]T] {
	return func(s Span) (Span, []T, error) {
		var out []T
		for {
			rest, v, err := p(s)
			if err != nil {
				return s, out, nil
			}
			if rest.Offset() == s.Offset() {
				e := Fail(s, "progress")
				e.Err = ErrNoProgress
				return s, out, e
			}
			out = append(out, v)
			s = rest
		}
	}
}

// Many1 applies p until it fails, requiring at least one success.
func Many1[T any](p Parser[T]) Parser[[]T] {
	many := Many0(p)
	return func(s Span) (Span, []T, error) {
		rest, first, err := p(s)
		if err != nil {
			return s, nil, err
		}
		if rest.Offset() == s.Offset() {
			e := Fail(s, "progress")
			e.Err = ErrNoProgress
			return s, nil, e
		}
		rest, more, err := many(rest)
		if err != nil {
			return s, nil, err
		}
		return rest, append([]T{first}, more...), nil
	}
}

// SeparatedList1 parses one or more p separated by sep.
func SeparatedList1[T, S any](sep Parser[S], p Parser[T]) Parser[[]T] {
	return func(s Span) (Span, []T, error) {
		rest, first, err := p(s)
		if err != nil {
			return s, nil, err
		}
		out := []T{first}
		for {
			afterSep, _, err := sep(rest)
			if err != nil {
				return rest, out, nil
			}
			next, v, err := p(afterSep)
			if err != nil {
				return rest, out, nil
			}
			out = append(out, v)
			rest = next
		}
	}
}

// Map transforms the value produced by p.
func Map[T, U any](p Parser[T], fn func(T) U) Parser[U] {
	return func(s Span) (Span, U, error) {
		rest, v, err := p(s)
		if err != nil {
			var zero U
			return s, zero, err
		}
		return rest, fn(v), nil
	}
}

// MapRes transforms the value produced by p with a fallible function. A
// conversion error becomes a parse failure at s.
func MapRes[T, U any](p Parser[T], fn func(T) (U, error), expected string) Parser[U] {
	return func(s Span) (Span, U, error) {
		var zero U
		rest, v, err := p(s)
		if err != nil {
			return s, zero, err
		}
		u, err := fn(v)
		if err != nil {
			return s, zero, Fail(s, expected)
		}
		return rest, u, nil
	}
}

// Value replaces the value produced by p with v.
func Value[T, U any](v U, p Parser[T]) Parser[U] {
	return Map(p, func(T) U { return v })
}

// Verify fails when pred rejects the value produced by p.
func Verify[T any](p Parser[T], pred func(T) bool, expected string) Parser[T] {
	return func(s Span) (Span, T, error) {
		rest, v, err := p(s)
		if err != nil {
			return s, v, err
		}
		if !pred(v) {
			var zero T
			return s, zero, Fail(s, expected)
		}
		return rest, v, nil
	}
}

// Preceded runs first then second, keeping the second value.
func Preceded[A, B any](first Parser[A], second Parser[B]) Parser[B] {
	return func(s Span) (Span, B, error) {
		var zero B
		rest, _, err := first(s)
		if err != nil {
			return s, zero, err
		}
		rest, v, err := second(rest)
		if err != nil {
			return s, zero, err
		}
		return rest, v, nil
	}
}

// Terminated runs first then second, keeping the first value.
func Terminated[A, B any](first Parser[A], second Parser[B]) Parser[A] {
	return func(s Span) (Span, A, error) {
		var zero A
		rest, v, err := first(s)
		if err != nil {
			return s, zero, err
		}
		rest, _, err = second(rest)
		if err != nil {
			return s, zero, err
		}
		return rest, v, nil
	}
}

// Delimited runs open, p and close, keeping the value of p.
func Delimited[A, B, C any](open Parser[A], p Parser[B], closing Parser[C]) Parser[B] {
	return Preceded(open, Terminated(p, closing))
}

// Recognize returns the input consumed by p instead of its value.
func Recognize[T any](p Parser[T]) Parser[Span] {
	return func(s Span) (Span, Span, error) {
		rest, _, err := p(s)
		if err != nil {
			return s, Span{}, err
		}
		return rest, s.Until(rest), nil
	}
}

// MapParser runs outer, then runs inner over the span outer produced.
// Only the value of inner is kept; the remaining input is that of outer.
func MapParser[T any](outer Parser[Span], inner Parser[T]) Parser[T] {
	return func(s Span) (Span, T, error) {
		var zero T
		rest, sub, err := outer(s)
		if err != nil {
			return s, zero, err
		}
		_, v, err := inner(sub)
		if err != nil {
			return s, zero, err
		}
		return rest, v, nil
	}
}

// NotContains fails if the span captured by p contains pattern.
func NotContains(pattern string, p Parser[Span]) Parser[Span] {
	return Verify(p, func(sub Span) bool {
		return !strings.Contains(sub.Remaining(), pattern)
	}, "text without '"+pattern+"'")
}

// AllConsuming fails unless p consumes every remaining byte.
func AllConsuming[T any](p Parser[T]) Parser[T] {
	return func(s Span) (Span, T, error) {
		rest, v, err := p(s)
		if err != nil {
			return s, v, err
		}
		if !rest.IsEmpty() {
			var zero T
			return s, zero, Fail(rest, "end of input")
		}
		return rest, v, nil
	}
}

// Scan walks the input one byte at a time collecting every match of p.
// It fails if p succeeds without consuming anything.
func Scan[T any](p Parser[T]) Parser[[]T] {
	return func(s Span) (Span, []T, error) {
		var out []T
		for !s.IsEmpty() {
			rest, v, err := p(s)
			if err != nil {
				s = s.Advance(1)
				continue
			}
			if rest.Offset() == s.Offset() {
				e := Fail(s, "progress")
				e.Err = ErrNoProgress
				return s, nil, e
			}
			out = append(out, v)
			s = rest
		}
		return s, out, nil
	}
}

// Deeper runs p one nesting level down and restores the depth afterwards.
func Deeper[T any](p Parser[T]) Parser[T] {
	return func(s Span) (Span, T, error) {
		rest, v, err := p(s.Deeper())
		if err != nil {
			return s, v, err
		}
		return rest.WithDepth(s.Depth()), v, nil
	}
}

// Context labels failures of p with a breadcrumb.
func Context[T any](label string, p Parser[T]) Parser[T] {
	return func(s Span) (Span, T, error) {
		rest, v, err := p(s)
		if err != nil {
			var perr *Error
			if errors.As(err, &perr) {
				perr.Contexts = append(perr.Contexts, label)
			}
			return s, v, err
		}
		return rest, v, nil
	}
}
