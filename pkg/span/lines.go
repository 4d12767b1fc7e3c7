package span

import "strings"

// LineEnding matches "\n" or "\r\n".
func LineEnding(s Span) (Span, Span, error) {
	switch {
	case s.HasPrefix("\n"):
		return s.Advance(1), s.WithLength(1), nil
	case s.HasPrefix("\r\n"):
		return s.Advance(2), s.WithLength(2), nil
	default:
		return s, Span{}, Fail(s, "line ending")
	}
}

// EndOfLineOrInput matches a line ending or the end of input.
func EndOfLineOrInput(s Span) (Span, Unit, error) {
	if s.IsEmpty() {
		return s, Unit{}, nil
	}
	rest, _, err := LineEnding(s)
	if err != nil {
		return s, Unit{}, Fail(s, "end of line or input")
	}
	return rest, Unit{}, nil
}

// BeginningOfLine succeeds without consuming input when s is at the start
// of a line.
func BeginningOfLine(s Span) (Span, Unit, error) {
	if !s.AtLineStart() {
		return s, Unit{}, Fail(s, "beginning of line")
	}
	return s, Unit{}, nil
}

// BlankLine matches a line that holds nothing but whitespace, including
// its terminator. Empty input is not a blank line.
func BlankLine(s Span) (Span, Unit, error) {
	if s.IsEmpty() || !s.AtLineStart() {
		return s, Unit{}, Fail(s, "blank line")
	}
	rest, ws, _ := Space0(s)
	if rest.IsEmpty() {
		if ws.IsEmpty() {
			return s, Unit{}, Fail(s, "blank line")
		}
		return rest, Unit{}, nil
	}
	rest, _, err := LineEnding(rest)
	if err != nil {
		return s, Unit{}, Fail(s, "blank line")
	}
	return rest, Unit{}, nil
}

// TakeUntilEndOfLineOrInput consumes everything up to, but excluding, the
// next line ending.
func TakeUntilEndOfLineOrInput(s Span) (Span, Span, error) {
	rest := s.Remaining()
	n := strings.IndexByte(rest, '\n')
	if n < 0 {
		n = len(rest)
	} else if n > 0 && rest[n-1] == '\r' {
		n--
	}
	return s.Advance(n), s.WithLength(n), nil
}

// AnyLine consumes a full line, including its terminator, producing the
// line's content. It fails on empty input.
func AnyLine(s Span) (Span, Span, error) {
	if s.IsEmpty() || !s.AtLineStart() {
		return s, Span{}, Fail(s, "line")
	}
	rest, content, _ := TakeUntilEndOfLineOrInput(s)
	rest, _, _ = EndOfLineOrInput(rest)
	return rest, content, nil
}

// NonBlankLine is AnyLine restricted to lines with visible content.
func NonBlankLine(s Span) (Span, Span, error) {
	rest, content, err := AnyLine(s)
	if err != nil {
		return s, Span{}, err
	}
	if content.IsOnlyWhitespace() {
		return s, Span{}, Fail(s, "non-blank line")
	}
	return rest, content, nil
}

// TakeLineWhile consumes runes on the current line while p matches at
// each of them. p only gates each step; one rune is consumed per step.
func TakeLineWhile[T any](p Parser[T]) Parser[Span] {
	return func(s Span) (Span, Span, error) {
		cur := s
		for !cur.AtLineEnd() {
			if _, _, err := p(cur); err != nil {
				break
			}
			cur, _, _ = AnyChar(cur)
		}
		return cur, s.Until(cur), nil
	}
}

// TakeLineWhile1 is TakeLineWhile that requires at least one rune.
func TakeLineWhile1[T any](p Parser[T]) Parser[Span] {
	inner := TakeLineWhile(p)
	return func(s Span) (Span, Span, error) {
		rest, taken, _ := inner(s)
		if taken.IsEmpty() {
			return s, taken, Fail(s, "line content")
		}
		return rest, taken, nil
	}
}

// TakeLineUntil consumes the current line up to the first occurrence of
// pattern or the line end, whichever comes first.
func TakeLineUntil(pattern string) Parser[Span] {
	return TakeLineUntilOneOf(pattern)
}

// TakeLineUntil1 is TakeLineUntil that requires at least one byte.
func TakeLineUntil1(pattern string) Parser[Span] {
	return TakeLineUntilOneOf1(pattern)
}

// TakeLineUntilOneOf consumes the current line up to the first occurrence
// of any of patterns or the line end.
func TakeLineUntilOneOf(patterns ...string) Parser[Span] {
	return func(s Span) (Span, Span, error) {
		_, line, _ := TakeUntilEndOfLineOrInput(s)
		n := indexAny(line.Remaining(), patterns)
		if n < 0 {
			n = line.Len()
		}
		return s.Advance(n), s.WithLength(n), nil
	}
}

// TakeLineUntilOneOf1 is TakeLineUntilOneOf that requires at least one byte.
func TakeLineUntilOneOf1(patterns ...string) Parser[Span] {
	inner := TakeLineUntilOneOf(patterns...)
	return func(s Span) (Span, Span, error) {
		rest, taken, _ := inner(s)
		if taken.IsEmpty() {
			return s, taken, Fail(s, "text before "+strings.Join(patterns, " or "))
		}
		return rest, taken, nil
	}
}

// indexAny returns the smallest index at which any pattern occurs in text.
func indexAny(text string, patterns []string) int {
	best := -1
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if i := strings.Index(text, p); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

// SurroundInLine1 matches start, at least one byte of content on the same
// line, and end, producing the content. The content may not begin with
// end.
func SurroundInLine1(start, end string) Parser[Span] {
	return func(s Span) (Span, Span, error) {
		if !s.HasPrefix(start) {
			return s, Span{}, Fail(s, "'"+start+"'")
		}
		body := s.Advance(len(start))
		_, line, _ := TakeUntilEndOfLineOrInput(body)
		text := line.Remaining()
		n := strings.Index(text, end)
		if n <= 0 {
			return s, Span{}, Fail(body, "'"+end+"'")
		}
		return body.Advance(n + len(end)), body.WithLength(n), nil
	}
}
