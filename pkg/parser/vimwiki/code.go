package vimwiki

import (
	"strings"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/span"
)

// codeBlock parses a "{{{lang;key="value"" fenced block closed by "}}}".
func codeBlock(s span.Span) (span.Span, elements.CodeBlock, error) {
	rest, _, err := span.Preceded(span.BeginningOfLine, span.Preceded(span.Space0, span.Tag("{{{")))(s)
	if err != nil {
		return s, elements.CodeBlock{}, err
	}

	var block elements.CodeBlock

	language := span.Verify(span.TakeLineUntil1(";"), func(l span.Span) bool {
		return !strings.Contains(l.Remaining(), "=") && !l.IsOnlyWhitespace()
	}, "language")
	if next, lang, ok := span.Try(rest, language); ok {
		block.Language = strings.TrimSpace(lang.Remaining())
		rest = next
	}
	if next, _, ok := span.Try(rest, span.Char(';')); ok {
		rest = next
	}

	if next, pairs, ok := span.Try(rest, span.SeparatedList1(span.Char(';'), codeProperty)); ok {
		block.Metadata = make(map[string]string, len(pairs))
		for _, kv := range pairs {
			block.Metadata[kv[0]] = kv[1]
		}
		rest = next
	}

	rest, _, err = span.Preceded(span.Space0, span.LineEnding)(rest)
	if err != nil {
		return s, elements.CodeBlock{}, err
	}

	rest, lines, err := fencedLines(rest, codeBlockEnd)
	if err != nil {
		return s, elements.CodeBlock{}, err
	}
	block.Lines = lines
	return rest, block, nil
}

// codeProperty parses `key="value"`.
func codeProperty(s span.Span) (span.Span, [2]string, error) {
	rest, _, _ := span.Space0(s)
	rest, key, err := span.TakeLineUntil1("=")(rest)
	if err != nil {
		return s, [2]string{}, err
	}
	rest, value, err := span.Delimited(span.Tag(`="`), span.TakeLineUntil(`"`), span.Char('"'))(rest)
	if err != nil {
		return s, [2]string{}, err
	}
	return rest, [2]string{strings.TrimSpace(key.Remaining()), value.Remaining()}, nil
}

func codeBlockEnd(s span.Span) (span.Span, span.Unit, error) {
	return fenceEnd("}}}")(s)
}

func fenceEnd(tag string) span.Parser[span.Unit] {
	return span.Preceded(
		span.Preceded(span.BeginningOfLine, span.Preceded(span.Space0, span.Tag(tag))),
		span.Preceded(span.Space0, span.EndOfLineOrInput),
	)
}

// fencedLines collects raw lines until end matches, consuming the closing
// line too. It fails when input runs out first.
func fencedLines(s span.Span, end span.Parser[span.Unit]) (span.Span, []string, error) {
	rest, lines, err := span.Many0(span.Preceded(span.Not(end), span.Map(span.AnyLine, spanText)))(s)
	if err != nil {
		return s, nil, err
	}
	rest, _, err = end(rest)
	if err != nil {
		return s, nil, err
	}
	return rest, lines, nil
}

// mathBlock parses "{{$%env%" fenced block closed by "}}$".
func mathBlock(s span.Span) (span.Span, elements.MathBlock, error) {
	rest, _, err := span.Preceded(span.BeginningOfLine, span.Preceded(span.Space0, span.Tag("{{$")))(s)
	if err != nil {
		return s, elements.MathBlock{}, err
	}

	var block elements.MathBlock
	env := span.Delimited(span.Char('%'), span.TakeLineUntil1("%"), span.Char('%'))
	if next, e, ok := span.Try(rest, env); ok {
		block.Environment = e.Remaining()
		rest = next
	}

	rest, _, err = span.Preceded(span.Space0, span.LineEnding)(rest)
	if err != nil {
		return s, elements.MathBlock{}, err
	}

	rest, lines, err := fencedLines(rest, fenceEnd("}}$"))
	if err != nil {
		return s, elements.MathBlock{}, err
	}
	block.Lines = lines
	return rest, block, nil
}
