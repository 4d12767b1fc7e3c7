package vimwiki

import (
	"time"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/span"
)

const minDividerLen = 4

// divider parses a line of four or more '-'.
func divider(s span.Span) (span.Span, elements.Divider, error) {
	rest, _, err := span.BeginningOfLine(s)
	if err != nil {
		return s, elements.Divider{}, err
	}
	rest, dashes, err := span.TakeLineWhile1(span.Char('-'))(rest)
	if err != nil || dashes.Len() < minDividerLen {
		return s, elements.Divider{}, span.Fail(s, "divider")
	}
	rest, _, err = span.Preceded(span.Space0, span.EndOfLineOrInput)(rest)
	if err != nil {
		return s, elements.Divider{}, err
	}
	return rest, elements.Divider{}, nil
}

// placeholder parses "%title", "%nohtml", "%template", "%date" and any
// other "%name value" directive.
func placeholder(s span.Span) (span.Span, elements.Placeholder, error) {
	return span.Delimited(
		span.BeginningOfLine,
		span.Alt(titlePlaceholder, noHTMLPlaceholder, templatePlaceholder, datePlaceholder, otherPlaceholder),
		span.Preceded(span.Space0, span.EndOfLineOrInput),
	)(s)
}

func valuePlaceholder(name string, kind elements.PlaceholderKind) span.Parser[elements.Placeholder] {
	return span.Map(
		span.Preceded(span.Tag("%"+name), span.Preceded(span.Space1, restOfLine)),
		func(v span.Span) elements.Placeholder {
			return elements.Placeholder{PlaceholderKind: kind, Name: name, Value: v.Remaining()}
		},
	)
}

func titlePlaceholder(s span.Span) (span.Span, elements.Placeholder, error) {
	return valuePlaceholder("title", elements.PlaceholderTitle)(s)
}

func templatePlaceholder(s span.Span) (span.Span, elements.Placeholder, error) {
	return valuePlaceholder("template", elements.PlaceholderTemplate)(s)
}

func noHTMLPlaceholder(s span.Span) (span.Span, elements.Placeholder, error) {
	return span.Value(
		elements.Placeholder{PlaceholderKind: elements.PlaceholderNoHTML, Name: "nohtml"},
		span.Terminated(span.Tag("%nohtml"), span.Peek(span.Preceded(span.Space0, span.EndOfLineOrInput))),
	)(s)
}

func datePlaceholder(s span.Span) (span.Span, elements.Placeholder, error) {
	date := span.MapRes(span.TakeLineWhile1(isURIChar), func(d span.Span) (time.Time, error) {
		return time.Parse(elements.DiaryDateLayout, d.Remaining())
	}, "date")
	return span.Map(span.Preceded(span.Tag("%date"), span.Preceded(span.Space1, date)), func(t time.Time) elements.Placeholder {
		return elements.Placeholder{
			PlaceholderKind: elements.PlaceholderDate,
			Name:            "date",
			Value:           t.Format(elements.DiaryDateLayout),
			Date:            t,
		}
	})(s)
}

func isPlaceholderNameChar(s span.Span) (span.Span, span.Unit, error) {
	return span.Not(span.OneOf(" \t%"))(s)
}

func otherPlaceholder(s span.Span) (span.Span, elements.Placeholder, error) {
	rest, _, err := span.Char('%')(s)
	if err != nil {
		return s, elements.Placeholder{}, err
	}
	rest, name, err := span.TakeLineWhile1(isPlaceholderNameChar)(rest)
	if err != nil {
		return s, elements.Placeholder{}, err
	}
	switch name.Remaining() {
	case "title", "nohtml", "template", "date":
		return s, elements.Placeholder{}, span.Fail(name, "placeholder name")
	}
	rest, value, err := span.Preceded(span.Space1, restOfLine)(rest)
	if err != nil {
		return s, elements.Placeholder{}, err
	}
	return rest, elements.Placeholder{
		PlaceholderKind: elements.PlaceholderOther,
		Name:            name.Remaining(),
		Value:           value.Remaining(),
	}, nil
}
