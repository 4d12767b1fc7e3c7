package vimwiki

import (
	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/span"
)

// list parses a list and its nested sublists. Siblings share the first
// item's indentation exactly; deeper lines belong to the previous item.
func list(s span.Span) (span.Span, elements.List, error) {
	rest, level, first, err := listItem(s)
	if err != nil {
		return s, elements.List{}, err
	}

	items := []located.Located[elements.ListItem]{first}
	for !rest.IsEmpty() && indentation(rest) == level {
		next, _, item, err := listItem(rest)
		if err != nil {
			break
		}
		items = append(items, item)
		rest = next
	}

	l := elements.List{Items: items}
	l.Normalize()
	return rest, l, nil
}

// listItem parses one item with its continuation lines. It also returns
// the item's indentation.
func listItem(s span.Span) (span.Span, int, located.Located[elements.ListItem], error) {
	var zero located.Located[elements.ListItem]

	rest, _, err := span.BeginningOfLine(s)
	if err != nil {
		return s, 0, zero, err
	}
	rest, ws, _ := span.Space0(rest)
	level := ws.Len()

	rest, item, err := span.Locate(listItemBody(level))(rest)
	if err != nil {
		return s, 0, zero, err
	}
	return rest, level, item, nil
}

func listItemBody(level int) span.Parser[elements.ListItem] {
	return func(s span.Span) (span.Span, elements.ListItem, error) {
		rest, prefix, err := listItemPrefix(s)
		if err != nil {
			return s, elements.ListItem{}, err
		}

		item := elements.ListItem{Type: prefix.typ, Suffix: prefix.suffix, Marker: prefix.marker}
		if next, status, ok := span.Try(rest, todoStatus); ok {
			item.Attributes.TodoStatus = status
			rest = next
		}

		rest, first, err := span.Locate(firstLineContent)(rest)
		if err != nil {
			return s, elements.ListItem{}, err
		}
		item.Contents = append(item.Contents, located.Upcast[elements.InlineElementContainer, elements.ListItemContent](first))

		rest, more, err := span.Many0(continuation(level))(rest)
		if err != nil {
			return s, elements.ListItem{}, err
		}
		item.Contents = append(item.Contents, more...)

		return rest, item, nil
	}
}

// firstLineContent is the possibly empty remainder of the item's line.
func firstLineContent(s span.Span) (span.Span, elements.InlineElementContainer, error) {
	rest, content, _ := span.Opt(inlineElementContainer)(s)
	rest, _, err := span.EndOfLineOrInput(rest)
	if err != nil {
		return s, elements.InlineElementContainer{}, err
	}
	if content == nil {
		return rest, elements.InlineElementContainer{}, nil
	}
	return rest, *content, nil
}

// continuation parses a line indented deeper than level as either a
// sublist or more content of the current item.
func continuation(level int) span.Parser[located.Located[elements.ListItemContent]] {
	deeper := func(s span.Span) (span.Span, span.Unit, error) {
		if s.IsEmpty() || indentation(s) <= level || span.Matches(s, span.BlankLine) {
			return s, span.Unit{}, span.Fail(s, "deeper indentation")
		}
		return s, span.Unit{}, nil
	}

	sublist := span.Map(span.Locate(list), located.Upcast[elements.List, elements.ListItemContent])
	content := span.Map(
		span.Locate(span.Terminated(inlineElementContainer, span.EndOfLineOrInput)),
		located.Upcast[elements.InlineElementContainer, elements.ListItemContent],
	)

	return span.Preceded(deeper, span.Alt(sublist, span.Preceded(span.Space0, content)))
}

type itemPrefix struct {
	typ    elements.ListItemType
	suffix elements.ListItemSuffix
	marker string
}

func prefixOf(typ elements.ListItemType, suffix elements.ListItemSuffix) func(span.Span) itemPrefix {
	return func(marker span.Span) itemPrefix {
		return itemPrefix{typ: typ, suffix: suffix, marker: marker.Remaining()}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func isLowerRoman(b byte) bool {
	switch b {
	case 'i', 'v', 'x', 'l', 'c', 'd', 'm':
		return true
	}
	return false
}

func isUpperRoman(b byte) bool { return isLowerRoman(b + 'a' - 'A') }

// listItemPrefix parses the item marker and its required separator.
func listItemPrefix(s span.Span) (span.Span, itemPrefix, error) {
	marker := func(typ elements.ListItemType, suffix elements.ListItemSuffix, m span.Parser[span.Span], sep string) span.Parser[itemPrefix] {
		return span.Map(span.Terminated(m, span.Tag(sep)), prefixOf(typ, suffix))
	}
	literal := func(text string) span.Parser[span.Span] {
		return span.Recognize(span.Tag(text))
	}

	number := span.TakeWhile1(isDigit, "number")
	lowerRoman := span.TakeWhile1(isLowerRoman, "roman numeral")
	upperRoman := span.TakeWhile1(isUpperRoman, "roman numeral")
	lowerAlpha := span.TakeWhile1(isLower, "letter")
	upperAlpha := span.TakeWhile1(isUpper, "letter")

	return span.Context("list item prefix", span.Alt(
		marker(elements.ItemHyphen, elements.SuffixNone, literal("-"), " "),
		marker(elements.ItemAsterisk, elements.SuffixNone, literal("*"), " "),
		marker(elements.ItemNumber, elements.SuffixPeriod, number, ". "),
		marker(elements.ItemNumber, elements.SuffixParen, number, ") "),
		marker(elements.ItemLowercaseRoman, elements.SuffixParen, lowerRoman, ") "),
		marker(elements.ItemUppercaseRoman, elements.SuffixParen, upperRoman, ") "),
		marker(elements.ItemLowercaseAlphabet, elements.SuffixParen, lowerAlpha, ") "),
		marker(elements.ItemUppercaseAlphabet, elements.SuffixParen, upperAlpha, ") "),
		marker(elements.ItemPound, elements.SuffixNone, literal("#"), " "),
	))(s)
}

// todoStatus parses a checkbox such as "[X]" followed by a space or the
// line end.
func todoStatus(s span.Span) (span.Span, elements.TodoStatus, error) {
	box := func(status elements.TodoStatus) span.Parser[elements.TodoStatus] {
		return span.Value(status, span.Tag(status.String()))
	}
	return span.Terminated(
		span.Alt(
			box(elements.TodoIncomplete),
			box(elements.TodoPartiallyComplete1),
			box(elements.TodoPartiallyComplete2),
			box(elements.TodoPartiallyComplete3),
			box(elements.TodoComplete),
			box(elements.TodoRejected),
		),
		span.Alt(span.Value(span.Unit{}, span.Char(' ')), span.Peek(span.EndOfLineOrInput)),
	)(s)
}
