package elements

import (
	"fmt"
	"strconv"
	"strings"
)

// describeLimit caps the quoted text in a description.
const describeLimit = 40

// Describe returns a one-line human summary of e, such as
// `header 2 "Title"` or `link wiki -> Page#anchor`.
func Describe(e Element) string {
	if e == nil {
		return KindUnknown.String()
	}
	detail := describeDetail(e)
	if detail == "" {
		return e.Kind().String()
	}
	return e.Kind().String() + " " + detail
}

func describeDetail(e Element) string {
	switch v := e.(type) {
	case Text:
		return quote(string(v))
	case DecoratedText:
		return v.Decoration.String() + " " + quote(NewInlineElementContainer(v.Contents...).PlainText())
	case Link:
		s := v.LinkKind.String() + " -> " + v.Target()
		if v.Description != nil && v.Description.Text != "" {
			s += " " + quote(v.Description.Text)
		}
		return s
	case CodeInline:
		return quote(v.Code)
	case MathInline:
		return quote(v.Formula)
	case Tags:
		return strings.Join(v.Names, ", ")
	case Keyword:
		return string(v)
	case Header:
		s := strconv.Itoa(v.Level) + " " + quote(v.Content.PlainText())
		if v.Centered {
			s += " centered"
		}
		return s
	case Paragraph:
		return lines(len(v.Lines))
	case List:
		return items(len(v.Items))
	case ListItem:
		s := v.Prefix()
		if v.IsTodo() {
			s += " " + v.Attributes.TodoStatus.String()
		}
		return s
	case DefinitionList:
		return items(len(v.Items))
	case Term:
		return quote(v.Content.PlainText())
	case Definition:
		return quote(v.Content.PlainText())
	case Table:
		return fmt.Sprintf("%d rows", len(v.Rows))
	case Cell:
		switch v.CellKind {
		case CellSpanLeft:
			return "span left"
		case CellSpanAbove:
			return "span above"
		case CellAlign:
			return "align " + v.Align.String()
		default:
			return quote(v.Content.PlainText())
		}
	case CodeBlock:
		if v.Language != "" {
			return v.Language + ", " + lines(len(v.Lines))
		}
		return lines(len(v.Lines))
	case MathBlock:
		if v.Environment != "" {
			return v.Environment + ", " + lines(len(v.Lines))
		}
		return lines(len(v.Lines))
	case Blockquote:
		return lines(len(v.Lines))
	case Placeholder:
		return describePlaceholder(v)
	case Comment:
		return quote(strings.Join(v.Lines, " "))
	default:
		return ""
	}
}

func describePlaceholder(p Placeholder) string {
	switch p.PlaceholderKind {
	case PlaceholderTitle:
		return "title " + quote(p.Value)
	case PlaceholderNoHTML:
		return "nohtml"
	case PlaceholderTemplate:
		return "template " + quote(p.Value)
	case PlaceholderDate:
		return "date " + p.Date.Format(DiaryDateLayout)
	default:
		return p.Name + " " + quote(p.Value)
	}
}

func quote(s string) string {
	if r := []rune(s); len(r) > describeLimit {
		s = string(r[:describeLimit-1]) + "…"
	}
	return strconv.Quote(s)
}

func lines(n int) string {
	if n == 1 {
		return "1 line"
	}
	return strconv.Itoa(n) + " lines"
}

func items(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}
