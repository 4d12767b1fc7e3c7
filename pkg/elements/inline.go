package elements

import "github.com/yaklabco/govimwiki/pkg/located"

// Text is a run of plain text.
type Text string

// Kind implements Element.
func (Text) Kind() Kind { return KindText }

// Children returns nil.
func (Text) Children() []located.Located[Element] { return nil }

// Decoration is the style applied by a decorated text span.
type Decoration int

// Decorations and their delimiters.
const (
	DecorationBold Decoration = iota
	DecorationItalic
	DecorationBoldItalic
	DecorationStrikeout
	DecorationSuperscript
	DecorationSubscript
)

// String returns the decoration name.
func (d Decoration) String() string {
	switch d {
	case DecorationBold:
		return "bold"
	case DecorationItalic:
		return "italic"
	case DecorationBoldItalic:
		return "bold_italic"
	case DecorationStrikeout:
		return "strikeout"
	case DecorationSuperscript:
		return "superscript"
	case DecorationSubscript:
		return "subscript"
	default:
		return "unknown"
	}
}

// DecoratedText is styled text such as "*bold*". Its contents are text,
// keywords, links and nested decorated text.
type DecoratedText struct {
	Decoration Decoration     `json:"decoration"`
	Contents   InlineElements `json:"contents"`
}

// Kind implements Element.
func (DecoratedText) Kind() Kind { return KindDecoratedText }

// Children returns the decorated contents.
func (d DecoratedText) Children() []located.Located[Element] { return d.Contents.Elements() }

// CodeInline is "`code`".
type CodeInline struct {
	Code string `json:"code"`
}

// Kind implements Element.
func (CodeInline) Kind() Kind { return KindCodeInline }

// Children returns nil.
func (CodeInline) Children() []located.Located[Element] { return nil }

// MathInline is "$formula$".
type MathInline struct {
	Formula string `json:"formula"`
}

// Kind implements Element.
func (MathInline) Kind() Kind { return KindMathInline }

// Children returns nil.
func (MathInline) Children() []located.Located[Element] { return nil }

// Tags is ":tag1:tag2:".
type Tags struct {
	Names []string `json:"names"`
}

// Kind implements Element.
func (Tags) Kind() Kind { return KindTags }

// Children returns nil.
func (Tags) Children() []located.Located[Element] { return nil }

// Has reports whether name is one of the tags.
func (t Tags) Has(name string) bool {
	for _, n := range t.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Keyword is one of the recognised action words.
type Keyword string

// Recognised keywords.
const (
	KeywordDone    Keyword = "DONE"
	KeywordFixed   Keyword = "FIXED"
	KeywordFixme   Keyword = "FIXME"
	KeywordStarted Keyword = "STARTED"
	KeywordTodo    Keyword = "TODO"
	KeywordXXX     Keyword = "XXX"
)

// Keywords lists every keyword, longest first where prefixes collide.
//
//nolint:gochecknoglobals // Fixed set.
var Keywords = []Keyword{
	KeywordDone, KeywordFixed, KeywordFixme, KeywordStarted, KeywordTodo, KeywordXXX,
}

// Kind implements Element.
func (Keyword) Kind() Kind { return KindKeyword }

// Children returns nil.
func (Keyword) Children() []located.Located[Element] { return nil }

func (Text) isElement()          {}
func (DecoratedText) isElement() {}
func (CodeInline) isElement()    {}
func (MathInline) isElement()    {}
func (Tags) isElement()          {}
func (Keyword) isElement()       {}
func (Link) isElement()          {}

func (Text) isInline()          {}
func (DecoratedText) isInline() {}
func (CodeInline) isInline()    {}
func (MathInline) isInline()    {}
func (Tags) isInline()          {}
func (Keyword) isInline()       {}
func (Link) isInline()          {}
func (Comment) isInline()       {}
