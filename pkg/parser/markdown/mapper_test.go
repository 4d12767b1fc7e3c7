package markdown

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/pkg/elements"
)

func parseGFM(t *testing.T, input string) *elements.Page {
	t.Helper()
	page, err := New(FlavorGFM).Parse(context.Background(), "test.md", []byte(input))
	require.NoError(t, err)
	return page
}

func blockAt[T elements.BlockElement](t *testing.T, page *elements.Page, i int) T {
	t.Helper()
	require.Greater(t, page.Len(), i)
	v, ok := page.Elements[i].Value.(T)
	require.Truef(t, ok, "element %d is %s", i, page.Elements[i].Value.Kind())
	return v
}

func TestMapper_Heading(t *testing.T) {
	t.Parallel()

	page := parseGFM(t, "## Hello *there*\n")
	h := blockAt[elements.Header](t, page, 0)

	assert.Equal(t, 2, h.Level)
	assert.Equal(t, "Hello there", h.Content.PlainText())

	region := page.Elements[0].Region
	assert.Equal(t, 0, region.Offset)
	assert.Equal(t, 16, region.Len)
	assert.Equal(t, 1, region.Start.Line)
	assert.Equal(t, 1, region.Start.Column)
}

func TestMapper_ParagraphLines(t *testing.T) {
	t.Parallel()

	page := parseGFM(t, "first line\nsecond line\n")
	p := blockAt[elements.Paragraph](t, page, 0)

	require.Len(t, p.Lines, 2)
	assert.Equal(t, "first line", p.Lines[0].PlainText())
	assert.Equal(t, "second line", p.Lines[1].PlainText())
}

func TestMapper_Emphasis(t *testing.T) {
	t.Parallel()

	page := parseGFM(t, "*a* and **b** and ~~c~~ and `d`")
	p := blockAt[elements.Paragraph](t, page, 0)
	require.Len(t, p.Lines, 1)

	elems := p.Lines[0].Elements
	require.Len(t, elems, 7)

	italic, ok := elems[0].Value.(elements.DecoratedText)
	require.True(t, ok)
	assert.Equal(t, elements.DecorationItalic, italic.Decoration)
	assert.Equal(t, 0, elems[0].Region.Offset)
	assert.Equal(t, 3, elems[0].Region.Len)

	bold, ok := elems[2].Value.(elements.DecoratedText)
	require.True(t, ok)
	assert.Equal(t, elements.DecorationBold, bold.Decoration)
	assert.Equal(t, 8, elems[2].Region.Offset)
	assert.Equal(t, 5, elems[2].Region.Len)
	assert.Equal(t, 1, bold.Contents[0].Region.Depth)

	strike, ok := elems[4].Value.(elements.DecoratedText)
	require.True(t, ok)
	assert.Equal(t, elements.DecorationStrikeout, strike.Decoration)
	assert.Equal(t, 18, elems[4].Region.Offset)
	assert.Equal(t, 5, elems[4].Region.Len)

	assert.Equal(t, elements.CodeInline{Code: "d"}, elems[6].Value)
	assert.Equal(t, 28, elems[6].Region.Offset)
	assert.Equal(t, 3, elems[6].Region.Len)
}

func TestMapper_Links(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		kind   elements.LinkKind
		scheme string
		path   string
		anchor string
		desc   string
	}{
		{"relative page", "[Page](Other.md#sec)", elements.LinkWiki, "", "Other", "sec", "Page"},
		{"url", "[site](https://example.com/x)", elements.LinkRaw, "https", "//example.com/x", "", "site"},
		{"autolink", "<https://example.com>", elements.LinkRaw, "https", "//example.com", "", ""},
		{"image", "![alt](img/cat.png)", elements.LinkTransclusion, "", "img/cat.png", "", "alt"},
		{"bare email", "[mail](me@example.com)", elements.LinkRaw, "mailto", "me@example.com", "", "mail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := parseGFM(t, tt.input)
			p := blockAt[elements.Paragraph](t, page, 0)
			require.NotEmpty(t, p.Lines[0].Elements)

			link, ok := p.Lines[0].Elements[0].Value.(elements.Link)
			require.Truef(t, ok, "got %s", p.Lines[0].Elements[0].Value.Kind())
			assert.Equal(t, tt.kind, link.LinkKind)
			assert.Equal(t, tt.scheme, link.Scheme)
			assert.Equal(t, tt.path, link.Path)
			assert.Equal(t, tt.anchor, link.Anchor())
			if tt.desc == "" {
				assert.Nil(t, link.Description)
			} else {
				require.NotNil(t, link.Description)
				assert.Equal(t, tt.desc, link.Description.Text)
			}
			assert.Equal(t, 0, p.Lines[0].Elements[0].Region.Offset)
			assert.Equal(t, len(tt.input), p.Lines[0].Elements[0].Region.Len)
		})
	}
}

func TestMapper_Lists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		typ    elements.ListItemType
		suffix elements.ListItemSuffix
		marker string
	}{
		{"hyphen", "- a\n- b\n", elements.ItemHyphen, elements.SuffixNone, ""},
		{"asterisk", "* a\n* b\n", elements.ItemAsterisk, elements.SuffixNone, ""},
		{"plus", "+ a\n+ b\n", elements.ItemOther, elements.SuffixNone, "+"},
		{"ordered period", "1. a\n2. b\n", elements.ItemNumber, elements.SuffixPeriod, ""},
		{"ordered paren", "1) a\n2) b\n", elements.ItemNumber, elements.SuffixParen, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			list := blockAt[elements.List](t, parseGFM(t, tt.input), 0)
			require.Len(t, list.Items, 2)
			for i, item := range list.Items {
				assert.Equal(t, tt.typ, item.Value.Type)
				assert.Equal(t, tt.suffix, item.Value.Suffix)
				assert.Equal(t, tt.marker, item.Value.Marker)
				assert.Equal(t, i, item.Value.Pos)
			}
			assert.Equal(t, "a", list.Items[0].Value.InlineContents()[0].PlainText())
		})
	}
}

func TestMapper_NestedListAndTasks(t *testing.T) {
	t.Parallel()

	input := "- [ ] parent\n  - [x] done\n  - [ ] open\n- plain\n"
	list := blockAt[elements.List](t, parseGFM(t, input), 0)
	require.Len(t, list.Items, 2)

	parent := list.Items[0].Value
	assert.Equal(t, elements.TodoIncomplete, parent.Attributes.TodoStatus)
	assert.Contains(t, parent.InlineContents()[0].PlainText(), "parent")

	subs := parent.Sublists()
	require.Len(t, subs, 1)
	require.Len(t, subs[0].Items, 2)
	assert.True(t, subs[0].Items[0].Value.IsTodoComplete())
	assert.True(t, subs[0].Items[1].Value.IsTodoIncomplete())

	progress, ok := parent.TodoProgress()
	require.True(t, ok)
	assert.InDelta(t, 0.5, progress, 1e-9)

	assert.False(t, list.Items[1].Value.IsTodo())
	assert.Equal(t, 0, list.Items[0].Region.Offset)
}

func TestMapper_CodeBlocks(t *testing.T) {
	t.Parallel()

	page := parseGFM(t, "```go\nfmt.Println()\nreturn\n```\n\n    indented\n")
	require.Equal(t, 2, page.Len())

	fenced := blockAt[elements.CodeBlock](t, page, 0)
	assert.Equal(t, "go", fenced.Language)
	assert.Equal(t, []string{"fmt.Println()", "return"}, fenced.Lines)
	assert.Equal(t, 0, page.Elements[0].Region.Offset)
	assert.Equal(t, 4, page.Elements[0].Region.End.Line)

	indented := blockAt[elements.CodeBlock](t, page, 1)
	assert.Empty(t, indented.Language)
	assert.Equal(t, []string{"indented"}, indented.Lines)
}

func TestMapper_Blockquote(t *testing.T) {
	t.Parallel()

	bq := blockAt[elements.Blockquote](t, parseGFM(t, "> quoted\n> more\n"), 0)
	assert.Equal(t, []string{"quoted", "more"}, bq.Lines)
}

func TestMapper_DividerAndComments(t *testing.T) {
	t.Parallel()

	page := parseGFM(t, "---\n\n<!-- note -->\n\n<!--\nfirst\nsecond\n-->\n\n<div>x</div>\n")
	require.Equal(t, 4, page.Len())

	blockAt[elements.Divider](t, page, 0)

	single := blockAt[elements.Comment](t, page, 1)
	assert.False(t, single.MultiLine)
	assert.Equal(t, []string{"note"}, single.Lines)

	multi := blockAt[elements.Comment](t, page, 2)
	assert.True(t, multi.MultiLine)
	assert.Equal(t, []string{"first", "second"}, multi.Lines)

	html := blockAt[elements.Paragraph](t, page, 3)
	assert.Equal(t, "<div>x</div>", html.Lines[0].PlainText())
}

func TestMapper_Table(t *testing.T) {
	t.Parallel()

	table := blockAt[elements.Table](t, parseGFM(t, "| a | b | c |\n|:-:|--:|---|\n| 1 | 2 | 3 |\n"), 0)
	require.Len(t, table.Rows, 3)

	header := table.Header()
	require.Len(t, header, 1)
	assert.Equal(t, "a", strings.TrimSpace(header[0].Cells[0].Value.Content.PlainText()))

	align := table.Rows[1]
	require.True(t, align.IsDivider())
	assert.Equal(t, elements.AlignCenter, align.Cells[0].Value.Align)
	assert.Equal(t, elements.AlignRight, align.Cells[1].Value.Align)
	assert.Equal(t, elements.AlignLeft, align.Cells[2].Value.Align)

	body := table.Body()
	require.Len(t, body, 1)
	assert.Equal(t, "3", strings.TrimSpace(body[0].Cells[2].Value.Content.PlainText()))
}

func TestMapper_DefinitionList(t *testing.T) {
	t.Parallel()

	input := "Apple\n:   Pomaceous fruit\n:   Red or *green*\n"

	page, err := New(FlavorWiki).Parse(context.Background(), "terms.md", []byte(input))
	require.NoError(t, err)
	dl := blockAt[elements.DefinitionList](t, page, 0)

	defs, ok := dl.Lookup("Apple")
	require.True(t, ok)
	require.Len(t, defs, 2)
	assert.Equal(t, "Pomaceous fruit", defs[0].Value.Content.PlainText())
	assert.Equal(t, "Red or green", defs[1].Value.Content.PlainText())
	assert.Equal(t, 6, defs[0].Region.Offset, "definition regions start at the colon")

	gfm := parseGFM(t, input)
	assert.Equal(t, elements.KindParagraph, gfm.Elements[0].Value.Kind(), "gfm has no definition lists")
}
