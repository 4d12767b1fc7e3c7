package elements_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
)

func text(s string) located.Located[elements.InlineElement] {
	return located.New[elements.InlineElement](elements.Text(s), located.Region{})
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   elements.Element
		want string
	}{
		{"nil", nil, "unknown"},
		{"text", elements.Text("hi"), `text "hi"`},
		{"header", elements.Header{Level: 2, Content: elements.NewInlineElementContainer(text("Tasks"))}, `header 2 "Tasks"`},
		{"centered", elements.Header{Level: 1, Centered: true}, `header 1 "" centered`},
		{"bold", elements.DecoratedText{Decoration: elements.DecorationBold, Contents: elements.InlineElements{text("b")}}, `decorated_text bold "b"`},
		{
			"link",
			elements.Link{LinkKind: elements.LinkWiki, Path: "Page", Anchors: []string{"sec"}, Description: &elements.Description{Text: "label"}},
			`link wiki -> Page#sec "label"`,
		},
		{"raw link", elements.Link{LinkKind: elements.LinkRaw, Scheme: "https", Path: "//x.org"}, "link raw -> https://x.org"},
		{"tags", elements.Tags{Names: []string{"a", "b"}}, "tags a, b"},
		{"keyword", elements.Keyword("TODO"), "keyword TODO"},
		{"todo item", elements.ListItem{Type: elements.ItemNumber, Suffix: elements.SuffixPeriod, Pos: 1,
			Attributes: elements.ListItemAttributes{TodoStatus: elements.TodoComplete}}, "list_item 2. [X]"},
		{"code", elements.CodeBlock{Language: "go", Lines: []string{"a", "b"}}, "code_block go, 2 lines"},
		{"math", elements.MathBlock{Lines: []string{"x"}}, "math_block 1 line"},
		{"align cell", elements.Cell{CellKind: elements.CellAlign, Align: elements.AlignRight}, "cell align right"},
		{"span cell", elements.Cell{CellKind: elements.CellSpanAbove}, "cell span above"},
		{"divider", elements.Divider{}, "divider"},
		{"title", elements.Placeholder{PlaceholderKind: elements.PlaceholderTitle, Value: "Home"}, `placeholder title "Home"`},
		{
			"date",
			elements.Placeholder{PlaceholderKind: elements.PlaceholderDate, Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
			"placeholder date 2024-03-09",
		},
		{"list", elements.List{}, "list 0 items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, elements.Describe(tt.in))
		})
	}
}

func TestDescribe_Truncates(t *testing.T) {
	t.Parallel()

	got := elements.Describe(elements.Text(strings.Repeat("x", 100)))
	assert.Less(t, len([]rune(got)), 60)
	assert.Contains(t, got, "…")
}
