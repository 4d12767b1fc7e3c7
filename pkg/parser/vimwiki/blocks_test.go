package vimwiki

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/span"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  elements.Header
	}{
		{
			name:  "level one",
			input: "= Title =",
			want:  elements.Header{Level: 1, Content: container(txt("Title"))},
		},
		{
			name:  "centered",
			input: "  == Centered ==",
			want:  elements.Header{Level: 2, Content: container(txt("Centered")), Centered: true},
		},
		{
			name:  "level six with markup",
			input: "====== Multi *word* ======\n",
			want:  elements.Header{Level: 6, Content: container(txt("Multi "), bold(txt("word")))},
		},
		{
			name:  "trailing whitespace",
			input: "== Spaced ==  ",
			want:  elements.Header{Level: 2, Content: container(txt("Spaced"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rest, got := parseAll(t, header, tt.input)
			assert.Empty(t, rest)
			requireEqual(t, tt.want, got)
		})
	}
}

func TestHeader_Rejects(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"=== Unbalanced ==",
		"== Unbalanced ===",
		"======= Seven =======",
		"= =",
		"No header",
	} {
		_, _, err := header(span.New(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestParagraph_StopsAtOtherBlocks(t *testing.T) {
	t.Parallel()

	following := map[string]string{
		"header":          "= Header =\n",
		"definition list": "term:: def\n",
		"list":            "- item\n",
		"table":           "|a|b|\n",
		"code block":      "{{{\ncode\n}}}\n",
		"math block":      "{{$\nx\n}}$\n",
		"blank line":      "\nmore\n",
		"blockquote":      "> quote\n",
		"divider":         "----\n",
		"placeholder":     "%title T\n",
	}

	for name, next := range following {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rest, got := parseAll(t, paragraph, "line one\n"+next)
			assert.Equal(t, next, rest)
			requireEqual(t, elements.Paragraph{Lines: []elements.InlineElementContainer{container(txt("line one"))}}, got)
		})
	}
}

func TestParagraph_IndentedLinesContinue(t *testing.T) {
	t.Parallel()

	rest, got := parseAll(t, paragraph, "line one\n    indented\nthree")
	assert.Empty(t, rest)
	requireEqual(t, elements.Paragraph{Lines: []elements.InlineElementContainer{
		container(txt("line one")),
		container(txt("indented")),
		container(txt("three")),
	}}, got)
}

func TestDefinitionList(t *testing.T) {
	t.Parallel()

	input := "Term 1:: Definition 1\nTerm 2::\n:: Definition 2\n:: Definition 3\n"
	rest, got := parseAll(t, definitionList, input)
	assert.Empty(t, rest)

	term := func(s string) located.Located[elements.Term] {
		return located.New(elements.Term{Content: container(txt(s))}, located.Region{})
	}
	def := func(s string) located.Located[elements.Definition] {
		return located.New(elements.Definition{Content: container(txt(s))}, located.Region{})
	}

	requireEqual(t, elements.DefinitionList{Items: []elements.TermAndDefinitions{
		{Term: term("Term 1"), Definitions: []located.Located[elements.Definition]{def("Definition 1")}},
		{Term: term("Term 2"), Definitions: []located.Located[elements.Definition]{def("Definition 2"), def("Definition 3")}},
	}}, got)

	defs, ok := got.Lookup("Term 2")
	require.True(t, ok)
	assert.Len(t, defs, 2)
}

func TestDefinitionList_TermWithoutDefinition(t *testing.T) {
	t.Parallel()

	_, _, err := definitionList(span.New("Term::\nplain\n"))
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	t.Parallel()

	input := "|a|b|\n|---|:-:|\n|>|\\/|\n| |-:|\n"
	rest, got := parseAll(t, table, input)
	assert.Empty(t, rest)
	require.Len(t, got.Rows, 4)
	assert.False(t, got.Centered)

	kinds := func(r elements.Row) []elements.CellKind {
		var out []elements.CellKind
		for _, c := range r.Cells {
			out = append(out, c.Value.CellKind)
		}
		return out
	}

	assert.Equal(t, []elements.CellKind{elements.CellContent, elements.CellContent}, kinds(got.Rows[0]))
	requireEqual(t, container(txt("a")), got.Rows[0].Cells[0].Value.Content)

	assert.True(t, got.Rows[1].IsDivider())
	assert.Equal(t, elements.AlignLeft, got.Rows[1].Cells[0].Value.Align)
	assert.Equal(t, elements.AlignCenter, got.Rows[1].Cells[1].Value.Align)

	assert.Equal(t, []elements.CellKind{elements.CellSpanLeft, elements.CellSpanAbove}, kinds(got.Rows[2]))

	assert.Equal(t, []elements.CellKind{elements.CellContent, elements.CellAlign}, kinds(got.Rows[3]))
	assert.Empty(t, got.Rows[3].Cells[0].Value.Content.Elements)
	assert.Equal(t, elements.AlignRight, got.Rows[3].Cells[1].Value.Align)
}

func TestTable_Centered(t *testing.T) {
	t.Parallel()

	_, got := parseAll(t, table, "  |a|\n  |b|")
	assert.True(t, got.Centered)
	assert.Len(t, got.Rows, 2)
}

func TestTable_Rejects(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"|---|\n",
		"|a|b\n",
		"a|b|\n",
	} {
		_, _, err := table(span.New(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestCodeBlock(t *testing.T) {
	t.Parallel()

	rest, got := parseAll(t, codeBlock, "{{{python;class=\"x\"\nprint(1)\n\n}}}\nafter")
	assert.Equal(t, "after", rest)
	assert.Equal(t, elements.CodeBlock{
		Language: "python",
		Metadata: map[string]string{"class": "x"},
		Lines:    []string{"print(1)", ""},
	}, got)

	rest, got = parseAll(t, codeBlock, "{{{\n  raw %% kept\n}}}")
	assert.Empty(t, rest)
	assert.Empty(t, got.Language)
	assert.Nil(t, got.Metadata)
	assert.Equal(t, []string{"  raw %% kept"}, got.Lines)

	_, got = parseAll(t, codeBlock, "{{{\n}}}")
	assert.Empty(t, got.Lines)

	_, _, err := codeBlock(span.New("{{{\nunclosed\n"))
	assert.Error(t, err)
}

func TestMathBlock(t *testing.T) {
	t.Parallel()

	rest, got := parseAll(t, mathBlock, "{{$%align%\nx &= 1\n}}$\n")
	assert.Empty(t, rest)
	assert.Equal(t, elements.MathBlock{Environment: "align", Lines: []string{"x &= 1"}}, got)

	_, got = parseAll(t, mathBlock, "{{$\na\nb\n}}$")
	assert.Empty(t, got.Environment)
	assert.Equal(t, []string{"a", "b"}, got.Lines)
}

func TestBlockquote(t *testing.T) {
	t.Parallel()

	rest, got := parseAll(t, blockquote, "> one\n\n> two\n\nafter")
	assert.Equal(t, "\nafter", rest)
	assert.Equal(t, []string{"one", "", "two"}, got.Lines)

	rest, got = parseAll(t, blockquote, "    quoted text\n    more\nplain")
	assert.Equal(t, "plain", rest)
	assert.Equal(t, []string{"quoted text", "more"}, got.Lines)

	_, got = parseAll(t, blockquote, ">\n> x")
	assert.Equal(t, []string{"", "x"}, got.Lines)

	_, _, err := blockquote(span.New(">no space"))
	assert.Error(t, err)
}

func TestDivider(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"----", "--------", "-----  \nnext"} {
		_, _, err := divider(span.New(input))
		assert.NoError(t, err, "input %q", input)
	}
	for _, input := range []string{"---", "---- x", "  ----"} {
		_, _, err := divider(span.New(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  elements.Placeholder
	}{
		{
			input: "%title My Page",
			want:  elements.Placeholder{PlaceholderKind: elements.PlaceholderTitle, Name: "title", Value: "My Page"},
		},
		{
			input: "%nohtml",
			want:  elements.Placeholder{PlaceholderKind: elements.PlaceholderNoHTML, Name: "nohtml"},
		},
		{
			input: "%template custom",
			want:  elements.Placeholder{PlaceholderKind: elements.PlaceholderTemplate, Name: "template", Value: "custom"},
		},
		{
			input: "%date 2024-02-29",
			want: elements.Placeholder{
				PlaceholderKind: elements.PlaceholderDate,
				Name:            "date",
				Value:           "2024-02-29",
				Date:            time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			input: "%author Jane Doe ",
			want:  elements.Placeholder{PlaceholderKind: elements.PlaceholderOther, Name: "author", Value: "Jane Doe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			rest, got := parseAll(t, placeholder, tt.input)
			assert.Empty(t, rest)
			requireEqual(t, tt.want, got)
		})
	}

	for _, input := range []string{"%%comment", "%title", "%date tomorrow", "%"} {
		_, _, err := placeholder(span.New(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestCommentBlock(t *testing.T) {
	t.Parallel()

	rest, got := parseAll(t, commentBlock, "%% hidden\nnext")
	assert.Equal(t, "next", rest)
	assert.Equal(t, elements.Comment{Lines: []string{" hidden"}}, got)

	rest, got = parseAll(t, commentBlock, "%%+ a\nb +%%\n")
	assert.Empty(t, rest)
	assert.Equal(t, elements.Comment{MultiLine: true, Lines: []string{" a", "b "}}, got)

	_, _, err := commentBlock(span.New("%%+ a +%% trailing"))
	assert.Error(t, err)
}
