package vimwiki

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/span"
)

func TestList_Indentation(t *testing.T) {
	t.Parallel()

	input := "- item 1\n  sub content\n  - sub item 1\n- item 2\n"
	rest, got := parseAll(t, list, input)
	assert.Empty(t, rest)
	require.Len(t, got.Items, 2)

	first := got.Items[0].Value
	require.Len(t, first.Contents, 3)
	requireEqual(t, []elements.InlineElementContainer{
		container(txt("item 1")),
		container(txt("sub content")),
	}, first.InlineContents())

	subs := first.Sublists()
	require.Len(t, subs, 1)
	require.Len(t, subs[0].Items, 1)
	requireEqual(t, []elements.InlineElementContainer{container(txt("sub item 1"))}, subs[0].Items[0].Value.InlineContents())

	second := got.Items[1].Value
	assert.Equal(t, 1, second.Pos)
	requireEqual(t, []elements.InlineElementContainer{container(txt("item 2"))}, second.InlineContents())
}

func TestList_StopsAtShallowerOrDifferentIndent(t *testing.T) {
	t.Parallel()

	rest, got := parseAll(t, list, "  - a\n  - b\n- c\n")
	assert.Equal(t, "- c\n", rest)
	assert.Equal(t, 2, got.Len())

	rest, got = parseAll(t, list, "- a\n\n- b\n")
	assert.Equal(t, "\n- b\n", rest)
	assert.Equal(t, 1, got.Len())
}

func TestList_Types(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		typ    elements.ListItemType
		suffix elements.ListItemSuffix
	}{
		{"hyphen", "- a\n- b", elements.ItemHyphen, elements.SuffixNone},
		{"asterisk", "* a\n* b", elements.ItemAsterisk, elements.SuffixNone},
		{"pound", "# a\n# b", elements.ItemPound, elements.SuffixNone},
		{"number period", "1. a\n2. b", elements.ItemNumber, elements.SuffixPeriod},
		{"number paren", "1) a\n2) b", elements.ItemNumber, elements.SuffixParen},
		{"lower alpha", "a) x\nb) y", elements.ItemLowercaseAlphabet, elements.SuffixParen},
		{"upper alpha", "A) x\nB) y", elements.ItemUppercaseAlphabet, elements.SuffixParen},
		{"alpha starting on a roman letter", "c) x\nd) y", elements.ItemLowercaseAlphabet, elements.SuffixParen},
		{"lower roman", "i) x\nii) y\niii) z", elements.ItemLowercaseRoman, elements.SuffixParen},
		{"upper roman", "I) x\nII) y", elements.ItemUppercaseRoman, elements.SuffixParen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, got := parseAll(t, list, tt.input)
			require.GreaterOrEqual(t, got.Len(), 2)
			for i, item := range got.Items {
				assert.Equal(t, tt.typ, item.Value.Type, "item %d", i)
				assert.Equal(t, tt.suffix, item.Value.Suffix, "item %d", i)
				assert.Equal(t, i, item.Value.Pos)
			}
		})
	}
}

func TestList_MixedTypesTakeFirst(t *testing.T) {
	t.Parallel()

	_, got := parseAll(t, list, "- a\n* b\n- c")
	for _, item := range got.Items {
		assert.Equal(t, elements.ItemHyphen, item.Value.Type)
	}
}

func TestListItemPrefix_RequiresSpace(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"-x", "*x", "1.x", "1)x", "a)x", "A)x", "i)x", "I)x", "#x", "a. x", "etc. more"} {
		_, _, err := listItemPrefix(span.New(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestListItemPrefix_RoundTrip(t *testing.T) {
	t.Parallel()

	kinds := []struct {
		typ    elements.ListItemType
		suffix elements.ListItemSuffix
	}{
		{elements.ItemNumber, elements.SuffixPeriod},
		{elements.ItemNumber, elements.SuffixParen},
		{elements.ItemLowercaseAlphabet, elements.SuffixParen},
		{elements.ItemUppercaseAlphabet, elements.SuffixParen},
		{elements.ItemLowercaseRoman, elements.SuffixParen},
		{elements.ItemUppercaseRoman, elements.SuffixParen},
	}

	for _, k := range kinds {
		t.Run(fmt.Sprintf("%v%v", k.typ, k.suffix), func(t *testing.T) {
			t.Parallel()

			for pos := range 1000 {
				rendered := elements.RenderPrefix(k.typ, pos, k.suffix, "")
				rest, prefix, err := listItemPrefix(span.New(rendered + " x"))
				require.NoError(t, err, "prefix %q", rendered)
				assert.Equal(t, "x", rest.Remaining())
				assert.Equal(t, k.suffix, prefix.suffix)
				assert.Equal(t, strings.TrimSuffix(rendered, k.suffix.String()), prefix.marker)
			}
		})
	}
}

func TestList_NormalizationRecoversType(t *testing.T) {
	t.Parallel()

	for _, typ := range []elements.ListItemType{
		elements.ItemNumber,
		elements.ItemLowercaseAlphabet,
		elements.ItemUppercaseAlphabet,
		elements.ItemLowercaseRoman,
		elements.ItemUppercaseRoman,
	} {
		t.Run(typ.String(), func(t *testing.T) {
			t.Parallel()

			suffix := elements.SuffixParen
			var b strings.Builder
			const n = 120
			for pos := range n {
				fmt.Fprintf(&b, "%s item\n", elements.RenderPrefix(typ, pos, suffix, ""))
			}

			rest, got := parseAll(t, list, b.String())
			assert.Empty(t, rest)
			require.Equal(t, n, got.Len())
			for pos, item := range got.Items {
				assert.Equal(t, typ, item.Value.Type, "pos %d", pos)
				assert.Equal(t, elements.RenderPrefix(typ, pos, suffix, ""), item.Value.Prefix())
			}
		})
	}
}

func TestList_Todo(t *testing.T) {
	t.Parallel()

	_, got := parseAll(t, list, "- [ ] a\n- [.] b\n- [o] c\n- [O] d\n- [X] e\n- [-] f\n- [X]\n- [x] g")
	want := []elements.TodoStatus{
		elements.TodoIncomplete,
		elements.TodoPartiallyComplete1,
		elements.TodoPartiallyComplete2,
		elements.TodoPartiallyComplete3,
		elements.TodoComplete,
		elements.TodoRejected,
		elements.TodoComplete,
		elements.TodoNone,
	}
	require.Equal(t, len(want), got.Len())
	for i, item := range got.Items {
		assert.Equal(t, want[i], item.Value.Attributes.TodoStatus, "item %d", i)
	}

	assert.Empty(t, got.Items[6].Value.InlineContents()[0].Elements)
	requireEqual(t, []elements.InlineElementContainer{container(txt("[x] g"))}, got.Items[7].Value.InlineContents())
}

func TestList_TodoProgress(t *testing.T) {
	t.Parallel()

	input := "- [ ] parent\n  - [X] done\n  - [ ] open\n  - [-] dropped\n- [o] leaf\n"
	_, got := parseAll(t, list, input)
	require.Equal(t, 2, got.Len())

	p, ok := got.Items[0].Value.TodoProgress()
	require.True(t, ok)
	assert.InDelta(t, 0.5, p, 1e-9)

	p, ok = got.Items[1].Value.TodoProgress()
	require.True(t, ok)
	assert.InDelta(t, 0.5, p, 1e-9)
}
