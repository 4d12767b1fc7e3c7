package vimwiki

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/pkg/elements"
	"github.com/yaklabco/govimwiki/pkg/located"
	"github.com/yaklabco/govimwiki/pkg/span"
)

// parseAll runs p over input and requires it to succeed, returning the
// unconsumed remainder and the value.
func parseAll[T any](t *testing.T, p span.Parser[T], input string) (string, T) {
	t.Helper()

	rest, v, err := p(span.New(input))
	require.NoError(t, err, "input %q", input)
	return rest.Remaining(), v
}

func txt(s string) inlineLE {
	return located.New[elements.InlineElement](elements.Text(s), located.Region{})
}

func inl(e elements.InlineElement) inlineLE {
	return located.New(e, located.Region{})
}

func container(es ...inlineLE) elements.InlineElementContainer {
	return elements.NewInlineElementContainer(es...)
}

func bold(es ...inlineLE) inlineLE {
	return inl(elements.DecoratedText{Decoration: elements.DecorationBold, Contents: es})
}

// requireEqual compares ignoring regions and prints a diff on mismatch.
func requireEqual(t *testing.T, want, got any) {
	t.Helper()
	require.True(t, located.Equal(want, got), located.Diff(want, got))
}
