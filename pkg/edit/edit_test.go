package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/govimwiki/pkg/edit"
	"github.com/yaklabco/govimwiki/pkg/located"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []edit.TextEdit
		want    string
	}{
		{name: "no edits", content: "- [ ] task", want: "- [ ] task"},
		{
			name:    "replace checkbox",
			content: "- [ ] task",
			edits:   []edit.TextEdit{{Start: 2, End: 5, NewText: "[X]"}},
			want:    "- [X] task",
		},
		{
			name:    "insert checkbox",
			content: "- task",
			edits:   []edit.TextEdit{{Start: 2, End: 2, NewText: "[ ] "}},
			want:    "- [ ] task",
		},
		{
			name:    "delete",
			content: "= Title =",
			edits:   []edit.TextEdit{{Start: 0, End: 2}, {Start: 7, End: 9}},
			want:    "Title",
		},
		{
			name:    "unsorted edits",
			content: "- [ ] a\n  - [ ] b",
			edits: []edit.TextEdit{
				{Start: 12, End: 15, NewText: "[X]"},
				{Start: 2, End: 5, NewText: "[X]"},
			},
			want: "- [X] a\n  - [X] b",
		},
		{
			name:    "two inserts at one offset keep order",
			content: "ab",
			edits:   []edit.TextEdit{{Start: 1, End: 1, NewText: "1"}, {Start: 1, End: 1, NewText: "2"}},
			want:    "a12b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := edit.Apply([]byte(tt.content), tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestApplyErrors(t *testing.T) {
	t.Parallel()

	var rangeErr *edit.RangeError
	_, err := edit.Apply([]byte("abc"), []edit.TextEdit{{Start: 2, End: 9}})
	require.ErrorAs(t, err, &rangeErr)
	assert.Contains(t, err.Error(), "exceeds content length 3")

	_, err = edit.Apply([]byte("abc"), []edit.TextEdit{{Start: -1, End: 1}})
	require.ErrorAs(t, err, &rangeErr)

	_, err = edit.Apply([]byte("abc"), []edit.TextEdit{{Start: 2, End: 1}})
	require.ErrorAs(t, err, &rangeErr)

	var conflict *edit.ConflictError
	_, err = edit.Apply([]byte("abcdef"), []edit.TextEdit{{Start: 0, End: 3}, {Start: 2, End: 4}})
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 0, conflict.First.Start)
	assert.Equal(t, 2, conflict.Second.Start)
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	b := edit.NewBuilder().
		Insert(0, "x").
		Delete(1, 2).
		ReplaceRegion(located.NewRegion(3, 2), "yy")

	require.Equal(t, 3, b.Len())
	edits := b.Edits()
	assert.True(t, edits[0].IsInsert())
	assert.Equal(t, 1, edits[1].Len())
	assert.Equal(t, edit.TextEdit{Start: 3, End: 5, NewText: "yy"}, edits[2])

	edits[0].NewText = "changed"
	assert.Equal(t, "x", b.Edits()[0].NewText)
}

func TestDiff(t *testing.T) {
	t.Parallel()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()
		d := edit.Diff{Path: "a.wiki", Original: []byte("same\n"), Modified: []byte("same\n")}
		assert.False(t, d.HasChanges())
		assert.Empty(t, d.String())
	})

	t.Run("changed line", func(t *testing.T) {
		t.Parallel()
		d := edit.Diff{
			Path:     "todo.wiki",
			Original: []byte("= Tasks =\n- [ ] write\n- [X] read\n"),
			Modified: []byte("= Tasks =\n- [X] write\n- [X] read\n"),
		}
		require.True(t, d.HasChanges())

		text, err := d.Unified(1)
		require.NoError(t, err)
		assert.Contains(t, text, "--- a/todo.wiki\n")
		assert.Contains(t, text, "+++ b/todo.wiki\n")
		assert.Contains(t, text, "-- [ ] write\n")
		assert.Contains(t, text, "+- [X] write\n")
		assert.Contains(t, text, " = Tasks =\n")
	})
}

func FuzzApply(f *testing.F) {
	f.Add("- [ ] task", 2, 5, "[X]")
	f.Add("", 0, 0, "x")
	f.Add("abc", 1, 3, "")

	f.Fuzz(func(t *testing.T, content string, start, end int, text string) {
		e := edit.TextEdit{Start: start, End: end, NewText: text}
		got, err := edit.Apply([]byte(content), []edit.TextEdit{e})
		if err != nil {
			return
		}
		want := content[:start] + text + content[end:]
		if string(got) != want {
			t.Fatalf("Apply(%q, %+v) = %q, want %q", content, e, got, want)
		}
	})
}
