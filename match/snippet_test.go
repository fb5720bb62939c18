package match

import (
	"testing"

	"github.com/poiesic/sift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuilder(t *testing.T, opts ...SnippetOption) *SnippetBuilder {
	t.Helper()
	b, err := NewSnippetBuilder(opts...)
	require.NoError(t, err)
	return b
}

func TestSnippetBuilder_Window(t *testing.T) {
	b := mustBuilder(t)

	tests := []struct {
		name       string
		line, n    int
		start, end int
	}{
		{"first line clamps start", 0, 6, 0, 3},
		{"second line", 1, 6, 0, 4},
		{"middle line", 3, 6, 1, 6},
		{"last line clamps end", 5, 6, 3, 6},
		{"single line document", 0, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := b.Window(tt.line, tt.n)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestSnippetBuilder_Page(t *testing.T) {
	b := mustBuilder(t)
	doc := core.Document{Key: "a.pdf", Kind: core.KindPage, Lines: []string{"x", "y query z", "w", "v", "u", "t"}}

	snippet := b.Build(doc, core.Hit{Key: "a.pdf", Line: 1, Kind: core.MatchExact})
	assert.Equal(t, "x\ny query z\nw\nv", snippet.Text)
	assert.Equal(t, 1, snippet.Line)
	assert.Equal(t, core.MatchExact, snippet.Match)

	last := b.Build(doc, core.Hit{Key: "a.pdf", Line: 5, Kind: core.MatchExact})
	assert.Equal(t, "v\nu\nt", last.Text)
}

func TestSnippetBuilder_Tabular(t *testing.T) {
	b := mustBuilder(t)
	doc := core.Document{Key: "s.xlsx", Kind: core.KindTabular, Lines: []string{"  Acme  Revenue  1000  "}}

	snippet := b.Build(doc, core.Hit{Key: "s.xlsx", Line: 0, Kind: core.MatchFuzzy})
	assert.Equal(t, "Acme  Revenue  1000", snippet.Text)
}

func TestSnippetBuilder_OverlappingWindowsAreKept(t *testing.T) {
	b := mustBuilder(t)
	doc := core.Document{Key: "a.pdf", Kind: core.KindPage, Lines: []string{"a", "hit", "hit", "b"}}

	snippets := b.BuildAll(doc, []core.Hit{
		{Key: "a.pdf", Line: 1, Kind: core.MatchExact},
		{Key: "a.pdf", Line: 2, Kind: core.MatchExact},
	})
	require.Len(t, snippets, 2)
	assert.Equal(t, "a\nhit\nhit\nb", snippets[0].Text)
	assert.Equal(t, "a\nhit\nhit\nb", snippets[1].Text)
}

func TestWithContextWindow(t *testing.T) {
	_, err := NewSnippetBuilder(WithContextWindow(-1, 2))
	assert.Error(t, err)

	b := mustBuilder(t, WithContextWindow(0, 0))
	start, end := b.Window(3, 10)
	assert.Equal(t, 3, start)
	assert.Equal(t, 4, end)
}
