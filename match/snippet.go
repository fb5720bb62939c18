package match

import (
	"fmt"
	"strings"

	"github.com/poiesic/sift/core"
)

// Default page context: two lines before the hit and two after.
const (
	DefaultLinesBefore = 2
	DefaultLinesAfter  = 2
)

// SnippetBuilder turns hits into snippet text.
type SnippetBuilder struct {
	before int
	after  int
}

// SnippetOption configures a SnippetBuilder.
type SnippetOption func(*SnippetBuilder) error

// WithContextWindow sets how many page lines surround a hit.
func WithContextWindow(before, after int) SnippetOption {
	return func(b *SnippetBuilder) error {
		if before < 0 || after < 0 {
			return fmt.Errorf("context window must not be negative, got %d/%d", before, after)
		}
		b.before = before
		b.after = after
		return nil
	}
}

// NewSnippetBuilder creates a snippet builder.
func NewSnippetBuilder(opts ...SnippetOption) (*SnippetBuilder, error) {
	b := &SnippetBuilder{before: DefaultLinesBefore, after: DefaultLinesAfter}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Build returns the snippet for hit within doc.
// Page documents get the hit line with its context window, clamped to the
// document; tabular documents get the trimmed row.
func (b *SnippetBuilder) Build(doc core.Document, hit core.Hit) core.Snippet {
	snippet := core.Snippet{Key: hit.Key, Line: hit.Line, Match: hit.Kind}

	if doc.Kind == core.KindTabular {
		snippet.Text = strings.TrimSpace(doc.Lines[hit.Line])
		return snippet
	}

	start, end := b.Window(hit.Line, len(doc.Lines))
	snippet.Text = strings.Join(doc.Lines[start:end], "\n")
	return snippet
}

// Window returns the half-open line range [start, end) around line i in a
// document of n lines.
func (b *SnippetBuilder) Window(i, n int) (start, end int) {
	start = max(i-b.before, 0)
	end = min(i+b.after+1, n)
	return start, end
}

// BuildAll returns one snippet per hit, in hit order. Overlapping windows are
// not merged.
func (b *SnippetBuilder) BuildAll(doc core.Document, hits []core.Hit) []core.Snippet {
	snippets := make([]core.Snippet, len(hits))
	for i, hit := range hits {
		snippets[i] = b.Build(doc, hit)
	}
	return snippets
}
