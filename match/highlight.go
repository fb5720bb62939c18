package match

import (
	"slices"
	"strings"

	"github.com/poiesic/sift/core"
)

// Default emphasis markers.
const (
	DefaultOpenMarker  = "<b>"
	DefaultCloseMarker = "</b>"
)

// Highlighter wraps query terms in emphasis markers.
type Highlighter struct {
	open  string
	close string
}

// NewHighlighter creates a highlighter using the given markers.
// Empty markers fall back to the defaults.
func NewHighlighter(open, close string) *Highlighter {
	if open == "" && close == "" {
		open, close = DefaultOpenMarker, DefaultCloseMarker
	}
	return &Highlighter{open: open, close: close}
}

// Highlight marks every whole word of text whose lower-case form is a query
// term, in one pass, and returns the marked text with the sorted set of terms
// that occurred.
func (h *Highlighter) Highlight(text string, q core.Query) (string, []string) {
	if len(q.Terms) == 0 {
		return text, nil
	}

	var (
		b     strings.Builder
		terms []string
		last  int
	)
	core.WordSpans(text, func(start, end int) {
		word := strings.ToLower(text[start:end])
		if !q.HasTerm(word) {
			return
		}
		b.WriteString(text[last:start])
		b.WriteString(h.open)
		b.WriteString(text[start:end])
		b.WriteString(h.close)
		last = end
		terms = append(terms, word)
	})
	if last == 0 && terms == nil {
		return text, nil
	}
	b.WriteString(text[last:])

	slices.Sort(terms)
	return b.String(), slices.Compact(terms)
}
