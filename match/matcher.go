package match

import (
	"fmt"
	"strings"

	"github.com/poiesic/sift/core"
)

// DefaultFuzzyThreshold is the similarity a token must exceed to count as a
// fuzzy hit.
const DefaultFuzzyThreshold = 0.8

// Matcher finds hits for a query in a document's lines.
type Matcher struct {
	fuzzyThreshold float64
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithFuzzyThreshold sets the strict lower bound for fuzzy token similarity.
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) error {
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("fuzzy threshold must be within [0,1], got %v", threshold)
		}
		m.fuzzyThreshold = threshold
		return nil
	}
}

// NewMatcher creates a matcher.
func NewMatcher(opts ...Option) (*Matcher, error) {
	m := &Matcher{fuzzyThreshold: DefaultFuzzyThreshold}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Match returns the hits of q in doc in line order, at most one per line.
// Failed documents have no hits.
func (m *Matcher) Match(doc core.Document, q core.Query) []core.Hit {
	if doc.Failed() {
		return nil
	}

	var hits []core.Hit
	for i, line := range doc.Lines {
		lower := strings.ToLower(line)

		if strings.Contains(lower, q.Lower) {
			hits = append(hits, core.Hit{Key: doc.Key, Line: i, Kind: core.MatchExact})
			continue
		}

		if doc.Kind == core.KindTabular && m.fuzzyRow(lower, q.Lower) {
			hits = append(hits, core.Hit{Key: doc.Key, Line: i, Kind: core.MatchFuzzy})
		}
	}
	return hits
}

// fuzzyRow reports whether any word of the lower-cased row is similar enough
// to the lower-cased query. Stops at the first qualifying word.
func (m *Matcher) fuzzyRow(row, query string) bool {
	for _, word := range core.Words(row) {
		if Similarity(query, word) > m.fuzzyThreshold {
			return true
		}
	}
	return false
}
