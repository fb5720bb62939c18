package core

import (
	"slices"
	"strings"
)

// Query is a user query with its derived forms.
type Query struct {
	Raw   string
	Lower string   // Lower-cased raw query, used for substring and similarity checks
	Terms []string // Distinct lower-cased words of the query, sorted
}

// NewQuery derives the lower-cased form and term set of raw.
// Returns ErrEmptyQuery if raw is blank.
func NewQuery(raw string) (Query, error) {
	if strings.TrimSpace(raw) == "" {
		return Query{}, ErrEmptyQuery
	}

	lower := strings.ToLower(raw)
	words := Words(lower)
	slices.Sort(words)

	return Query{
		Raw:   raw,
		Lower: lower,
		Terms: slices.Compact(words),
	}, nil
}

// HasTerm reports whether word, lower-cased, is one of the query terms.
func (q Query) HasTerm(word string) bool {
	_, found := slices.BinarySearch(q.Terms, strings.ToLower(word))
	return found
}
