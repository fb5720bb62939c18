package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuery(t *testing.T) {
	t.Run("derives lower form and terms", func(t *testing.T) {
		q, err := NewQuery("Total Revenue, revenue!")
		require.NoError(t, err)
		assert.Equal(t, "Total Revenue, revenue!", q.Raw)
		assert.Equal(t, "total revenue, revenue!", q.Lower)
		assert.Equal(t, []string{"revenue", "total"}, q.Terms)
	})

	t.Run("underscore and digits are word characters", func(t *testing.T) {
		q, err := NewQuery("q3_total 2024")
		require.NoError(t, err)
		assert.Equal(t, []string{"2024", "q3_total"}, q.Terms)
	})

	t.Run("punctuation only query has no terms", func(t *testing.T) {
		q, err := NewQuery("--")
		require.NoError(t, err)
		assert.Empty(t, q.Terms)
	})

	t.Run("blank query is rejected", func(t *testing.T) {
		_, err := NewQuery("  \t")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})
}

func TestQuery_HasTerm(t *testing.T) {
	q, err := NewQuery("alpha beta")
	require.NoError(t, err)
	assert.True(t, q.HasTerm("ALPHA"))
	assert.True(t, q.HasTerm("beta"))
	assert.False(t, q.HasTerm("alphabetical"))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"Acme", "Revenue", "1000"}, Words("Acme  Revenue  1000"))
	assert.Equal(t, []string{"café", "naïve"}, Words("café, naïve."))
	assert.Nil(t, Words(" ,.; "))
}
