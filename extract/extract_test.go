package extract

import (
	"errors"
	"testing"

	"github.com/poiesic/sift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineFunc func(data []byte) ([]string, error)

func (f lineFunc) Lines(data []byte) ([]string, error) { return f(data) }

func TestNewRegistry(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r, err := NewRegistry()
		require.NoError(t, err)
		assert.Len(t, r.extractors, 3)
	})

	t.Run("nil extractor is rejected", func(t *testing.T) {
		_, err := NewRegistry(WithExtractor(".pdf", nil))
		assert.Error(t, err)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		r, err := NewRegistry(WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, r.logger)
	})
}

func TestRegistry_Extract(t *testing.T) {
	r, err := NewRegistry(WithExtractor(".PDF", lineFunc(func(data []byte) ([]string, error) {
		return []string{string(data)}, nil
	})))
	require.NoError(t, err)

	t.Run("dispatches on lower-cased suffix", func(t *testing.T) {
		doc := r.Extract("chatbot/Report.PDF", []byte("hello"))
		require.False(t, doc.Failed())
		assert.Equal(t, core.KindPage, doc.Kind)
		assert.Equal(t, []string{"hello"}, doc.Lines)
	})

	t.Run("unsupported suffix fails the document", func(t *testing.T) {
		doc := r.Extract("chatbot/notes.txt", []byte("hello"))
		require.True(t, doc.Failed())
		assert.ErrorIs(t, doc.Err, ErrUnsupportedFormat)
	})
}

func TestRegistry_ExtractIsolatesFailures(t *testing.T) {
	r, err := NewRegistry(
		WithExtractor(".pdf", lineFunc(func(data []byte) ([]string, error) {
			return nil, errors.New("bad xref")
		})),
		WithExtractor(".xlsx", lineFunc(func(data []byte) ([]string, error) {
			panic("index out of range")
		})),
	)
	require.NoError(t, err)

	t.Run("decode error", func(t *testing.T) {
		doc := r.Extract("a.pdf", nil)
		require.True(t, doc.Failed())
		assert.Contains(t, doc.Err.Error(), "bad xref")
		assert.Contains(t, doc.Err.Error(), "a.pdf")
		assert.Nil(t, doc.Lines)
	})

	t.Run("decoder panic", func(t *testing.T) {
		doc := r.Extract("b.xlsx", nil)
		require.True(t, doc.Failed())
		assert.ErrorIs(t, doc.Err, ErrDecoderPanic)
	})
}

func TestJoinCells(t *testing.T) {
	line, ok := joinCells([]string{"Acme", "", "Revenue", "1000"})
	assert.True(t, ok)
	assert.Equal(t, "Acme  Revenue  1000", line)

	_, ok = joinCells([]string{"", ""})
	assert.False(t, ok)

	_, ok = joinCells(nil)
	assert.False(t, ok)
}
