package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExtractor_Lines(t *testing.T) {
	data := BuildPDF("Quarterly revenue grew", "", "Outlook (2025) is stable")

	lines, err := PDFExtractor{}.Lines(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quarterly revenue grew", "", "Outlook (2025) is stable"}, lines,
		"pages stay in order and an empty page keeps its slot")
}

func TestPDFExtractor_SinglePage(t *testing.T) {
	lines, err := PDFExtractor{}.Lines(BuildPDF("only page"))
	require.NoError(t, err)
	assert.Equal(t, []string{"only page"}, lines)
}

func TestPDFExtractor_Malformed(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	doc := r.Extract("chatbot/broken.pdf", []byte("this is not a pdf"))
	assert.True(t, doc.Failed())
}
