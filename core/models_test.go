package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "same content produces same ID", content: []byte("test content")},
		{name: "empty content", content: nil},
		{name: "binary content", content: []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, IDFromContent(tt.content), IDFromContent(tt.content))
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	assert.NotEqual(t, IDFromContent([]byte("content1")), IDFromContent([]byte("content2")))
}

func TestCorpusKey_Kind(t *testing.T) {
	tests := []struct {
		key  CorpusKey
		want DocumentKind
	}{
		{"chatbot/report.pdf", KindPage},
		{"chatbot/REPORT.PDF", KindPage},
		{"chatbot/sales.xlsx", KindTabular},
		{"chatbot/Sales.XLS", KindTabular},
		{"chatbot/notes.txt", KindUnknown},
		{"chatbot/pdf", KindUnknown},
		{"chatbot/archive.pdf/readme", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.Kind())
		})
	}
}

func TestDocument_Failed(t *testing.T) {
	assert.False(t, Document{Key: "a.pdf", Lines: []string{"Error reading"}}.Failed(),
		"content that looks like an error is still a healthy document")
	assert.True(t, Document{Key: "a.pdf", Err: assert.AnError}.Failed())
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "page", KindPage.String())
	assert.Equal(t, "tabular", KindTabular.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "fuzzy", MatchFuzzy.String())
	assert.Equal(t, "no_files_found", OutcomeNoFilesFound.String())
}
