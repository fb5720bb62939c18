package search

import (
	"fmt"
	"strings"

	"github.com/poiesic/sift/core"
)

const (
	// NoFilesMessage is rendered when the corpus listing is empty.
	NoFilesMessage = "No files found in the folder."

	// NoMatchFormat is rendered when no document matched. The verb is the raw query.
	NoMatchFormat = "❌ No relevant content found for: '%s'"
)

// RenderOptions controls how a SearchResult is turned into display text.
type RenderOptions struct {
	KeyOpen   string // Written before each document key
	KeyClose  string // Written after each document key
	LineBreak string // Between the key and its snippet
	Separator string // Between consecutive matches
}

var (
	// HTMLRender produces the markup used by the web form.
	HTMLRender = RenderOptions{KeyOpen: "<b>", KeyClose: "</b>", LineBreak: "<br>", Separator: "<br><br>"}

	// TextRender produces terminal output.
	TextRender = RenderOptions{KeyOpen: "**", KeyClose: "**", LineBreak: "\n", Separator: "\n\n"}
)

// Render formats result as a single display string.
// An empty corpus and a search without matches render as sentinel messages.
func Render(result *core.SearchResult, opts RenderOptions) string {
	if result == nil {
		return ""
	}

	switch result.Outcome {
	case core.OutcomeNoFilesFound:
		return NoFilesMessage
	case core.OutcomeNoMatchFound:
		return fmt.Sprintf(NoMatchFormat, result.Query)
	}

	parts := make([]string, len(result.Matches))
	for i, m := range result.Matches {
		parts[i] = opts.KeyOpen + string(m.Key) + opts.KeyClose + ":" + opts.LineBreak + m.Highlighted
	}
	return strings.Join(parts, opts.Separator)
}
