package core

import (
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r belongs to a word: letters, digits and underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Words returns the word runs of text in order, duplicates included.
func Words(text string) []string {
	var words []string
	WordSpans(text, func(start, end int) {
		words = append(words, text[start:end])
	})
	return words
}

// WordSpans calls fn with the byte offsets of each word run in text.
func WordSpans(text string, fn func(start, end int)) {
	start := -1
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if IsWordRune(r) {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			fn(start, i)
			start = -1
		}
		i += size
	}
	if start >= 0 {
		fn(start, len(text))
	}
}
