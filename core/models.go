// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(data []byte) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocumentKind identifies how a stored object is turned into lines.
type DocumentKind int

const (
	// KindUnknown is any object that is not part of the corpus.
	KindUnknown DocumentKind = iota
	// KindPage is a paginated document whose text is extracted page by page.
	KindPage
	// KindTabular is a spreadsheet whose rows become lines.
	KindTabular
)

// String returns the lower-case name of the kind.
func (k DocumentKind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindTabular:
		return "tabular"
	default:
		return "unknown"
	}
}

// Supported suffixes, matched case-insensitively.
const (
	ExtPDF  = ".pdf"
	ExtXLSX = ".xlsx"
	ExtXLS  = ".xls"
)

// CorpusKey is the key of one stored object.
type CorpusKey string

// Ext returns the lower-cased suffix of the key, including the dot.
func (k CorpusKey) Ext() string {
	s := strings.ToLower(string(k))
	if i := strings.LastIndexByte(s, '.'); i >= 0 && !strings.ContainsRune(s[i:], '/') {
		return s[i:]
	}
	return ""
}

// Kind infers the document kind from the key suffix.
func (k CorpusKey) Kind() DocumentKind {
	switch k.Ext() {
	case ExtPDF:
		return KindPage
	case ExtXLSX, ExtXLS:
		return KindTabular
	default:
		return KindUnknown
	}
}

// Document is the extraction result for one key: either its lines or the
// error that prevented extraction.
type Document struct {
	Key   CorpusKey
	Kind  DocumentKind
	Lines []string
	Err   error
}

// Failed reports whether extraction failed. Failed documents are never matched.
func (d Document) Failed() bool {
	return d.Err != nil
}

// MatchKind identifies which rule produced a hit.
type MatchKind int

const (
	// MatchExact is a case-insensitive substring match of the whole query.
	MatchExact MatchKind = iota + 1
	// MatchFuzzy is a single token that is similar enough to the query.
	MatchFuzzy
)

// String returns the lower-case name of the match kind.
func (m MatchKind) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Hit is one matching line within a document.
type Hit struct {
	Key  CorpusKey
	Line int
	Kind MatchKind
}

// Snippet is the raw text surfaced for a hit, before highlighting.
type Snippet struct {
	Key   CorpusKey
	Line  int
	Match MatchKind
	Text  string
}

// Match is one formatted search result.
type Match struct {
	Key          CorpusKey
	DocumentKind DocumentKind
	Line         int
	Match        MatchKind
	Snippet      string   // Raw snippet text
	Highlighted  string   // Snippet with matched terms wrapped in markers
	Terms        []string // Query terms that occur in the snippet
}

// Outcome is the terminal state of a search.
type Outcome int

const (
	// OutcomeResultsReady means at least one match was found.
	OutcomeResultsReady Outcome = iota + 1
	// OutcomeNoFilesFound means the corpus listing was empty.
	OutcomeNoFilesFound
	// OutcomeNoMatchFound means documents were searched but nothing matched.
	OutcomeNoMatchFound
)

// String returns a short name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeResultsReady:
		return "results_ready"
	case OutcomeNoFilesFound:
		return "no_files_found"
	case OutcomeNoMatchFound:
		return "no_match_found"
	default:
		return "unknown"
	}
}

// SearchResult is the ordered outcome of one search over the corpus.
// Matches follow corpus listing order, then line order within a document.
type SearchResult struct {
	Query     string
	Outcome   Outcome
	Matches   []*Match
	Documents int // Number of corpus documents listed
	Skipped   int // Number of documents that could not be fetched or extracted
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key        string
	Size       int64
	ETag       string
	ModifiedAt time.Time
}
