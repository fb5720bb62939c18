package search

import (
	"github.com/poiesic/sift/core"
)

// SearchMonitor provides hooks to observe the search process.
// Hooks are invoked from the goroutine that called Search, in corpus
// listing order, so implementations need no locking of their own.
type SearchMonitor interface {
	Start(query string)
	AfterListing(keys []core.CorpusKey)
	DocumentSkipped(key core.CorpusKey, err error)
	// DocumentMatched is called for every document that was searched,
	// with the matches it produced. matches may be empty.
	DocumentMatched(key core.CorpusKey, matches []*core.Match)
	Finish(result *core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                    {}
func (n *noopMonitor) AfterListing(_ []core.CorpusKey)                   {}
func (n *noopMonitor) DocumentSkipped(_ core.CorpusKey, _ error)         {}
func (n *noopMonitor) DocumentMatched(_ core.CorpusKey, _ []*core.Match) {}
func (n *noopMonitor) Finish(_ *core.SearchResult)                       {}
