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

package search

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/corpus"
	"github.com/poiesic/sift/extract"
	"github.com/poiesic/sift/match"
	"github.com/poiesic/sift/storage"
)

// Searcher provides exact and fuzzy snippet search over a document corpus.
type Searcher struct {
	store       storage.ObjectReader
	lister      *corpus.Lister
	extractor   extract.Extractor
	matcher     *match.Matcher
	snippets    *match.SnippetBuilder
	highlighter *match.Highlighter
	pool        *ants.Pool
	poolSize    int
	prefix      string
	logger      *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPoolSize sets the number of documents processed concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		s.poolSize = size
		return nil
	}
}

// WithPrefix sets the key prefix that defines the corpus.
// Default is the empty prefix, which searches the whole store.
func WithPrefix(prefix string) Option {
	return func(s *Searcher) error {
		s.prefix = prefix
		return nil
	}
}

// WithExtractor replaces the default extractor registry.
func WithExtractor(extractor extract.Extractor) Option {
	return func(s *Searcher) error {
		if extractor == nil {
			return ErrExtractorRequired
		}
		s.extractor = extractor
		return nil
	}
}

// WithMatcher replaces the default matcher.
func WithMatcher(matcher *match.Matcher) Option {
	return func(s *Searcher) error {
		if matcher == nil {
			return ErrMatcherRequired
		}
		s.matcher = matcher
		return nil
	}
}

// WithSnippetBuilder replaces the default snippet builder.
func WithSnippetBuilder(builder *match.SnippetBuilder) Option {
	return func(s *Searcher) error {
		if builder == nil {
			return ErrSnippetBuilderRequired
		}
		s.snippets = builder
		return nil
	}
}

// WithHighlighter replaces the default highlighter.
func WithHighlighter(highlighter *match.Highlighter) Option {
	return func(s *Searcher) error {
		if highlighter == nil {
			return ErrHighlighterRequired
		}
		s.highlighter = highlighter
		return nil
	}
}

// NewSearcher creates a new searcher over store.
// The caller owns store and must call Release when done with the searcher.
func NewSearcher(store storage.ObjectReader, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	s := &Searcher{
		store:       store,
		poolSize:    poolSize,
		highlighter: match.NewHighlighter("", ""),
		logger:      slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	// Fill in defaults not supplied by options
	var err error
	if s.extractor == nil {
		if s.extractor, err = extract.NewRegistry(extract.WithLogger(s.logger)); err != nil {
			return nil, err
		}
	}
	if s.matcher == nil {
		if s.matcher, err = match.NewMatcher(); err != nil {
			return nil, err
		}
	}
	if s.snippets == nil {
		if s.snippets, err = match.NewSnippetBuilder(); err != nil {
			return nil, err
		}
	}

	if s.lister, err = corpus.NewLister(store, s.logger); err != nil {
		return nil, err
	}

	if s.pool, err = ants.NewPool(s.poolSize); err != nil {
		return nil, err
	}

	return s, nil
}

// Search runs query over the configured corpus prefix.
func (s *Searcher) Search(ctx context.Context, query string) (*core.SearchResult, error) {
	return s.SearchPrefixWithMonitor(ctx, s.prefix, query, nil)
}

// SearchPrefix runs query over the documents under prefix.
func (s *Searcher) SearchPrefix(ctx context.Context, prefix, query string) (*core.SearchResult, error) {
	return s.SearchPrefixWithMonitor(ctx, prefix, query, nil)
}

// SearchWithMonitor runs query over the configured corpus prefix with monitoring.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, monitor SearchMonitor) (*core.SearchResult, error) {
	return s.SearchPrefixWithMonitor(ctx, s.prefix, query, monitor)
}

// documentResult is the outcome of searching one document.
type documentResult struct {
	matches []*core.Match
	err     error // fetch or extraction failure
}

// SearchPrefixWithMonitor runs query over the documents under prefix.
// The monitor receives callbacks at each stage of the search process.
//
// Matches follow corpus listing order, then line order within a document.
// A listing failure is returned as an error wrapping corpus.ErrListingFailed.
// Documents that cannot be fetched or extracted are skipped and counted.
func (s *Searcher) SearchPrefixWithMonitor(ctx context.Context, prefix, query string, monitor SearchMonitor) (*core.SearchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	q, err := core.NewQuery(query)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With("search_id", uuid.New().String())
	monitor.Start(query)

	// 1. List the corpus
	keys, err := s.lister.Keys(ctx, prefix)
	if err != nil {
		logger.Error("error listing corpus", "prefix", prefix, "err", err)
		return nil, err
	}
	monitor.AfterListing(keys)

	result := &core.SearchResult{
		Query:     query,
		Documents: len(keys),
		Matches:   []*core.Match{},
	}
	if len(keys) == 0 {
		logger.Info("no documents found", "prefix", prefix)
		result.Outcome = core.OutcomeNoFilesFound
		monitor.Finish(result)
		return result, nil
	}

	// 2. Fan documents out onto the pool, each into its own slot
	slots := make([]documentResult, len(keys))
	var wg sync.WaitGroup
	var submitErr error
	for i, key := range keys {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			slots[i] = s.searchDocument(ctx, key, q)
		}); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("scheduling %s: %w", key, err)
			break
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		logger.Warn("search cancelled", "query", query, "err", err)
		return nil, err
	}
	if submitErr != nil {
		logger.Error("error scheduling document", "err", submitErr)
		return nil, submitErr
	}

	// 3. Re-assemble in listing order
	for i, slot := range slots {
		if slot.err != nil {
			logger.Warn("skipping document", "key", keys[i], "err", slot.err)
			result.Skipped++
			monitor.DocumentSkipped(keys[i], slot.err)
			continue
		}
		monitor.DocumentMatched(keys[i], slot.matches)
		result.Matches = append(result.Matches, slot.matches...)
	}

	if len(result.Matches) == 0 {
		result.Outcome = core.OutcomeNoMatchFound
	} else {
		result.Outcome = core.OutcomeResultsReady
	}

	logger.Debug("search finished", "query", query, "documents", result.Documents,
		"skipped", result.Skipped, "matches", len(result.Matches))
	monitor.Finish(result)
	return result, nil
}

// searchDocument fetches, extracts and matches a single document.
func (s *Searcher) searchDocument(ctx context.Context, key core.CorpusKey, q core.Query) documentResult {
	data, err := s.store.Get(ctx, string(key))
	if err != nil {
		return documentResult{err: fmt.Errorf("fetching %s: %w", key, err)}
	}

	doc := s.extractor.Extract(key, data)
	if doc.Failed() {
		return documentResult{err: doc.Err}
	}

	hits := s.matcher.Match(doc, q)
	if len(hits) == 0 {
		return documentResult{}
	}

	snippets := s.snippets.BuildAll(doc, hits)
	matches := make([]*core.Match, len(snippets))
	for i, snippet := range snippets {
		highlighted, terms := s.highlighter.Highlight(snippet.Text, q)
		matches[i] = &core.Match{
			Key:          key,
			DocumentKind: doc.Kind,
			Line:         snippet.Line,
			Match:        snippet.Match,
			Snippet:      snippet.Text,
			Highlighted:  highlighted,
			Terms:        terms,
		}
	}
	return documentResult{matches: matches}
}

// Release releases the worker pool.
// The searcher should not be used after calling Release.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
