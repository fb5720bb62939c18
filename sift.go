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

// Package sift searches a corpus of PDF and spreadsheet documents held in an
// object store for exact and near matches of a query.
//
// Open builds the configured store and returns an Engine, which hands out
// searchers and import pipelines bound to that store and the configured
// corpus prefix.
package sift

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/sift/config"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/corpus"
	"github.com/poiesic/sift/ingestion"
	"github.com/poiesic/sift/search"
	"github.com/poiesic/sift/storage"
	"github.com/poiesic/sift/storage/badger"
	"github.com/poiesic/sift/storage/s3"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine gives access to a configured corpus store.
type Engine struct {
	cfg        *config.Config
	store      storage.ObjectStore
	registerer prometheus.Registerer
	metrics    *search.Metrics
	logger     *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// WithStore uses store instead of building one from the configured backend.
// The engine takes ownership and closes it on Close.
func WithStore(store storage.ObjectStore) EngineOption {
	return func(e *Engine) {
		e.store = store
	}
}

// WithMetrics registers the search collectors with reg. Searches run with
// Monitor are then recorded there.
func WithMetrics(reg prometheus.Registerer) EngineOption {
	return func(e *Engine) {
		e.registerer = reg
	}
}

// Open validates cfg and opens its storage backend. A nil cfg uses
// config.DefaultConfig(). The caller must Close the engine.
func Open(ctx context.Context, cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}

	if e.registerer != nil {
		metrics, err := search.NewMetrics(e.registerer)
		if err != nil {
			return nil, fmt.Errorf("registering search metrics: %w", err)
		}
		e.metrics = metrics
	}

	if e.store == nil {
		store, err := openStore(ctx, cfg, e.logger)
		if err != nil {
			return nil, err
		}
		e.store = store
	}

	e.logger.Debug("opened engine", "backend", cfg.Backend, "prefix", cfg.Prefix)
	return e, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.ObjectStore, error) {
	switch cfg.Backend {
	case config.BackendS3:
		client, err := s3.NewClient(ctx, s3.ClientConfig{
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			UsePathStyle:    cfg.Endpoint != "",
		})
		if err != nil {
			return nil, err
		}
		return s3.NewStore(client, cfg.Bucket, s3.WithLogger(logger))
	case config.BackendBadger:
		return badger.OpenObjectStore(cfg.DBPath, false)
	case config.BackendMemory:
		return badger.NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}

// Config returns the validated configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Store returns the object store holding the corpus.
func (e *Engine) Store() storage.ObjectStore {
	return e.store
}

// Monitor returns a monitor recording one search into the registry given to
// WithMetrics, or nil when metrics are disabled. Use a fresh monitor per search.
func (e *Engine) Monitor() search.SearchMonitor {
	if e.metrics == nil {
		return nil
	}
	return e.metrics.Monitor()
}

// List returns the searchable documents under prefix.
func (e *Engine) List(ctx context.Context, prefix string) ([]core.ObjectInfo, error) {
	lister, err := corpus.NewLister(e.store, e.logger)
	if err != nil {
		return nil, err
	}
	return lister.List(ctx, prefix)
}

// NewSearcher creates a searcher over the configured prefix. opts are
// applied after the configured defaults. Release the searcher when done.
func (e *Engine) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	defaults := []search.Option{
		search.WithLogger(e.logger),
		search.WithPrefix(e.cfg.Prefix),
	}
	if e.cfg.PoolSize > 0 {
		defaults = append(defaults, search.WithPoolSize(e.cfg.PoolSize))
	}
	return search.NewSearcher(e.store, append(defaults, opts...)...)
}

// NewImportPipeline creates a pipeline that uploads into the configured
// prefix. Release the pipeline when done.
func (e *Engine) NewImportPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	defaults := []ingestion.Option{
		ingestion.WithLogger(e.logger),
		ingestion.WithPrefix(e.cfg.Prefix),
	}
	if e.cfg.PoolSize > 0 {
		defaults = append(defaults, ingestion.WithPoolSize(e.cfg.PoolSize))
	}
	return ingestion.NewPipeline(e.store, append(defaults, opts...)...)
}

// Close closes the object store.
func (e *Engine) Close() error {
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing object store", "err", err)
		return err
	}
	return nil
}
