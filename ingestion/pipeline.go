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

package ingestion

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/corpus"
	"github.com/poiesic/sift/storage"
)

// Defaults for upload retries.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 500 * time.Millisecond
)

// Pipeline uploads local documents into an object store.
type Pipeline struct {
	store       storage.ObjectWriter
	pool        *ants.Pool
	poolSize    int
	prefix      string
	maxAttempts int
	retryDelay  time.Duration
	progress    io.Writer
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the number of concurrent uploads.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithPrefix sets the key prefix that uploaded files are stored under.
func WithPrefix(prefix string) Option {
	return func(p *Pipeline) error {
		p.prefix = prefix
		return nil
	}
}

// WithMaxAttempts sets how many times an upload is tried.
func WithMaxAttempts(attempts int) Option {
	return func(p *Pipeline) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = attempts
		return nil
	}
}

// WithRetryDelay sets the delay before the first retry. Later retries double it.
func WithRetryDelay(delay time.Duration) Option {
	return func(p *Pipeline) error {
		if delay < 0 {
			return fmt.Errorf("retry delay must not be negative, got %s", delay)
		}
		p.retryDelay = delay
		return nil
	}
}

// WithProgress writes a progress line to w while importing.
// Default is no progress output.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// NewPipeline creates a new import pipeline writing to store.
// Call Release when done with the pipeline.
func NewPipeline(store storage.ObjectWriter, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	p := &Pipeline{
		store:       store,
		poolSize:    poolSize,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
		logger:      slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(p.poolSize)
	if err != nil {
		return nil, err
	}
	p.pool = pool

	return p, nil
}

// ImportFailure is a file that could not be uploaded.
type ImportFailure struct {
	Path string
	Key  string
	Err  error
}

// ImportReport summarizes an import.
type ImportReport struct {
	Imported    []core.ObjectInfo // In key order
	Failed      []ImportFailure   // In key order
	Unsupported []string          // Paths skipped because no extractor reads them
}

type importFile struct {
	path string
	key  string
}

// Import uploads every supported file below dir. A file's key is the prefix
// followed by its slash-separated path relative to dir.
// Upload failures are collected in the report; only an unreadable dir or a
// cancelled context returns an error.
func (p *Pipeline) Import(ctx context.Context, dir string) (*ImportReport, error) {
	if dir == "" {
		return nil, ErrDirRequired
	}

	files, unsupported, err := p.collect(dir)
	if err != nil {
		return nil, err
	}
	p.logger.Info("importing documents", "dir", dir, "prefix", p.prefix,
		"files", len(files), "unsupported", len(unsupported))

	var tracker *ProgressTracker
	if p.progress != nil {
		tracker = NewProgressTracker(p.progress, "files", len(files), 1)
		tracker.Start()
	}

	infos := make([]core.ObjectInfo, len(files))
	errs := make([]error, len(files))
	var wg sync.WaitGroup
	var submitErr error
	for i, file := range files {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			infos[i], errs[i] = p.upload(ctx, file)
			if tracker != nil {
				tracker.Increment(1)
			}
		}); err != nil {
			wg.Done()
			submitErr = fmt.Errorf("scheduling %s: %w", file.path, err)
			break
		}
	}
	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if submitErr != nil {
		return nil, submitErr
	}

	report := &ImportReport{Unsupported: unsupported}
	for i, file := range files {
		if errs[i] != nil {
			p.logger.Warn("import failed", "path", file.path, "key", file.key, "err", errs[i])
			report.Failed = append(report.Failed, ImportFailure{Path: file.path, Key: file.key, Err: errs[i]})
			continue
		}
		report.Imported = append(report.Imported, infos[i])
	}

	p.logger.Info("import finished", "imported", len(report.Imported), "failed", len(report.Failed))
	return report, nil
}

// collect walks dir and splits its regular files into supported uploads,
// sorted by key, and unsupported paths.
func (p *Pipeline) collect(dir string) ([]importFile, []string, error) {
	stat, err := os.Stat(dir)
	if err != nil {
		return nil, nil, err
	}
	if !stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	var files []importFile
	var unsupported []string
	err = filepath.WalkDir(dir, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if !corpus.Supported(entry.Name()) {
			unsupported = append(unsupported, filePath)
			return nil
		}

		rel, err := filepath.Rel(dir, filePath)
		if err != nil {
			return err
		}
		files = append(files, importFile{
			path: filePath,
			key:  p.prefix + path.Clean(filepath.ToSlash(rel)),
		})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].key < files[j].key })
	return files, unsupported, nil
}

func (p *Pipeline) upload(ctx context.Context, file importFile) (core.ObjectInfo, error) {
	data, err := os.ReadFile(file.path)
	if err != nil {
		return core.ObjectInfo{}, err
	}

	var info core.ObjectInfo
	err = retryWithBackoff(ctx, p.logger.With("key", file.key), func() error {
		var putErr error
		info, putErr = p.store.Put(ctx, file.key, data)
		return putErr
	}, p.maxAttempts, p.retryDelay)
	if err != nil {
		return core.ObjectInfo{}, err
	}

	p.logger.Debug("imported document", "key", file.key, "size", info.Size)
	return info, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
