package sift

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/sift/config"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/extract"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory backend", func(t *testing.T) {
		cfg, err := config.New(config.WithBackend(config.BackendMemory))
		require.NoError(t, err)

		engine, err := Open(ctx, cfg)
		require.NoError(t, err)
		defer engine.Close()

		assert.NotNil(t, engine.Store())
		assert.Equal(t, "chatbot/", engine.Config().Prefix)
	})

	t.Run("badger backend", func(t *testing.T) {
		cfg, err := config.New(config.WithBackend(config.BackendBadger),
			config.WithDBPath(filepath.Join(t.TempDir(), "db")))
		require.NoError(t, err)

		engine, err := Open(ctx, cfg)
		require.NoError(t, err)
		assert.NoError(t, engine.Close())
	})

	t.Run("badger path is a file", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0o644))

		engine, err := Open(ctx, &config.Config{Backend: config.BackendBadger, DBPath: tmpFile})
		assert.Error(t, err)
		assert.Nil(t, engine)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := Open(ctx, &config.Config{Backend: "ftp"})
		assert.ErrorIs(t, err, config.ErrUnknownBackend)
	})
}

func TestEngine_ImportAndSearch(t *testing.T) {
	ctx := context.Background()
	cfg, err := config.New(config.WithBackend(config.BackendMemory), config.WithPrefix("docs"), config.WithPoolSize(2))
	require.NoError(t, err)

	engine, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer engine.Close()

	dir := t.TempDir()
	sheet, err := extract.BuildXLSX(extract.Sheet{Name: "Q3", Rows: [][]any{
		{"Region", "Revenue"},
		{"North", 1200},
	}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q3.xlsx"), sheet, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "memo.pdf"), extract.BuildPDF("north revenue is up"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("revenue"), 0o644))

	pipeline, err := engine.NewImportPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Import(ctx, dir)
	require.NoError(t, err)
	require.Len(t, report.Imported, 2)
	assert.Len(t, report.Unsupported, 1)

	docs, err := engine.List(ctx, "docs/")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "docs/memo.pdf", docs[0].Key)
	assert.Equal(t, "docs/q3.xlsx", docs[1].Key)

	searcher, err := engine.NewSearcher()
	require.NoError(t, err)
	defer searcher.Release()

	result, err := searcher.Search(ctx, "revenue")
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeResultsReady, result.Outcome)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, core.CorpusKey("docs/memo.pdf"), result.Matches[0].Key)
	assert.Equal(t, "north <b>revenue</b> is up", result.Matches[0].Highlighted)
	assert.Equal(t, core.CorpusKey("docs/q3.xlsx"), result.Matches[1].Key)
	assert.Equal(t, "Region  <b>Revenue</b>", result.Matches[1].Highlighted)
}

func TestEngine_Metrics(t *testing.T) {
	ctx := context.Background()
	cfg, err := config.New(config.WithBackend(config.BackendMemory), config.WithPrefix("docs"))
	require.NoError(t, err)

	t.Run("disabled by default", func(t *testing.T) {
		engine, err := Open(ctx, cfg)
		require.NoError(t, err)
		defer engine.Close()

		assert.Nil(t, engine.Monitor())
	})

	t.Run("records searches run with Monitor", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		engine, err := Open(ctx, cfg, WithMetrics(reg))
		require.NoError(t, err)
		defer engine.Close()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "memo.pdf"), extract.BuildPDF("net revenue rose"), 0o644))
		pipeline, err := engine.NewImportPipeline()
		require.NoError(t, err)
		defer pipeline.Release()
		_, err = pipeline.Import(ctx, dir)
		require.NoError(t, err)

		searcher, err := engine.NewSearcher()
		require.NoError(t, err)
		defer searcher.Release()

		_, err = searcher.SearchWithMonitor(ctx, "revenue", engine.Monitor())
		require.NoError(t, err)
		_, err = searcher.SearchWithMonitor(ctx, "payroll", engine.Monitor())
		require.NoError(t, err)

		expected := `
# HELP sift_searches_total Searches completed, by outcome.
# TYPE sift_searches_total counter
sift_searches_total{outcome="no_match_found"} 1
sift_searches_total{outcome="results_ready"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "sift_searches_total"))
	})

	t.Run("registry already holds the collectors", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		engine, err := Open(ctx, cfg, WithMetrics(reg))
		require.NoError(t, err)
		defer engine.Close()

		_, err = Open(ctx, cfg, WithMetrics(reg))
		assert.Error(t, err)
	})
}
