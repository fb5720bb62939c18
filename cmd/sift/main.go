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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/poiesic/sift"
	"github.com/poiesic/sift/config"
	"github.com/poiesic/sift/ingestion"
	"github.com/poiesic/sift/match"
	"github.com/poiesic/sift/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func prefixFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "prefix",
		Aliases: []string{"p"},
		Usage:   "Key prefix of the corpus (overrides the config file)",
	}
}

func workersFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"w"},
		Usage:   "Number of documents processed concurrently (0 uses NumCPU/2)",
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sift",
		Usage: "Search PDF and spreadsheet documents in an object store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML configuration file",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Storage backend (s3, badger, memory)",
			},
			&cli.StringFlag{
				Name:  "bucket",
				Usage: "S3 bucket holding the corpus",
			},
			&cli.StringFlag{
				Name:  "region",
				Usage: "S3 region",
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "Custom endpoint for S3-compatible stores",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (badger backend)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the corpus for a query",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					prefixFlag(),
					workersFlag(),
					&cli.BoolFlag{
						Name:  "html",
						Usage: "Render results as HTML fragments",
					},
					&cli.StringFlag{
						Name:  "metrics-file",
						Usage: "Write search metrics in Prometheus text format to this file",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List the searchable documents in the corpus",
				Action: listCommand,
				Flags:  []cli.Flag{prefixFlag()},
			},
			{
				Name:   "import",
				Usage:  "Upload a local directory of documents into the corpus",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dir",
						Usage:    "Directory to import",
						Required: true,
					},
					prefixFlag(),
					workersFlag(),
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum upload attempts per file",
						Value: ingestion.DefaultMaxAttempts,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: ingestion.DefaultRetryDelay,
					},
				},
			},
		},
	}
}

// loadConfig reads the config file, if any, and overlays the flags that were set.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFrom(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	var opts []config.Option
	if c.IsSet("backend") {
		opts = append(opts, config.WithBackend(c.String("backend")))
	}
	if c.IsSet("bucket") {
		opts = append(opts, config.WithBucket(c.String("bucket")))
	}
	if c.IsSet("region") {
		opts = append(opts, config.WithRegion(c.String("region")))
	}
	if c.IsSet("endpoint") {
		opts = append(opts, config.WithEndpoint(c.String("endpoint")))
	}
	if c.IsSet("db") {
		opts = append(opts, config.WithDBPath(c.String("db")))
	}
	if c.IsSet("prefix") {
		opts = append(opts, config.WithPrefix(c.String("prefix")))
	}
	if c.IsSet("workers") {
		opts = append(opts, config.WithPoolSize(c.Int("workers")))
	}

	if err := cfg.Apply(opts...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openEngine(c *cli.Context, opts ...sift.EngineOption) (*sift.Engine, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	engine, err := sift.Open(c.Context, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	return engine, nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}

	metricsFile := c.String("metrics-file")
	var (
		registry *prometheus.Registry
		opts     []sift.EngineOption
	)
	if metricsFile != "" {
		registry = prometheus.NewRegistry()
		opts = append(opts, sift.WithMetrics(registry))
	}

	engine, err := openEngine(c, opts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	render := search.TextRender
	highlighter := match.NewHighlighter("**", "**")
	if c.Bool("html") {
		render = search.HTMLRender
		highlighter = match.NewHighlighter(match.DefaultOpenMarker, match.DefaultCloseMarker)
	}

	searcher, err := engine.NewSearcher(search.WithHighlighter(highlighter))
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Release()

	result, err := searcher.SearchWithMonitor(c.Context, query, engine.Monitor())
	// Failed searches are recorded too.
	if registry != nil {
		if werr := prometheus.WriteToTextfile(metricsFile, registry); werr != nil {
			return fmt.Errorf("failed to write metrics: %w", werr)
		}
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Fprintln(c.App.Writer, search.Render(result, render))
	slog.Info("search complete", "query", query, "documents", result.Documents,
		"skipped", result.Skipped, "matches", len(result.Matches))
	return nil
}

func listCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	docs, err := engine.List(c.Context, engine.Config().Prefix)
	if err != nil {
		return err
	}

	var total uint64
	for _, doc := range docs {
		modified := "-"
		if !doc.ModifiedAt.IsZero() {
			modified = humanize.Time(doc.ModifiedAt)
		}
		fmt.Fprintf(c.App.Writer, "%-10s %-16s %s\n", humanize.Bytes(uint64(doc.Size)), modified, doc.Key)
		total += uint64(doc.Size)
	}
	fmt.Fprintf(c.App.Writer, "%d documents, %s\n", len(docs), humanize.Bytes(total))
	return nil
}

func importCommand(c *cli.Context) error {
	if c.Int("max-retries") <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	pipeline, err := engine.NewImportPipeline(
		ingestion.WithMaxAttempts(c.Int("max-retries")),
		ingestion.WithRetryDelay(c.Duration("retry-delay")),
		ingestion.WithProgress(c.App.ErrWriter),
	)
	if err != nil {
		return fmt.Errorf("failed to create import pipeline: %w", err)
	}
	defer pipeline.Release()

	dir := c.String("dir")
	fmt.Fprintf(c.App.ErrWriter, "Source: %s\n", dir)
	fmt.Fprintf(c.App.ErrWriter, "Backend: %s\n", engine.Config().Backend)
	fmt.Fprintf(c.App.ErrWriter, "Prefix: %s\n", engine.Config().Prefix)
	fmt.Fprintln(c.App.ErrWriter)

	report, err := pipeline.Import(c.Context, dir)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	var total uint64
	for _, info := range report.Imported {
		total += uint64(info.Size)
	}
	fmt.Fprintf(c.App.Writer, "Imported %d documents (%s), %d failed, %d unsupported\n",
		len(report.Imported), humanize.Bytes(total), len(report.Failed), len(report.Unsupported))

	for _, failure := range report.Failed {
		fmt.Fprintf(c.App.ErrWriter, "failed: %s: %v\n", failure.Path, failure.Err)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d documents failed to import", len(report.Failed))
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
