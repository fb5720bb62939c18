package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/sift/core"
)

// CellSeparator joins the non-empty cells of a tabular row.
const CellSeparator = "  "

// LineExtractor decodes one document format into ordered text lines.
type LineExtractor interface {
	Lines(data []byte) ([]string, error)
}

// Extractor converts the bytes of a stored object into a Document.
type Extractor interface {
	Extract(key core.CorpusKey, data []byte) core.Document
}

// Registry maps lower-cased key suffixes to line extractors.
type Registry struct {
	extractors map[string]LineExtractor
	logger     *slog.Logger
}

var _ Extractor = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithExtractor registers le for keys ending in ext, replacing any default.
func WithExtractor(ext string, le LineExtractor) Option {
	return func(r *Registry) error {
		if le == nil {
			return fmt.Errorf("nil extractor for %q", ext)
		}
		r.extractors[strings.ToLower(ext)] = le
		return nil
	}
}

// NewRegistry creates a registry with the PDF, XLSX and XLS extractors.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		extractors: map[string]LineExtractor{
			core.ExtPDF:  PDFExtractor{},
			core.ExtXLSX: XLSXExtractor{},
			core.ExtXLS:  XLSExtractor{},
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Extract decodes data according to the suffix of key.
// The returned document carries either the lines or the failure.
func (r *Registry) Extract(key core.CorpusKey, data []byte) core.Document {
	doc := core.Document{Key: key, Kind: key.Kind()}

	le, ok := r.extractors[key.Ext()]
	if !ok {
		doc.Err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, key.Ext())
		return doc
	}

	lines, err := safeLines(le, data)
	if err != nil {
		r.logger.Debug("extraction failed", "key", key, "err", err)
		doc.Err = fmt.Errorf("extracting %s: %w", key, err)
		return doc
	}

	doc.Lines = lines
	return doc
}

// safeLines runs le, converting a panic in a third-party decoder into an error.
func safeLines(le LineExtractor, data []byte) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("%w: %v", ErrDecoderPanic, r)
		}
	}()
	return le.Lines(data)
}

// joinCells renders a row as its non-empty cells joined by CellSeparator.
// Returns false for a row with no non-empty cells.
func joinCells(cells []string) (string, bool) {
	kept := make([]string, 0, len(cells))
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		kept = append(kept, cell)
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, CellSeparator), true
}
