package extract

import "errors"

var (
	// ErrUnsupportedFormat indicates no extractor is registered for the key suffix.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrDecoderPanic indicates the underlying decoder panicked on malformed input.
	ErrDecoderPanic = errors.New("decoder panicked")
)
