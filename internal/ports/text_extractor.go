package ports

import (
	"context"
	"io"
)

// Port: extracts the embedded text layer from an uploaded document.
type TextExtractor interface {
	// ExtractPages returns per-page text blocks in document order.
	// A document without a readable text layer yields an error.
	ExtractPages(ctx context.Context, doc io.ReadSeeker) ([]string, error)
}
