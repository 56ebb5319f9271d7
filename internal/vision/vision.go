package vision

import (
	"context"
	"errors"

	"compliance-backend/internal/resolution"
)

// Client abstracts AI providers for scanned-document classification.
type Client interface {
	ClassifyDocument(ctx context.Context, input ClassifyInput) (resolution.RawScanResult, error)
}

// ClassifyInput captures one scanned file to classify. Text carries extracted
// PDF text when available; Data carries the raw bytes for image uploads.
type ClassifyInput struct {
	FileName string
	MIMEType string
	Data     []byte
	Text     string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("vision provider not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// ClassifyDocument returns ErrNotImplemented.
func (PlaceholderClient) ClassifyDocument(ctx context.Context, input ClassifyInput) (resolution.RawScanResult, error) {
	_ = ctx
	_ = input
	return resolution.RawScanResult{}, ErrNotImplemented
}
