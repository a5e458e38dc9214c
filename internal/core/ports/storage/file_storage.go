package storage

import (
	"context"
	"io"
)

// FileStorage persists uploaded document files.
type FileStorage interface {
	// Store writes r under folder using a generated name that keeps the
	// extension of suggestedName. It returns the path to record on the document.
	Store(ctx context.Context, r io.Reader, suggestedName, folder string) (string, error)

	// Delete removes a previously stored file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// Open streams a stored file back.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
