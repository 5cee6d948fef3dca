package storage

import (
	"context"
	"io"
)

// FileStore is the collaborator that holds cover files. The core only stores
// the opaque key it returns.
type FileStore interface {
	// Save writes the content and returns the storage key for it.
	Save(ctx context.Context, content io.Reader, contentType string) (string, error)
	// Open returns the content for a previously saved key.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
	// Delete removes the content for a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
