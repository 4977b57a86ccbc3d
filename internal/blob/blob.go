// Package blob abstracts the external image-hosting service. The rest of the
// application only ever talks to the BlobStore interface; the S3 adapter is
// the production implementation.
package blob

import (
	"context"
	"io"
	"time"
)

// Object describes one stored blob as seen by this application.
type Object struct {
	ID        string
	URL       string
	Path      string
	CreatedAt time.Time
}

// BlobStore accepts image bytes and hands back retrievable objects.
type BlobStore interface {
	// Store uploads body under the given path and returns the stored object.
	Store(ctx context.Context, path, contentType string, body io.Reader) (Object, error)
	// Enumerate lists every object whose path starts with prefix.
	Enumerate(ctx context.Context, prefix string) ([]Object, error)
}
