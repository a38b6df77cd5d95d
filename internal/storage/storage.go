package storage

import (
	"context"
	"io"
)

// ObjectStore is the object storage collaborator: write bytes under a key
// (overwrite allowed) and resolve a publicly retrievable URL for it.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}
