// Package storage abstracts the blob store products images land in. The
// API only needs "write these bytes, give me a stable URL back"; where the
// bytes actually live is the store's business.
package storage

import (
	"context"
	"io"
)

// BlobStore accepts a binary blob under a generated key and returns a
// stable retrieval URL once the upload has fully completed.
type BlobStore interface {
	Put(ctx context.Context, filename string, r io.Reader) (string, error)
}
