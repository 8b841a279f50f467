package storage

import "context"

// Uploader is the slice of object storage the handlers need: turn bytes
// into a URL. Handlers depend on this, not on the MinIO client.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
