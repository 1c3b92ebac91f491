package service

import (
	"context"
	"io"
)

// Uploader is the blob-store collaborator: Upload stores the file under
// folder/publicID and returns the public retrieval URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
