package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

// FileStorage stores generated documents such as salary slips.
type FileStorage interface {
	// Upload writes the content under key and returns the cleaned key
	Upload(ctx context.Context, content io.Reader, key string, contentType string) (string, error)

	// Download opens a stored document; callers close it
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// URL returns the public address of a stored document
	URL(key string) string

	Exists(ctx context.Context, key string) (bool, error)
}
