package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps documents on the local filesystem under basePath and
// serves them from baseURL (e.g. "http://localhost:8080/files").
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: abs,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// resolve maps key to a path inside basePath, rejecting traversal.
func (s *LocalStorage) resolve(key string) (string, string, error) {
	clean := filepath.ToSlash(filepath.Clean("/" + key))[1:]
	if clean == "" || clean == "." {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	full := filepath.Join(s.basePath, filepath.FromSlash(clean))
	if !strings.HasPrefix(full, s.basePath+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return clean, full, nil
}

func (s *LocalStorage) Upload(ctx context.Context, content io.Reader, key string, contentType string) (string, error) {
	clean, full, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	// Write to a temp file first so readers never see a partial document.
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	return clean, nil
}

func (s *LocalStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	_, full, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) URL(key string) string {
	clean, _, err := s.resolve(key)
	if err != nil {
		return ""
	}
	return s.baseURL + "/" + clean
}

func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, full, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
