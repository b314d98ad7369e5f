package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadDownload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/files/")
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("%PDF-1.3"), "payslips/2024/02/slip.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "payslips/2024/02/slip.pdf", key)

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Download(ctx, key)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(body))

	assert.Equal(t, "http://localhost:8080/files/payslips/2024/02/slip.pdf", s.URL(key))
}

// Test keys cannot escape the base directory
func TestLocalStorage_Traversal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "store"), "")
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("x"), "../../outside.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "outside.txt", key)

	_, err = os.Stat(filepath.Join(dir, "outside.txt"))
	assert.True(t, os.IsNotExist(err))

	_, err = s.Upload(ctx, strings.NewReader("x"), "/", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLocalStorage_Missing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	ok, err := s.Exists(context.Background(), "nope.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Download(context.Background(), "nope.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
}
