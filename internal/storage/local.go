package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore writes blobs into a directory served as static files and
// builds the public URL from the configured base URL.
type LocalStore struct {
	Dir     string
	BaseURL string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{Dir: dir, BaseURL: baseURL}, nil
}

// Put saves the blob under a uuid-based name so uploads never collide, and
// returns the URL it will be served from. The file is fully written and
// closed before the URL is handed back.
func (s *LocalStore) Put(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	savePath := filepath.Join(s.Dir, newFilename)

	f, err := os.Create(savePath)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(savePath)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(savePath)
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s", s.BaseURL, newFilename), nil
}
