package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv stores each key as one file directly under a base directory.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv opens (creating if needed) a diskv store rooted at basePath.
func NewDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	// writes land in tempDir first and are renamed into place, so readers
	// never see a half-written blob.
	tempDir := filepath.Join(basePath, ".tmp")
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           tempDir,
			AdvancedTransform: flatTransform,
			InverseTransform:  flatInverse,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

func (s *Diskv) Read(_ context.Context, key string) ([]byte, error) {
	// direct read: another process may have rewritten the file since our last write.
	rc, err := s.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *Diskv) Write(_ context.Context, key string, data []byte) error {
	return s.d.Write(key, data)
}

func (s *Diskv) Location(key string) string {
	return filepath.Join(s.basePath, key)
}

func (s *Diskv) Close() error { return nil }

func flatTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{FileName: key}
}

func flatInverse(pk *diskv.PathKey) string {
	return pk.FileName
}
