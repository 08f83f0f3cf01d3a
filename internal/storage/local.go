package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage stores objects as files under baseDir. Save writes a temp file
// in the same directory, fsyncs it and renames it over the target.
type LocalStorage struct {
	baseDir string
	perm    os.FileMode
}

// NewLocalStorage creates a LocalStorage rooted at baseDir. Files are created
// with mode 0644. baseDir is not created; callers own the directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir, perm: 0o644}
}

// Path returns the file path backing key.
func (s *LocalStorage) Path(key string) string {
	return filepath.Join(s.baseDir, key)
}

func (s *LocalStorage) Save(ctx context.Context, key string, data io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dest := s.Path(key)

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpPath := tmp.Name()
	fail := func(step string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: %s: %w", step, err)
	}

	if err := tmp.Chmod(s.perm); err != nil {
		return fail("chmod", err)
	}
	if _, err := io.Copy(tmp, data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("fsync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: close: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage: rename: %w", err)
	}
	return nil
}
