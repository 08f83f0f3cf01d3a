package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/storage"
)

// FileContactStore keeps every record in one JSON array file.
//
// Appends are a read-modify-write of the whole file, serialized by mu and
// published with an atomic rename, so concurrent readers see either the old
// or the new array and concurrent appends never lose records.
type FileContactStore struct {
	path  string
	files storage.Storage
	mu    sync.Mutex
}

// NewFileContactStore creates a FileContactStore for the JSON file at path.
func NewFileContactStore(path string) *FileContactStore {
	return &FileContactStore{
		path:  path,
		files: storage.NewLocalStorage(filepath.Dir(path)),
	}
}

var (
	_ ContactStore = (*FileContactStore)(nil)
	_ DB           = (*FileContactStore)(nil)
	_ Describer    = (*FileContactStore)(nil)
)

// Init creates the parent directory and an empty array file when absent.
func (s *FileContactStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("file store: mkdir: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file store: stat: %w", err)
	}
	return s.write(ctx, []*model.ContactRecord{})
}

// Append adds rec to the end of the array. A corrupt or non-array file is
// replaced by a collection holding only rec.
func (s *FileContactStore) Append(ctx context.Context, rec *model.ContactRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}
	records = append(records, rec)
	return s.write(ctx, records)
}

// ListAll returns the stored records newest first. An absent or unparseable
// file yields an empty slice.
func (s *FileContactStore) ListAll(_ context.Context) ([]*model.ContactRecord, error) {
	records, err := s.read()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(records)
	return records, nil
}

// Ping checks that the data file's directory is reachable.
func (s *FileContactStore) Ping(_ context.Context) error {
	if _, err := os.Stat(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	return nil
}

func (s *FileContactStore) Describe() StoreInfo {
	return StoreInfo{Backend: "file", Project: s.path}
}

func (s *FileContactStore) Close() error { return nil }

func (s *FileContactStore) read() ([]*model.ContactRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*model.ContactRecord{}, nil
		}
		return nil, fmt.Errorf("file store: read: %w", err)
	}

	var records []*model.ContactRecord
	if err := json.Unmarshal(data, &records); err != nil || records == nil {
		slog.Warn("contact file is not a JSON array, treating as empty", "path", s.path, "error", err)
		return []*model.ContactRecord{}, nil
	}
	out := records[:0]
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

// write encodes records as an indented array and replaces the file.
func (s *FileContactStore) write(ctx context.Context, records []*model.ContactRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("file store: encode: %w", err)
	}
	if err := s.files.Save(ctx, filepath.Base(s.path), &buf); err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	return nil
}

func sortNewestFirst(records []*model.ContactRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SubmittedAt.After(records[j].SubmittedAt)
	})
}
