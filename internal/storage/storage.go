package storage

import (
	"context"
	"io"
)

// Storage replaces whole objects by key. A reader never observes a partially
// written object: it sees either the previous content or the new one.
type Storage interface {
	// Save replaces the object at key with the contents of data.
	Save(ctx context.Context, key string, data io.Reader) error
}
