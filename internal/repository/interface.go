package repository

import (
	"context"

	"github.com/contactdesk/backend/internal/model"
)

// DB is implemented by stores that can report whether their backend is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactStore persists contact records and returns them newest first.
// Records are append-only: there is no update or delete.
type ContactStore interface {
	// Init prepares the backend (creates the file, table or checks the
	// connection). It is safe to call on every startup.
	Init(ctx context.Context) error

	// Append durably stores rec. Document-store backends assign rec.ID.
	Append(ctx context.Context, rec *model.ContactRecord) error

	// ListAll returns every stored record ordered by SubmittedAt descending.
	ListAll(ctx context.Context) ([]*model.ContactRecord, error)

	Close() error
}

// StoreInfo identifies the backend behind a ContactStore.
type StoreInfo struct {
	Backend string `json:"backend"`
	Project string `json:"project"`
}

// Describer is implemented by stores that can identify their backend.
type Describer interface {
	Describe() StoreInfo
}
