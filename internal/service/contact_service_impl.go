package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	store repository.ContactStore
	now   func() time.Time
}

// NewContactService creates a ContactService backed by the given store.
func NewContactService(store repository.ContactStore) ContactService {
	return &contactServiceImpl{store: store, now: time.Now}
}

// Submit validates payload and appends the record. Nothing is stored when
// validation fails.
func (s *contactServiceImpl) Submit(ctx context.Context, payload any, meta model.RequestMeta) (*model.ContactRecord, error) {
	rec, err := Normalize(payload, meta, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store.Append(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "contact append failed", "error", err)
		return nil, &StoreFailure{Kind: ErrPersistence, Cause: err}
	}
	slog.InfoContext(ctx, "contact stored", "type", rec.Type, "id", rec.ID)
	return rec, nil
}

// List returns every stored record, newest first.
func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactRecord, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "contact list failed", "error", err)
		return nil, &StoreFailure{Kind: ErrRetrieval, Cause: err}
	}
	if records == nil {
		records = []*model.ContactRecord{}
	}
	return records, nil
}
