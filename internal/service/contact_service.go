package service

import (
	"context"

	"github.com/contactdesk/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit normalizes a decoded JSON payload and stores the resulting
	// record. Validation errors are ErrMalformedPayload or
	// *MissingFieldsError; store errors are *StoreFailure with ErrPersistence.
	Submit(ctx context.Context, payload any, meta model.RequestMeta) (*model.ContactRecord, error)

	// List returns every stored record, newest first. Store errors are
	// *StoreFailure with ErrRetrieval.
	List(ctx context.Context) ([]*model.ContactRecord, error)
}
