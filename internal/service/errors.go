package service

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidJSON means the request body could not be parsed as JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrMalformedPayload means the body parsed but is not a JSON object.
	ErrMalformedPayload = errors.New("payload must be an object")
	// ErrPersistence classifies failures writing to the contact store.
	ErrPersistence = errors.New("failed to persist data")
	// ErrRetrieval classifies failures reading from the contact store.
	ErrRetrieval = errors.New("failed to retrieve data")
)

// MissingFieldsError lists the required fields that were absent or empty,
// in the order they are checked.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing fields: " + strings.Join(e.Fields, ", ")
}

// StoreFailure wraps a store error with its classification (ErrPersistence
// or ErrRetrieval). errors.Is matches both the kind and the cause.
type StoreFailure struct {
	Kind  error
	Cause error
}

func (e *StoreFailure) Error() string {
	return e.Kind.Error() + ": " + e.Cause.Error()
}

func (e *StoreFailure) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}
