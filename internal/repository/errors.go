package repository

import "errors"

// ErrUnknownBackend is returned by Open for an unsupported STORE_BACKEND value.
var ErrUnknownBackend = errors.New("unknown store backend")
