package domain

import "errors"

// Sentinel errors shared across services and delivery. The boundary layer
// maps each one to a fixed status code; anything unrecognized becomes a
// generic server error.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrWrongPassword     = errors.New("incorrect current password")
	ErrInvalidFileType   = errors.New("invalid file type")
	ErrInvalidInput      = errors.New("invalid input")
)
