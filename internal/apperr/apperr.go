package apperr

import "errors"

// Closed set of failure categories the services return. Controllers map these
// to HTTP statuses with errors.Is; everything else is treated as a persistence
// failure.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInsufficientRights = errors.New("insufficient rights")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrExpired            = errors.New("expired")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrPersistence        = errors.New("persistence failure")
)
