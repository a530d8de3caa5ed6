package service

import "errors"

// Sentinel errors for expected conditions. Handlers translate these to HTTP
// statuses via errors.Is; anything else is treated as an infrastructure
// failure and surfaced as a 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("already exists")
	ErrInUse              = errors.New("in use")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
