package services

import "errors"

// Ошибки, связанные с паролями.
var (
	ErrHashingFailed      = errors.New("failed to hash password")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUnknownHashFormat  = errors.New("unknown password hash format")
	ErrMalformedHashValue = errors.New("malformed password hash")
)
