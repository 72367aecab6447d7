package storage

import "errors"

// Common client storage errors
var (
	// ErrTokenNotFound indicates that a credential field is absent from the store
	ErrTokenNotFound = errors.New("token not found")
)
