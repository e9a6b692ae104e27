// internal/core/services/errors.go
package services

import "errors"

var (
	// ErrMalformedPatch rejects a patch before any repository mutation is staged
	ErrMalformedPatch = errors.New("malformed patch document")
	// ErrSaveFailed reports that committing the staged mutations failed
	ErrSaveFailed = errors.New("failed to save collection")
)
