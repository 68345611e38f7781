package service

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every service. Handlers match on these with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrStorage      = errors.New("storage failure")
)

// Specific errors, each classified by one of the kinds above.
var (
	ErrUserAlreadyExists = fmt.Errorf("%w: user with this email already exists", ErrConflict)
	ErrUserNotFound      = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrInvalidPassword   = fmt.Errorf("%w: invalid password", ErrUnauthorized)
	ErrInvalidToken      = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	ErrInvalidUserID     = fmt.Errorf("%w: invalid user id", ErrValidation)
	ErrTokenGeneration   = errors.New("failed to generate authentication token")
	ErrExportUnavailable = errors.New("stats export is not configured")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storageError wraps a backing-store failure; the cause is kept for logs only.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
