// internal/pkg/apperr/errors.go
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when input fails a business rule:
	// an invalid status transition, missing import columns, an
	// unsupported file format.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced wave, item or place
	// does not exist.
	ErrNotFound = errors.New("requested record not found")

	// ErrResource is returned when an uploaded file is rejected before
	// any storage mutation (size limit, disallowed extension).
	ErrResource = errors.New("resource rejected")

	// ErrConflict is returned when an operation loses a race: a
	// duplicate wave number or a ledger update that conflicts with a
	// concurrent transition. Callers may retry.
	ErrConflict = errors.New("concurrent update conflict")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// Resourcef wraps ErrResource with a formatted message.
func Resourcef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrResource}, args...)...)
}

// Conflictf wraps ErrConflict with a formatted message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsResource reports whether err is a rejected-resource error.
func IsResource(err error) bool { return errors.Is(err, ErrResource) }

// IsConflict reports whether err is a retryable conflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
