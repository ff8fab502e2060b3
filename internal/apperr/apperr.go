package apperr

import (
	"errors"
	"fmt"
)

// The four error kinds that cross component boundaries. Storage-layer errors
// are wrapped into one of these before leaving a service; handlers map them to
// HTTP statuses and nothing below this package ever reaches a response body.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrTransient  = errors.New("transient storage error")
)

func NotFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

func Forbidden(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrForbidden)
}

func Validation(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrValidation)
}

func Transient(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrTransient)
}
