package domain

import "errors"

// Error kinds shared by services, repositories and the HTTP layer.
// Callers wrap them with fmt.Errorf("...: %w", ErrX) and match with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("already exists")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
)

// ValidationError carries a user-facing message and matches ErrValidation
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return ErrValidation.Error() + ": " + e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }
