package service

import (
	"errors"

	"github.com/Skotchmaster/silver_admin/internal/repo"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = repo.ErrNotFound
	ErrConflict           = repo.ErrConflict
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfDelete         = errors.New("cannot delete own account")
	ErrSelfDemote         = errors.New("cannot revoke own admin role")
)

// ValidationError is a user-facing input problem. Every value matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var (
	ErrHandleRequired   = &ValidationError{Field: "handle", Message: "Username is required."}
	ErrHandleTooLong    = &ValidationError{Field: "handle", Message: "Username must be at most 64 characters."}
	ErrPasswordTooShort = &ValidationError{Field: "password", Message: "Password must be at least 6 characters."}
	ErrPasswordTooLong  = &ValidationError{Field: "password", Message: "Password must be at most 72 bytes."}
	ErrPasswordMismatch = &ValidationError{Field: "confirm", Message: "Passwords do not match."}
)
