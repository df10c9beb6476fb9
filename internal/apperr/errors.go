package apperr

import "errors"

// Failure categories shared by services and repositories. Callers wrap these
// with fmt.Errorf("%w: ...") and handlers classify with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrStorage            = errors.New("storage failure")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")
)
