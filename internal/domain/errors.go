package domain

import "errors"

// ErrValidation is the base error every domain validation failure wraps, so
// callers can classify any of the specific validation errors with a single
// errors.Is check.
var ErrValidation = errors.New("validation failed")
