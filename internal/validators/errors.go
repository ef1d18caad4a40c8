package validators

import "errors"

// Validation errors. Each message names the offending field so handlers can
// surface it to the caller verbatim.
var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingUsername  = errors.New("username is required")
	ErrMissingEmail     = errors.New("email is required")
	ErrMissingFirstName = errors.New("first_name is required")
	ErrMissingLastName  = errors.New("last_name is required")
	ErrInvalidEmail     = errors.New("email must contain an '@' character")
	ErrAgeOutOfRange    = errors.New("age must be between 0 and 150")
	ErrAgeNotAnInteger  = errors.New("age must be an integer")
)
