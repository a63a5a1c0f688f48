package waitlist

import "errors"

// Sentinel errors for the waitlist service layer.
var (
	ErrNotFound       = errors.New("application not found")
	ErrDuplicateEmail = errors.New("an application with this email already exists")
)

// ValidationError reports the first submitted field that failed validation.
// Validation is fail-fast: one submission produces at most one of these.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
