// Package apperrors contains the error taxonomy shared by services and
// handlers so transport mapping can use errors.Is instead of string checks.
package apperrors

import "errors"

var (
	// ErrNotFound indicates the record does not exist for the requesting
	// owner. Absent and foreign-owned are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique constraint violation (duplicate
	// username or email).
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a reset token that does not exist, was
	// already consumed, or is past its expiry.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrForbidden indicates an authenticated caller without the required
	// role.
	ErrForbidden = errors.New("forbidden")
)

// ConflictError is a uniqueness violation carrying the message to return.
// errors.Is(err, ErrConflict) matches it.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Conflict builds a ConflictError with the given message.
func Conflict(message string) error {
	return &ConflictError{Message: message}
}

// ValidationError carries a human-readable message for a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError with the given message.
func Validation(message string) error {
	return &ValidationError{Message: message}
}

// AsValidation extracts a ValidationError if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
