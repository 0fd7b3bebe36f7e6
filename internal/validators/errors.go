package validators

import (
	"errors"
	"strings"
)

var (
	// ErrValidation wraps every rule violation reported by a Validator. The
	// wrapping error carries the human readable field messages.
	ErrValidation = errors.New("validation failed")

	ErrUnsupportedType = errors.New("unsupported type for validation")
)

// FieldErrors lists the rule violations of one validated value, one
// human-readable message per field. It matches ErrValidation.
type FieldErrors struct {
	Messages []string
}

func (e *FieldErrors) Error() string {
	return ErrValidation.Error() + ": " + e.Message()
}

// Message joins the field messages.
func (e *FieldErrors) Message() string {
	return strings.Join(e.Messages, "; ")
}

func (e *FieldErrors) Unwrap() error {
	return ErrValidation
}
