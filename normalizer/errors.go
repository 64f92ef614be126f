// Package normalizer holds the field normalization and validation rules that
// every content controller applies before a document is written.
package normalizer

import (
	"errors"
	"fmt"
)

// ValidationError is returned for client input that can not be persisted.
// Message is safe to show to the editor.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Invalid(message string) error {
	return &ValidationError{Message: message}
}

func Invalidf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError returns the validation error wrapped in err, if any.
func IsValidationError(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
