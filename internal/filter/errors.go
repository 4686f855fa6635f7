package filter

import (
	"errors"
	"fmt"
)

// ValidationError reports criteria that failed validation before any request
// was issued: a value outside its field's enumeration, or a bad date range.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("invalid filter field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid filter field %s: value %v is not allowed", e.Field, e.Value)
}

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
