package nodeconfig

import "fmt"

// MissingFieldError reports a cross-field invariant violation: a required
// field is absent given the rest of the parameter set. Derivation is
// all-or-nothing; no partial document accompanies this error.
type MissingFieldError struct {
	Field string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// NewMissingFieldError creates a MissingFieldError for the given field.
func NewMissingFieldError(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}
