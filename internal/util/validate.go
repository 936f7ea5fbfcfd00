// Package util contains small boundary helpers shared across packages:
// validation of loosely typed external input before it is converted into
// strongly typed domain structures.
package util

import (
	"fmt"
	"strings"
)

// ValidationError represents input validation errors with detailed information.
type ValidationError struct {
	Field   string `json:"field"`   // Field that failed validation
	Value   any    `json:"value"`   // Value that was provided
	Message string `json:"message"` // Human-readable error message
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// RequireNonEmpty checks that a string field carries a non-blank value.
func RequireNonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Value: value, Message: "required field is missing"}
	}
	return nil
}

// ValidateEmail checks that the address contains an "@" with characters on
// both sides. It does not attempt full RFC 5322 validation.
func ValidateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return &ValidationError{Field: "email", Value: email, Message: "must be a valid email address containing '@'"}
	}
	return nil
}
