package domain

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// MsgRequired is the validation message for a missing mandatory field.
const MsgRequired = "is required"

// Sentinels matched with errors.Is. Adapters translate them to transport
// status codes.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")
	ErrTimeout     = errors.New("timeout")
)

// ValidationError maps a location (a field name, query parameter or JSON
// pointer such as "projects/0/id") to what is wrong there. It matches
// ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a ValidationError for a single location.
func NewValidationError(location, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{location: msg}}
}

// Error lists the fields in location order so the message is stable.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	b.WriteString(": ")
	for i, loc := range slices.Sorted(maps.Keys(e.Fields)) {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(loc)
		b.WriteString(": ")
		b.WriteString(e.Fields[loc])
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
