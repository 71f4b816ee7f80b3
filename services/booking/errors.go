package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound signals that the requested session does not exist.
	ErrNotFound = errors.New("session not found")
	// ErrForbidden signals that the session belongs to another user.
	ErrForbidden = errors.New("session belongs to another user")
	// ErrLinkNotAvailable signals a link request outside the access window.
	ErrLinkNotAvailable = errors.New("session link is not available yet")
)

// ValidationError carries per-field messages keyed by the submitted field
// names, ready to be returned in the response envelope.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
