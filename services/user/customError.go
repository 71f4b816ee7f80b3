package user

import (
	"fmt"
	"sort"
	"strings"
)

// FieldError carries per-field validation messages keyed by the submitted
// field names, ready for the response envelope.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
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

// NewFieldError builds a single-field validation error.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Fields: map[string]string{field: message}}
}
