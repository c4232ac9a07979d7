package service

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports malformed, missing or duplicate input. Fields maps a
// wire field name to its messages; Message is used when no single field applies.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return strings.Join(parts, ", ")
}

// Add records a message against field
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// OrNil returns e when it holds at least one field error, nil otherwise
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	if e.Message == "" {
		e.Message = "validation failed"
	}
	return e
}

// NewValidationError returns a validation error not tied to a field
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// NewFieldError returns a validation error for a single field
func NewFieldError(field, msg string) *ValidationError {
	e := &ValidationError{Message: "validation failed"}
	e.Add(field, msg)
	return e
}

// AuthorizationError reports an identity acting on something it does not own
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NotFoundError reports a referenced entity that does not exist
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}
