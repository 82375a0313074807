package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound      = "user not found"
	ErrMsgUserAlreadyExists = "user already exists"

	// Request errors
	ErrMsgMalformedRequest  = "malformed request"
	ErrMsgValidationFailed  = "validation failed"
	ErrMsgLoginCharset      = "Login should contain only letters or digits"
	ErrMsgFieldRequired     = "This field is required"
	ErrMsgUnknownPatchPath  = "Unknown field"
	ErrMsgUnsupportedPatch  = "Unsupported patch operation"
	ErrMsgPatchValueNotText = "Value must be a string or null"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrUserAlreadyExists = errors.New(ErrMsgUserAlreadyExists)

	// ErrMalformedRequest covers missing or null bodies and unusable identifiers.
	ErrMalformedRequest = errors.New(ErrMsgMalformedRequest)

	// ErrValidationFailed is matched by every *ValidationError.
	ErrValidationFailed = errors.New(ErrMsgValidationFailed)
)

// ValidationError carries field-keyed messages. Every detected violation is
// kept; a field may hold several messages.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any field carries a message.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns e when it carries messages and nil otherwise, so callers can
// return it directly as an error.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return fmt.Sprintf("%s: %s", ErrMsgValidationFailed, strings.Join(parts, ", "))
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
