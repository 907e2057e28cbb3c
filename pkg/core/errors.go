package core

import (
	"errors"
	"strings"
)

// Common errors.
var (
	ErrInvalidNote    = errors.New("invalid note")
	ErrReadOnly       = errors.New("storage is in read-only mode")
	ErrUnknownAdapter = errors.New("unknown storage adapter")
)

// ValidationError reports which draft fields were rejected.
// It is a user-facing warning, not a fault: the store is left unchanged.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid note: missing " + strings.Join(e.Fields, ", ")
}

// Unwrap lets errors.Is match ErrInvalidNote.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidNote
}

// Validate checks that a draft has a non-blank title and content.
func Validate(d Draft) error {
	var fields []string
	if strings.TrimSpace(d.Title) == "" {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(d.Content) == "" {
		fields = append(fields, "content")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
