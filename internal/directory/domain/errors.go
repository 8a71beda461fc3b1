package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when an identifier or slug matches no persisted record.
	ErrNotFound = errors.New("not found")
	// ErrValidation is the sentinel behind every *ValidationError.
	ErrValidation = errors.New("validation error")
	// ErrForbidden is returned when the actor may not modify a store.
	ErrForbidden = errors.New("forbidden")
	// ErrSlugTaken is returned by repositories when the unique slug index rejects a write.
	ErrSlugTaken = errors.New("slug already taken")
	// ErrStorageUnavailable wraps network and timeout failures from the document store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError collects per-field messages. errors.Is(err, ErrValidation) reports true for it.
type ValidationError struct {
	Fields map[string]string
}

// Add records the first message for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = message
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
