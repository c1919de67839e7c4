package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrTaskNotFound is returned when the target task no longer exists,
	// typically after losing a race with a concurrent delete.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAuthorNotFound is returned when no author has the given id.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrDuplicateSlug is returned when a create or update would collide
	// with another task's slug. Reported separately from validation
	// failures so callers can blame the title field.
	ErrDuplicateSlug = errors.New("a task with this slug already exists")
)

// ValidationError carries per-field messages for input that failed
// field-level constraints. The user can recover by correcting the input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors collects field-level problems and converts to a
// *ValidationError only if any were recorded.
type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	f[field] = message
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
