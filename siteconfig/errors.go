package siteconfig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation matches any *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// FieldError is a single rejected field, addressed by its JSON path
// (for example "links.aiSystem.internal").
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationError is returned by Save when a configuration breaks a rule.
// The persisted record is left unchanged.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "no validation errors"
	}
	if len(e.Fields) == 1 {
		return "invalid site config: " + e.Fields[0].Error()
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("invalid site config: %d errors:\n  - %s", len(e.Fields), strings.Join(msgs, "\n  - "))
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Field returns the message recorded for path, if any.
func (e *ValidationError) Field(path string) (string, bool) {
	for _, f := range e.Fields {
		if f.Path == path {
			return f.Message, true
		}
	}
	return "", false
}

// Messages returns the field messages keyed by path.
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Path] = f.Message
	}
	return out
}

func (e *ValidationError) add(path, message string) {
	e.Fields = append(e.Fields, FieldError{Path: path, Message: message})
}

// ParseError reports a persisted record that could not be interpreted.
// Load recovers from it by falling back to the defaults.
type ParseError struct {
	Key string
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse site config %q: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
