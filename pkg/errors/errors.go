package errors

import (
	"fmt"
)

// ParseError represents a theme or configuration document that could not be
// decoded. Path names the storage key or file the document came from.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	if e.Path == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures a theme or configuration value that decoded
// cleanly but does not satisfy the expected shape.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PersistenceError reports a storage backend that is absent or refused an
// operation on a key.
type PersistenceError struct {
	Key string
	Op  string
	Err error
}

// NewPersistenceError constructs a PersistenceError for the given operation.
func NewPersistenceError(key, op string, err error) error {
	return &PersistenceError{Key: key, Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("persistence error: %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the root error.
func (e *PersistenceError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ProjectionError indicates that a theme could not be written onto a render
// target such as a document root or terminal style sheet.
type ProjectionError struct {
	Target string
	Err    error
}

// NewProjectionError constructs a ProjectionError for the named target.
func NewProjectionError(target string, err error) error {
	return &ProjectionError{Target: target, Err: err}
}

func (e *ProjectionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Target != "" {
		return fmt.Sprintf("projection error [%s]: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("projection error: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *ProjectionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
