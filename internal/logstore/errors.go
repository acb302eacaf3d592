package logstore

import (
	"errors"
	"fmt"
)

// ErrStoreClosed is returned when an operation is submitted after Close.
var ErrStoreClosed = errors.New("logstore: store is closed")

// ConfigError reports an invalid construction parameter.
// A store is never created when construction fails.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// ValidationError reports a malformed query argument. It is returned
// before any task is enqueued, so no file access has happened.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// IOError wraps a failed read, write or overwrite against the backing
// file. It surfaces to the caller whose task failed; the queue keeps
// draining afterwards.
type IOError struct {
	Op   string // "append", "read" or "overwrite"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
