package config

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when a required file is missing.
	ErrFileNotFound = errors.New("config file not found")

	// ErrValidationFailed matches every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError reports a TOML or YAML file that could not be decoded.
// Line and Column are zero when the decoder gives no position.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	at := e.Path
	switch {
	case e.Line > 0 && e.Column > 0:
		at = fmt.Sprintf("%s:%d:%d", e.Path, e.Line, e.Column)
	case e.Line > 0:
		at = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return at + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError names a setting or table entry that decoded but makes no
// sense, e.g. Path "commands[2].keyword".
type ValidationError struct {
	Path    string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
