package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Storage errors
	ErrParse = errors.New("spreadsheet could not be parsed")
	ErrIO    = errors.New("spreadsheet could not be written")

	// Schema errors
	ErrInvalidSchema  = errors.New("invalid schema")
	ErrSchemaMismatch = errors.New("row does not match schema")

	// Session errors
	ErrInvalidTransition = errors.New("invalid state transition")
)

// Error constructors with context
func NewParseError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrParse, path, err)
}

func NewIOError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
}

func NewSchemaMismatchError(column string, reason string) error {
	return fmt.Errorf("%w: column %q %s", ErrSchemaMismatch, column, reason)
}

func NewInvalidSchemaError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSchema, reason)
}

// Error checking helpers
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

func IsIOError(err error) bool {
	return errors.Is(err, ErrIO)
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrInvalidSchema) ||
		errors.Is(err, ErrSchemaMismatch)
}
