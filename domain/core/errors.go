package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Ingestion errors
	ErrFileNotFound   = errors.New("file not found")
	ErrUnreadableFile = errors.New("file could not be read")

	// Table errors
	ErrEmptyTable     = errors.New("table has no data rows")
	ErrColumnNotFound = errors.New("column not found")
)

// Error constructors with context
func NewFileNotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrFileNotFound, path)
}

func NewUnreadableFileError(path string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnreadableFile, path, cause)
}

func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, name)
}

// Error checking helpers
func IsFileNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}

func IsUnreadableFile(err error) bool {
	return errors.Is(err, ErrUnreadableFile)
}
