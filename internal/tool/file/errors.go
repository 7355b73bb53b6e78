package file

import (
	"errors"
	"fmt"
)

// -- Error Types --

// ReadError is returned when an existing path cannot be read as a file.
// It matches ErrReadFailed and its Cause under errors.Is.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause)
}
func (e *ReadError) Unwrap() []error { return []error{ErrReadFailed, e.Cause} }

type EnsureDirsError struct {
	Path  string
	Cause error
}

func (e *EnsureDirsError) Error() string {
	return fmt.Sprintf("failed to create parent directories %s: %v", e.Path, e.Cause)
}
func (e *EnsureDirsError) Unwrap() error { return e.Cause }

type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}
func (e *WriteError) Unwrap() error { return e.Cause }

type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}
func (e *StatError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrReadFailed   = errors.New("read failed")
	ErrFileTooLarge = errors.New("file too large")
	ErrIsDirectory  = errors.New("path is a directory")
	ErrPathRequired = errors.New("path is required")

	ErrUnsupportedEncoding = errors.New("unsupported content encoding")
	ErrInvalidContent      = errors.New("content does not match its encoding")
)
