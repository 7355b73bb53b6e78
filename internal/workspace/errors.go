package workspace

import (
	"errors"
	"fmt"
)

// -- Error Types --

// CreationError is returned when a workspace cannot be established.
// It matches both ErrCreationFailed and its Cause under errors.Is.
type CreationError struct {
	Name  string
	Path  string
	Cause error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to create workspace %q at %s: %v", e.Name, e.Path, e.Cause)
}
func (e *CreationError) Unwrap() []error { return []error{ErrCreationFailed, e.Cause} }

// ListError is returned when the projects base exists but cannot be listed.
type ListError struct {
	Base  string
	Cause error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("failed to list workspaces in %s: %v", e.Base, e.Cause)
}
func (e *ListError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrNotInitialized = errors.New("no workspace initialized")
	ErrCreationFailed = errors.New("workspace creation failed")
	// ErrWorkspaceNotFound is the cause when switching to a workspace that does not exist.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrNotDirectChild is the cause when a name resolves anywhere but directly under the base.
	ErrNotDirectChild = errors.New("workspace must be a directory directly under the projects base")
)
