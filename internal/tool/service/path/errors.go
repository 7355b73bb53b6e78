package path

import (
	"errors"
	"fmt"
)

// -- Error Types --

// WorkspaceRootError is returned when the workspace root is invalid.
type WorkspaceRootError struct {
	Root  string
	Cause error
}

func (e *WorkspaceRootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}
func (e *WorkspaceRootError) Unwrap() error { return e.Cause }

// ConfinementError is returned when a candidate path resolves outside the workspace root.
// Path is the canonical location the candidate resolved to.
type ConfinementError struct {
	Root string
	Path string
}

func (e *ConfinementError) Error() string {
	return fmt.Sprintf("path %s is outside workspace root %s", e.Path, e.Root)
}
func (e *ConfinementError) Unwrap() error { return ErrOutsideWorkspace }

// SymlinkLoopError is returned when symlink expansion exceeds the hop limit.
type SymlinkLoopError struct {
	Path    string
	MaxHops int
}

func (e *SymlinkLoopError) Error() string {
	return fmt.Sprintf("too many levels of symbolic links resolving %s (max %d hops)", e.Path, e.MaxHops)
}
func (e *SymlinkLoopError) Unwrap() error { return ErrSymlinkLoop }

// LstatError is returned when lstat fails for a reason other than a missing path.
type LstatError struct {
	Path  string
	Cause error
}

func (e *LstatError) Error() string {
	return fmt.Sprintf("failed to lstat path %s: %v", e.Path, e.Cause)
}
func (e *LstatError) Unwrap() error { return e.Cause }

// ReadlinkError is returned when readlink fails.
type ReadlinkError struct {
	Path  string
	Cause error
}

func (e *ReadlinkError) Error() string {
	return fmt.Sprintf("failed to read symlink %s: %v", e.Path, e.Cause)
}
func (e *ReadlinkError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrOutsideWorkspace    = errors.New("path is outside workspace root")
	ErrWorkspaceRootNotSet = errors.New("workspace root not set")
	ErrNotADirectory       = errors.New("not a directory")
	ErrSymlinkLoop         = errors.New("symlink loop detected")
)
