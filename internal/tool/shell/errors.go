package shell

import (
	"errors"
	"fmt"
	"time"

	"github.com/Cyclone1070/workbench/internal/tool/service/executor"
)

// -- Error Types --

// TimeoutError is returned when a shell command exceeds its timeout.
type TimeoutError struct {
	Command  string
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("shell command %q timed out after %v", e.Command, e.Duration)
}
func (e *TimeoutError) Unwrap() error { return executor.ErrTimeout }

// WorkingDirError is returned when the working directory is missing or not a directory.
type WorkingDirError struct {
	Path  string
	Cause error
}

func (e *WorkingDirError) Error() string {
	return fmt.Sprintf("invalid working directory %s: %v", e.Path, e.Cause)
}
func (e *WorkingDirError) Unwrap() error { return e.Cause }

// EnvFileReadError is returned when reading an env file fails.
type EnvFileReadError struct {
	Path  string
	Cause error
}

func (e *EnvFileReadError) Error() string {
	return fmt.Sprintf("failed to read env file %s: %v", e.Path, e.Cause)
}
func (e *EnvFileReadError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrCommandRequired        = errors.New("command cannot be empty")
	ErrNegativeTimeout        = errors.New("timeout cannot be negative")
	ErrWorkingDirNotDirectory = errors.New("working directory is not a directory")
	ErrEnvFileParse           = errors.New("invalid env file line")
)
