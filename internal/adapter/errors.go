package adapter

import (
	"errors"
	"fmt"
)

// -- Error Types --

// ArgumentError is returned when tool arguments cannot be decoded into the request.
type ArgumentError struct {
	Tool  string
	Cause error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %v", e.Tool, e.Cause)
}
func (e *ArgumentError) Unwrap() []error { return []error{ErrInvalidArguments, e.Cause} }

// -- Sentinels --

var (
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrUnknownTool      = errors.New("unknown tool")
)
