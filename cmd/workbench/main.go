// Package main provides the workbench command-line interface.
// It manages project workspaces and runs the file and shell tools inside them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	// Interrupts cancel the context, which kills any running command's process group.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.status())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// exitCodeError carries a command's non-zero exit status out of run.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.code)
}

// status maps the recorded code to a process exit status; -1 means killed by a signal.
func (e *exitCodeError) status() int {
	if e.code < 0 {
		return 1
	}
	return e.code
}
