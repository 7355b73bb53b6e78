//go:build windows

package executor

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
)

func shellArgs(shell, command string) []string {
	if shell == "" || strings.HasPrefix(filepath.ToSlash(shell), "/") {
		shell = "cmd"
	}
	return []string{shell, "/C", command}
}

func setProcessGroup(cmd *exec.Cmd) {}

// Windows has no SIGTERM; callers fall through to killProcessGroup.
func interruptProcessGroup(cmd *exec.Cmd) error {
	return errors.ErrUnsupported
}

func killProcessGroup(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}

func waitLeaderExit(cmd *exec.Cmd) error {
	return errors.ErrUnsupported
}
