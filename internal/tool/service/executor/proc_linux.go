//go:build linux

package executor

import (
	"errors"
	"os/exec"

	"golang.org/x/sys/unix"
)

// waitLeaderExit blocks until the group leader exits but leaves it unreaped.
// The zombie keeps the group id reserved, so signalling the group cannot
// reach a process that later reuses the pid.
func waitLeaderExit(cmd *exec.Cmd) error {
	var info unix.Siginfo
	for {
		err := unix.Waitid(unix.P_PID, cmd.Process.Pid, &info, unix.WEXITED|unix.WNOWAIT, nil)
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}
