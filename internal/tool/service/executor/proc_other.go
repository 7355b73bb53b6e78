//go:build !linux && !windows

package executor

import (
	"errors"
	"os/exec"
)

// Without waitid(WNOWAIT) the leader cannot be observed before it is reaped.
func waitLeaderExit(cmd *exec.Cmd) error {
	return errors.ErrUnsupported
}
