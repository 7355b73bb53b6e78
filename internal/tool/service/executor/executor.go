package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/helper/content"
	"github.com/sirupsen/logrus"
)

// waitDelay bounds how long Wait blocks on output pipes held open by
// processes that escaped the group.
const waitDelay = time.Second

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
	Duration  time.Duration
}

// OSCommandExecutor implements command execution using os/exec for real system commands.
type OSCommandExecutor struct {
	config *config.Config
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{config: cfg}
}

// ShellCommand returns the argv that runs command through the configured shell.
func (f *OSCommandExecutor) ShellCommand(command string) []string {
	return shellArgs(f.config.Tools.Shell, command)
}

// RunWithTimeout executes a command in its own process group.
//
// A non-zero exit status is reported in Result.ExitCode, not as an error.
// When timeout elapses the group receives SIGTERM, then SIGKILL after the
// configured grace period, and the partial output is returned with ErrTimeout.
// Cancelling ctx kills the group immediately and returns ctx.Err().
// A timeout of 0 disables the timer.
func (f *OSCommandExecutor) RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	maxBytes := int(f.config.Tools.MaxCommandOutputSize)
	stdout := newCollector(maxBytes, content.BinarySampleSize)
	stderr := newCollector(maxBytes, content.BinarySampleSize)

	// Not CommandContext: cancellation must reach the whole group, not just the shell.
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}
	log := logrus.WithField("pid", cmd.Process.Pid)
	log.Debugf("started %q in %s", command, dir)

	done := make(chan error, 1)
	go func() {
		// Background children may outlive the shell. They are killed before
		// Wait reaps the leader, while its pid still pins the group id.
		if waitLeaderExit(cmd) == nil {
			_ = killProcessGroup(cmd)
		}
		done <- cmd.Wait()
	}()

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		_ = killProcessGroup(cmd)
		<-done
		execErr = ctx.Err()
	case <-timer:
		log.Warnf("command exceeded timeout %s, terminating process group", timeout)
		f.terminate(cmd, done)
		execErr = ErrTimeout
	}

	res := &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode(cmd, execErr),
		Truncated: stdout.Truncated() || stderr.Truncated(),
		Duration:  time.Since(start),
	}
	log.WithField("exit_code", res.ExitCode).Debugf("finished in %s", res.Duration)

	switch {
	case execErr == nil:
		return res, nil
	case errors.Is(execErr, ErrTimeout), errors.Is(execErr, context.Canceled), errors.Is(execErr, context.DeadlineExceeded):
		return res, execErr
	case errors.Is(execErr, exec.ErrWaitDelay):
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(execErr, &exitErr) {
		return res, nil
	}
	return res, &CommandError{Cmd: command[0], Cause: execErr, Stage: "execution"}
}

// terminate asks the process group to stop, escalating to SIGKILL after the
// grace period, and returns once the process has been reaped.
func (f *OSCommandExecutor) terminate(cmd *exec.Cmd, done <-chan error) {
	grace := time.Duration(f.config.Tools.GracefulShutdownMs) * time.Millisecond

	exited := false
	if grace > 0 && interruptProcessGroup(cmd) == nil {
		select {
		case <-done:
			exited = true
		case <-time.After(grace):
		}
	}

	// Once done fires the leader is reaped and the group id may be reused.
	if !exited {
		_ = killProcessGroup(cmd)
		<-done
	}
}

func exitCode(cmd *exec.Cmd, err error) int {
	if errors.Is(err, ErrTimeout) || cmd.ProcessState == nil {
		return -1
	}
	// -1 when the process was killed by a signal
	return cmd.ProcessState.ExitCode()
}
