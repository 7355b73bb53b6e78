//go:build !windows

package executor

import (
	"context"
	"os"
	osexec "os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(mutate func(cfg *config.Config)) *OSCommandExecutor {
	cfg := config.DefaultConfig()
	cfg.Tools.GracefulShutdownMs = 100
	if mutate != nil {
		mutate(cfg)
	}
	return NewOSCommandExecutor(cfg)
}

func TestRunWithTimeout(t *testing.T) {
	exec := newTestExecutor(nil)
	ctx := context.Background()

	t.Run("SimpleCommand", func(t *testing.T) {
		res, err := exec.RunWithTimeout(ctx, exec.ShellCommand("echo hello"), "", nil, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "hello", strings.TrimSpace(res.Stdout))
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("EmptyCommand", func(t *testing.T) {
		_, err := exec.RunWithTimeout(ctx, nil, "", nil, time.Second)
		assert.ErrorIs(t, err, os.ErrInvalid)
	})

	t.Run("NonZeroExitIsNotAnError", func(t *testing.T) {
		res, err := exec.RunWithTimeout(ctx, exec.ShellCommand("exit 7"), "", nil, time.Second)
		require.NoError(t, err)
		assert.Equal(t, 7, res.ExitCode)
	})

	t.Run("StderrSeparated", func(t *testing.T) {
		res, err := exec.RunWithTimeout(ctx, exec.ShellCommand("echo out; echo err >&2"), "", nil, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "out", strings.TrimSpace(res.Stdout))
		assert.Equal(t, "err", strings.TrimSpace(res.Stderr))
	})

	t.Run("WorkingDirectory", func(t *testing.T) {
		dir, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		res, err := exec.RunWithTimeout(ctx, exec.ShellCommand("pwd -P"), dir, nil, time.Second)
		require.NoError(t, err)
		assert.Equal(t, dir, strings.TrimSpace(res.Stdout))
	})

	t.Run("Environment", func(t *testing.T) {
		env := append(os.Environ(), "WORKBENCH_TEST=value")
		res, err := exec.RunWithTimeout(ctx, exec.ShellCommand("echo $WORKBENCH_TEST"), "", env, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "value", strings.TrimSpace(res.Stdout))
	})

	t.Run("StartFailure", func(t *testing.T) {
		_, err := exec.RunWithTimeout(ctx, []string{"/nonexistent/binary"}, "", nil, time.Second)
		var ce *CommandError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "start", ce.Stage)
	})

	t.Run("LargeOutputTruncated", func(t *testing.T) {
		small := newTestExecutor(func(cfg *config.Config) { cfg.Tools.MaxCommandOutputSize = 10 })
		res, err := small.RunWithTimeout(ctx, small.ShellCommand("echo 123456789012345"), "", nil, time.Second)
		require.NoError(t, err)
		assert.True(t, res.Truncated)
		assert.Equal(t, "1234567890", res.Stdout)
	})
}

func TestRunWithTimeout_BackgroundChildren(t *testing.T) {
	exec := newTestExecutor(nil)

	t.Run("KilledAfterNormalExit", func(t *testing.T) {
		dir := t.TempDir()
		marker := filepath.Join(dir, "marker")
		cmd := "(sleep 1; touch " + marker + ") >/dev/null 2>&1 & echo started"

		start := time.Now()
		res, err := exec.RunWithTimeout(context.Background(), exec.ShellCommand(cmd), dir, nil, 5*time.Second)
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
		assert.Equal(t, "started", strings.TrimSpace(res.Stdout))
		assert.Less(t, time.Since(start), time.Second)

		time.Sleep(1500 * time.Millisecond)
		_, statErr := os.Stat(marker)
		assert.True(t, os.IsNotExist(statErr), "background child should have been killed")
	})

	t.Run("RepeatedRunsUnaffected", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			res, err := exec.RunWithTimeout(context.Background(), exec.ShellCommand("exit 3"), "", nil, time.Second)
			require.NoError(t, err)
			assert.Equal(t, 3, res.ExitCode)
		}
	})

	t.Run("LeaderExitObservedBeforeReap", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("waitid(WNOWAIT) is linux only")
		}
		c := osexec.Command("true")
		require.NoError(t, c.Start())
		require.NoError(t, waitLeaderExit(c))

		// The zombie is still ours to reap.
		require.NoError(t, c.Wait())
		assert.Equal(t, 0, c.ProcessState.ExitCode())
	})
}

func TestRunWithTimeout_Timeout(t *testing.T) {
	exec := newTestExecutor(nil)

	t.Run("TimeoutKillsProcess", func(t *testing.T) {
		start := time.Now()
		res, err := exec.RunWithTimeout(context.Background(), exec.ShellCommand("sleep 10"), "", nil, 200*time.Millisecond)
		elapsed := time.Since(start)

		assert.ErrorIs(t, err, ErrTimeout)
		require.NotNil(t, res)
		assert.Equal(t, -1, res.ExitCode)
		assert.Less(t, elapsed, 3*time.Second)
	})

	t.Run("OutputCollectedOnTimeout", func(t *testing.T) {
		res, err := exec.RunWithTimeout(context.Background(), exec.ShellCommand("echo starting; sleep 10"), "", nil, 500*time.Millisecond)
		assert.ErrorIs(t, err, ErrTimeout)
		require.NotNil(t, res)
		assert.Equal(t, "starting", strings.TrimSpace(res.Stdout))
	})

	t.Run("SigtermIgnoredEscalatesToKill", func(t *testing.T) {
		start := time.Now()
		_, err := exec.RunWithTimeout(context.Background(), exec.ShellCommand(`trap "" TERM; sleep 10`), "", nil, 200*time.Millisecond)
		assert.ErrorIs(t, err, ErrTimeout)
		assert.Less(t, time.Since(start), 3*time.Second)
	})

	t.Run("ChildProcessesTerminated", func(t *testing.T) {
		dir := t.TempDir()
		marker := filepath.Join(dir, "marker")
		// The background child would create the marker if it survived the group kill.
		cmd := "(sleep 1; touch " + marker + ") & sleep 10"

		_, err := exec.RunWithTimeout(context.Background(), exec.ShellCommand(cmd), dir, nil, 200*time.Millisecond)
		assert.ErrorIs(t, err, ErrTimeout)

		time.Sleep(1500 * time.Millisecond)
		_, statErr := os.Stat(marker)
		assert.True(t, os.IsNotExist(statErr), "background child should have been killed")
	})
}

func TestRunWithTimeout_ContextCancel(t *testing.T) {
	exec := newTestExecutor(nil)

	t.Run("CancelledBeforeStart", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := exec.RunWithTimeout(ctx, exec.ShellCommand("echo hi"), "", nil, time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("CancelledWhileRunning", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := exec.RunWithTimeout(ctx, exec.ShellCommand("sleep 10"), "", nil, 10*time.Second)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 3*time.Second)
	})
}

func TestCollector(t *testing.T) {
	t.Run("UnderLimit", func(t *testing.T) {
		c := newCollector(10, 5)
		n, err := c.Write([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, "abc", c.String())
		assert.False(t, c.Truncated())
	})

	t.Run("OverLimit", func(t *testing.T) {
		c := newCollector(5, 5)
		n, _ := c.Write([]byte("abcdef"))
		assert.Equal(t, 6, n)
		assert.Equal(t, "abcde", c.String())
		assert.True(t, c.Truncated())
	})

	t.Run("AcrossWrites", func(t *testing.T) {
		c := newCollector(5, 5)
		_, _ = c.Write([]byte("abc"))
		_, _ = c.Write([]byte("def"))
		_, _ = c.Write([]byte("ghi"))
		assert.Equal(t, "abcde", c.String())
		assert.True(t, c.Truncated())
	})

	t.Run("BinaryDetection", func(t *testing.T) {
		c := newCollector(10, 5)
		_, _ = c.Write([]byte{'a', 0, 'b'})
		assert.Equal(t, "[Binary Content]", c.String())
		assert.True(t, c.Truncated())
	})
}
