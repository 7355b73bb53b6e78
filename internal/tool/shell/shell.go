package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/service/executor"
	"github.com/Cyclone1070/workbench/internal/tool/service/path"
	"github.com/sirupsen/logrus"
)

// ShellTool executes commands inside the active workspace.
//
// Only the working directory is confined. The command text is handed to the
// shell as-is and may reference any path the process can reach; callers that
// need more isolation must sandbox the process themselves.
type ShellTool struct {
	fs              fileSystem
	workspace       workspaceProvider
	commandExecutor commandExecutor
	config          *config.Config
}

// NewShellTool creates a new ShellTool with injected dependencies.
func NewShellTool(
	fs fileSystem,
	workspace workspaceProvider,
	commandExecutor commandExecutor,
	cfg *config.Config,
) *ShellTool {
	if fs == nil {
		panic("fs is required")
	}
	if workspace == nil {
		panic("workspace is required")
	}
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &ShellTool{
		fs:              fs,
		workspace:       workspace,
		commandExecutor: commandExecutor,
		config:          cfg,
	}
}

// Run executes req.Command through the configured shell with a hard timeout.
// On timeout the partial output is returned together with a *TimeoutError.
func (t *ShellTool) Run(ctx context.Context, req *ShellRequest) (*ShellResponse, error) {
	if err := req.Validate(t.config); err != nil {
		return nil, err
	}

	root, err := t.workspace.Current()
	if err != nil {
		return nil, err
	}
	resolver := path.NewResolver(root, t.fs)

	workingDir := req.WorkingDir
	if workingDir == "" {
		workingDir = "."
	}
	wdAbs, wdRel, err := resolver.Resolve(workingDir)
	if err != nil {
		return nil, err
	}
	if wdRel == "" {
		wdRel = "."
	}
	info, err := t.fs.Stat(wdAbs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &WorkingDirError{Path: workingDir, Cause: ErrWorkingDirNotDirectory}
		}
		return nil, &WorkingDirError{Path: workingDir, Cause: err}
	}
	if !info.IsDir() {
		return nil, &WorkingDirError{Path: workingDir, Cause: ErrWorkingDirNotDirectory}
	}

	env, err := t.buildEnv(resolver, req)
	if err != nil {
		return nil, err
	}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = time.Duration(t.config.Tools.DefaultShellTimeout) * time.Second
	}

	log := logrus.WithFields(logrus.Fields{"command": req.Command, "working_dir": wdRel})
	log.Debug("running command")

	result, execErr := t.commandExecutor.RunWithTimeout(ctx, t.commandExecutor.ShellCommand(req.Command), wdAbs, env, timeout)
	if result == nil {
		if execErr == nil {
			execErr = fmt.Errorf("executor returned no result")
		}
		return nil, execErr
	}

	resp := &ShellResponse{
		ExitCode:   result.ExitCode,
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		WorkingDir: wdRel,
		DurationMs: result.Duration.Milliseconds(),
		Truncated:  result.Truncated,
	}

	switch {
	case execErr == nil:
		log.WithField("exit_code", resp.ExitCode).Debug("command finished")
		return resp, nil
	case errors.Is(execErr, executor.ErrTimeout):
		log.Warnf("command timed out after %v", timeout)
		return resp, &TimeoutError{Command: req.Command, Duration: timeout}
	default:
		return resp, execErr
	}
}

// buildEnv layers the process environment, then env files in order, then req.Env.
func (t *ShellTool) buildEnv(resolver *path.Resolver, req *ShellRequest) ([]string, error) {
	env := os.Environ()

	for _, envFile := range req.EnvFiles {
		abs, err := resolver.Abs(envFile)
		if err != nil {
			return nil, err
		}
		vars, err := ParseEnvFile(t.fs, abs)
		if err != nil {
			return nil, err
		}
		for k, v := range vars {
			env = append(env, k+"="+v)
		}
	}

	for k, v := range req.Env {
		env = append(env, k+"="+v)
	}
	return env, nil
}
