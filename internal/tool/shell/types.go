package shell

import (
	"time"

	"github.com/Cyclone1070/workbench/internal/config"
)

// ShellRequest describes one command invocation.
// Command is shell text and is passed to the shell verbatim.
type ShellRequest struct {
	Command    string            `json:"command" mapstructure:"command"`
	WorkingDir string            `json:"working_dir,omitempty" mapstructure:"working_dir"`
	Timeout    time.Duration     `json:"timeout,omitempty" mapstructure:"timeout"` // 0 means tools.default_shell_timeout
	Env        map[string]string `json:"env,omitempty" mapstructure:"env"`
	EnvFiles   []string          `json:"env_files,omitempty" mapstructure:"env_files"` // workspace-relative .env files, applied before Env
}

func (r *ShellRequest) Validate(cfg *config.Config) error {
	if r.Command == "" {
		return ErrCommandRequired
	}
	if r.Timeout < 0 {
		return ErrNegativeTimeout
	}
	return nil
}

// ShellResponse represents the result of a command execution.
// A non-zero ExitCode is a normal result, not an error.
type ShellResponse struct {
	ExitCode   int    `json:"exit_code"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	WorkingDir string `json:"working_dir"`
	DurationMs int64  `json:"duration_ms"`
	Truncated  bool   `json:"truncated"`
}
