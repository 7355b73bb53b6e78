package config

import (
	"fmt"
	"slices"
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Workspace validation
	if c.Workspace.ProjectsBase == "" {
		errs = append(errs, "workspace.projects_base must not be empty")
	}
	if c.Workspace.MaxNameLength < 1 {
		errs = append(errs, "workspace.max_name_length must be >= 1")
	}

	// Tools validation
	if c.Tools.MaxFileSize < 1 {
		errs = append(errs, "tools.max_file_size must be >= 1")
	}
	if c.Tools.MaxListResults < 1 {
		errs = append(errs, "tools.max_list_results must be >= 1")
	}
	if c.Tools.MaxCommandOutputSize < 1 {
		errs = append(errs, "tools.max_command_output_size must be >= 1")
	}
	if c.Tools.DefaultShellTimeout < 1 {
		errs = append(errs, "tools.default_shell_timeout must be >= 1")
	}
	if c.Tools.GracefulShutdownMs < 0 {
		errs = append(errs, "tools.graceful_shutdown_ms must be >= 0")
	}
	if c.Tools.Shell == "" {
		errs = append(errs, "tools.shell must not be empty")
	}

	// Log validation
	if !slices.Contains(validLogLevels, c.Log.Level) {
		errs = append(errs, fmt.Sprintf("log.level must be one of %v", validLogLevels))
	}
	if !slices.Contains(validLogFormats, c.Log.Format) {
		errs = append(errs, fmt.Sprintf("log.format must be one of %v", validLogFormats))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
