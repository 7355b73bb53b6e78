package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Workspace WorkspaceConfig `json:"workspace"`
	Tools     ToolsConfig     `json:"tools"`
	Log       LogConfig       `json:"log"`
}

type WorkspaceConfig struct {
	// Relative paths are taken from the process working directory.
	ProjectsBase  string `json:"projects_base"`   // Default: "generated_projects"
	MaxNameLength int    `json:"max_name_length"` // Default: 50
}

type ToolsConfig struct {
	// File Operations
	MaxFileSize int64 `json:"max_file_size"` // Default: 20 * 1024 * 1024 (20MB)

	// Directory Listing
	MaxListResults int `json:"max_list_results"` // Default: 50000

	// Command Execution
	MaxCommandOutputSize int64  `json:"max_command_output_size"` // Default: 10 * 1024 * 1024 (10MB)
	DefaultShellTimeout  int    `json:"default_shell_timeout"`   // Default: 30 (seconds)
	GracefulShutdownMs   int    `json:"graceful_shutdown_ms"`    // Default: 2000
	Shell                string `json:"shell"`                   // Default: "/bin/sh"
}

type LogConfig struct {
	Level  string `json:"level"`  // Default: "info"
	Format string `json:"format"` // Default: "text"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			ProjectsBase:  "generated_projects",
			MaxNameLength: 50,
		},
		Tools: ToolsConfig{
			MaxFileSize:          20 * 1024 * 1024,
			MaxListResults:       50000,
			MaxCommandOutputSize: 10 * 1024 * 1024,
			DefaultShellTimeout:  30,
			GracefulShutdownMs:   2000,
			Shell:                "/bin/sh",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
