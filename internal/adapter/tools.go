package adapter

import (
	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/directory"
	"github.com/Cyclone1070/workbench/internal/tool/file"
	"github.com/Cyclone1070/workbench/internal/tool/service/executor"
	"github.com/Cyclone1070/workbench/internal/tool/service/fs"
	"github.com/Cyclone1070/workbench/internal/tool/shell"
	"github.com/Cyclone1070/workbench/internal/workspace"
	"google.golang.org/genai"
)

// NewTools builds the full tool surface over one workspace context.
// Every file and process tool resolves against ws.Current() at call time.
func NewTools(ws *workspace.Context, cfg *config.Config) []Tool {
	if ws == nil {
		panic("ws is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	osFS := fs.NewOSFileSystem()
	registry := workspace.NewRegistry(ws.Base(), osFS)
	commandExecutor := executor.NewOSCommandExecutor(cfg)

	return []Tool{
		NewInitProject(ws, cfg),
		NewListProjects(registry, cfg),
		NewGetCurrentDirectory(ws, cfg),
		NewWriteFile(file.NewWriteFileTool(osFS, ws, cfg), cfg),
		NewReadFile(file.NewReadFileTool(osFS, ws, cfg), cfg),
		NewListFiles(directory.NewListDirectoryTool(osFS, ws, cfg), cfg),
		NewRunCmd(shell.NewShellTool(osFS, ws, commandExecutor, cfg), cfg),
	}
}

// NewWriteFile creates a write_file adapter
func NewWriteFile(t *file.WriteFileTool, cfg *config.Config) Tool {
	return NewBaseAdapter(
		"write_file",
		"Creates or overwrites a file in the current project. Parent directories are created as needed.",
		&genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"path": {
					Type:        genai.TypeString,
					Description: "Path to the file (relative to the project root)",
				},
				"content": {
					Type:        genai.TypeString,
					Description: "Full file content",
				},
				"encoding": {
					Type:        genai.TypeString,
					Description: "Encoding of content: utf-8 (default) or base64 for binary data",
					Enum:        []string{file.EncodingText, file.EncodingBase64},
				},
			},
			Required: []string{"path", "content"},
		},
		cfg,
		t.Run,
	)
}

// NewReadFile creates a read_file adapter
func NewReadFile(t *file.ReadFileTool, cfg *config.Config) Tool {
	return NewBaseAdapter(
		"read_file",
		"Reads a file from the current project. A missing file is reported with exists=false. Content that is not UTF-8 text is returned base64-encoded with encoding=base64.",
		&genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"path": {
					Type:        genai.TypeString,
					Description: "Path to the file (relative to the project root)",
				},
			},
			Required: []string{"path"},
		},
		cfg,
		t.Run,
	)
}

// NewListFiles creates a list_files adapter
func NewListFiles(t *directory.ListDirectoryTool, cfg *config.Config) Tool {
	return NewBaseAdapter(
		"list_files",
		"Recursively lists files below a directory of the current project. Paths are relative to the project root.",
		&genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"path": {
					Type:        genai.TypeString,
					Description: "Directory to list (relative to the project root, default: .)",
				},
				"exclude_ignored": {
					Type:        genai.TypeBoolean,
					Description: "Skip files matched by .gitignore and the .git directory",
				},
			},
		},
		cfg,
		t.Run,
	)
}

// NewRunCmd creates a run_cmd adapter
func NewRunCmd(t *shell.ShellTool, cfg *config.Config) Tool {
	return NewBaseAdapter(
		"run_cmd",
		"Runs a shell command inside the current project and returns its exit code and output. The process is killed when the timeout elapses.",
		&genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"command": {
					Type:        genai.TypeString,
					Description: "Shell command line",
				},
				"working_dir": {
					Type:        genai.TypeString,
					Description: "Working directory (relative to the project root, default: .)",
				},
				"timeout": {
					Type:        genai.TypeNumber,
					Description: "Timeout in seconds (default from configuration)",
				},
				"env": {
					Type:        genai.TypeObject,
					Description: "Additional environment variables",
				},
				"env_files": {
					Type:        genai.TypeArray,
					Description: "Paths to .env files to load, relative to the project root",
					Items:       &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"command"},
		},
		cfg,
		t.Run,
	)
}

// NewInitProject creates an init_project adapter
func NewInitProject(ws *workspace.Context, cfg *config.Config) Tool {
	return NewBaseAdapter(
		"init_project",
		"Creates the named project (or reopens it if it exists) and makes it the current project.",
		&genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"project_name": {
					Type:        genai.TypeString,
					Description: "Project name; unsupported characters are replaced",
				},
			},
			Required: []string{"project_name"},
		},
		cfg,
		initProject(ws),
	)
}

// NewListProjects creates a list_projects adapter
func NewListProjects(registry *workspace.Registry, cfg *config.Config) Tool {
	return NewBaseAdapter(
		"list_projects",
		"Lists existing projects by name.",
		&genai.Schema{Type: genai.TypeObject},
		cfg,
		listProjects(registry),
	)
}

// NewGetCurrentDirectory creates a get_current_directory adapter
func NewGetCurrentDirectory(ws *workspace.Context, cfg *config.Config) Tool {
	return NewBaseAdapter(
		"get_current_directory",
		"Returns the absolute root of the current project.",
		&genai.Schema{Type: genai.TypeObject},
		cfg,
		currentDirectory(ws),
	)
}
