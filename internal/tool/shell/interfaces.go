package shell

import (
	"context"
	"os"
	"time"

	"github.com/Cyclone1070/workbench/internal/tool/service/executor"
)

// workspaceProvider yields the active workspace root.
type workspaceProvider interface {
	Current() (string, error)
}

// fileSystem defines the filesystem operations needed to confine and read inputs.
type fileSystem interface {
	Lstat(path string) (os.FileInfo, error)
	Readlink(path string) (string, error)
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string, limit int64) ([]byte, bool, error)
}

// envFileReader defines the minimal filesystem interface needed for reading environment files.
type envFileReader interface {
	ReadFile(path string, limit int64) ([]byte, bool, error)
}

// commandExecutor defines the interface for executing shell commands.
type commandExecutor interface {
	ShellCommand(command string) []string
	RunWithTimeout(ctx context.Context, cmd []string, dir string, env []string, timeout time.Duration) (*executor.Result, error)
}
