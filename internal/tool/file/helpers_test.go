package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/service/fs"
	"github.com/Cyclone1070/workbench/internal/workspace"
	"github.com/stretchr/testify/require"
)

// faultyFS wraps the real filesystem and injects failures per operation.
type faultyFS struct {
	*fs.OSFileSystem
	statErr       error
	readErr       error
	ensureDirsErr error
	writeErr      error
}

func (f *faultyFS) Stat(path string) (os.FileInfo, error) {
	if f.statErr != nil {
		return nil, f.statErr
	}
	return f.OSFileSystem.Stat(path)
}

func (f *faultyFS) ReadFile(path string, limit int64) ([]byte, bool, error) {
	if f.readErr != nil {
		return nil, false, f.readErr
	}
	return f.OSFileSystem.ReadFile(path, limit)
}

func (f *faultyFS) EnsureDirs(path string) error {
	if f.ensureDirsErr != nil {
		return f.ensureDirsErr
	}
	return f.OSFileSystem.EnsureDirs(path)
}

func (f *faultyFS) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.OSFileSystem.WriteFileAtomic(path, content, perm)
}

// newTestWorkspace initializes a workspace named "proj" under a fresh base.
func newTestWorkspace(t *testing.T) (*workspace.Context, string) {
	t.Helper()
	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	ws := workspace.NewContext(base, workspace.DefaultMaxNameLength)
	root, err := ws.Initialize("proj")
	require.NoError(t, err)
	return ws, root
}

func newTestConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Tools.MaxFileSize = 1024
	return cfg
}
