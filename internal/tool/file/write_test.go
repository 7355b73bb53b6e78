package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cyclone1070/workbench/internal/tool/service/fs"
	"github.com/Cyclone1070/workbench/internal/tool/service/path"
	"github.com/Cyclone1070/workbench/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	ctx := context.Background()

	t.Run("creates file and parents", func(t *testing.T) {
		ws, root := newTestWorkspace(t)
		tool := NewWriteFileTool(fs.NewOSFileSystem(), ws, newTestConfig())

		resp, err := tool.Run(ctx, &WriteFileRequest{Path: "src/app/main.go", Content: "package main\n"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "src", "app", "main.go"), resp.AbsolutePath)
		assert.Equal(t, "src/app/main.go", resp.RelativePath)
		assert.Equal(t, 13, resp.BytesWritten)

		data, err := os.ReadFile(resp.AbsolutePath)
		require.NoError(t, err)
		assert.Equal(t, "package main\n", string(data))

		info, err := os.Stat(resp.AbsolutePath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		ws, root := newTestWorkspace(t)
		tool := NewWriteFileTool(fs.NewOSFileSystem(), ws, newTestConfig())
		require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("old content"), 0o644))

		_, err := tool.Run(ctx, &WriteFileRequest{Path: "a.txt", Content: "new"})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(root, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("overwrite keeps existing mode", func(t *testing.T) {
		ws, root := newTestWorkspace(t)
		tool := NewWriteFileTool(fs.NewOSFileSystem(), ws, newTestConfig())
		script := filepath.Join(root, "run.sh")
		require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho old\n"), 0o755))
		require.NoError(t, os.Chmod(script, 0o755))

		_, err := tool.Run(ctx, &WriteFileRequest{Path: "run.sh", Content: "#!/bin/sh\necho new\n"})
		require.NoError(t, err)

		info, err := os.Stat(script)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	})

	t.Run("empty content creates empty file", func(t *testing.T) {
		ws, root := newTestWorkspace(t)
		tool := NewWriteFileTool(fs.NewOSFileSystem(), ws, newTestConfig())

		resp, err := tool.Run(ctx, &WriteFileRequest{Path: "empty.txt"})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.BytesWritten)

		info, err := os.Stat(filepath.Join(root, "empty.txt"))
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("not initialized", func(t *testing.T) {
		ws := workspace.NewContext(t.TempDir(), 0)
		tool := NewWriteFileTool(fs.NewOSFileSystem(), ws, newTestConfig())

		_, err := tool.Run(ctx, &WriteFileRequest{Path: "a.txt", Content: "x"})
		assert.ErrorIs(t, err, workspace.ErrNotInitialized)
	})

	t.Run("path required", func(t *testing.T) {
		ws, _ := newTestWorkspace(t)
		tool := NewWriteFileTool(fs.NewOSFileSystem(), ws, newTestConfig())

		_, err := tool.Run(ctx, &WriteFileRequest{Content: "x"})
		assert.ErrorIs(t, err, ErrPathRequired)
	})

	t.Run("too large", func(t *testing.T) {
		ws, root := newTestWorkspace(t)
		tool := NewWriteFileTool(fs.NewOSFileSystem(), ws, newTestConfig())

		_, err := tool.Run(ctx, &WriteFileRequest{Path: "big.txt", Content: strings.Repeat("x", 1025)})
		assert.ErrorIs(t, err, ErrFileTooLarge)
		assert.NoFileExists(t, filepath.Join(root, "big.txt"))
	})

	t.Run("directory target", func(t *testing.T) {
		ws, root := newTestWorkspace(t)
		tool := NewWriteFileTool(fs.NewOSFileSystem(), ws, newTestConfig())
		require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

		_, err := tool.Run(ctx, &WriteFileRequest{Path: "sub", Content: "x"})
		assert.ErrorIs(t, err, ErrIsDirectory)

		_, err = tool.Run(ctx, &WriteFileRequest{Path: ".", Content: "x"})
		assert.ErrorIs(t, err, ErrIsDirectory)
	})

	t.Run("confinement", func(t *testing.T) {
		ws, root := newTestWorkspace(t)
		tool := NewWriteFileTool(fs.NewOSFileSystem(), ws, newTestConfig())
		outside := t.TempDir()
		require.NoError(t, os.Symlink(outside, filepath.Join(root, "escape")))

		for _, p := range []string{"../evil.txt", "../../evil.txt", "/etc/evil.txt", "escape/evil.txt", "../proj2/x.txt"} {
			_, err := tool.Run(ctx, &WriteFileRequest{Path: p, Content: "x"})
			var ce *path.ConfinementError
			assert.ErrorAs(t, err, &ce, p)
		}
		entries, err := os.ReadDir(outside)
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoFileExists(t, filepath.Join(filepath.Dir(root), "evil.txt"))
	})

	t.Run("symlink inside workspace writes through to target", func(t *testing.T) {
		ws, root := newTestWorkspace(t)
		tool := NewWriteFileTool(fs.NewOSFileSystem(), ws, newTestConfig())
		require.NoError(t, os.Mkdir(filepath.Join(root, "real"), 0o755))
		require.NoError(t, os.Symlink("real", filepath.Join(root, "alias")))

		resp, err := tool.Run(ctx, &WriteFileRequest{Path: "alias/f.txt", Content: "x"})
		require.NoError(t, err)
		assert.Equal(t, "real/f.txt", resp.RelativePath)
		assert.FileExists(t, filepath.Join(root, "real", "f.txt"))
	})
}

func TestWriteFileFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	tests := []struct {
		name    string
		fs      func() *faultyFS
		wantErr any
	}{
		{
			name:    "stat failure",
			fs:      func() *faultyFS { return &faultyFS{OSFileSystem: fs.NewOSFileSystem(), statErr: boom} },
			wantErr: &StatError{},
		},
		{
			name:    "ensure dirs failure",
			fs:      func() *faultyFS { return &faultyFS{OSFileSystem: fs.NewOSFileSystem(), ensureDirsErr: boom} },
			wantErr: &EnsureDirsError{},
		},
		{
			name:    "atomic write failure",
			fs:      func() *faultyFS { return &faultyFS{OSFileSystem: fs.NewOSFileSystem(), writeErr: boom} },
			wantErr: &WriteError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, _ := newTestWorkspace(t)
			tool := NewWriteFileTool(tt.fs(), ws, newTestConfig())

			_, err := tool.Run(ctx, &WriteFileRequest{Path: "dir/a.txt", Content: "x"})
			require.Error(t, err)
			assert.IsType(t, tt.wantErr, err)
			assert.ErrorIs(t, err, boom)
		})
	}
}

func TestNewWriteFileToolPanics(t *testing.T) {
	ws, _ := newTestWorkspace(t)
	assert.Panics(t, func() { NewWriteFileTool(nil, ws, newTestConfig()) })
	assert.Panics(t, func() { NewWriteFileTool(fs.NewOSFileSystem(), nil, newTestConfig()) })
	assert.Panics(t, func() { NewWriteFileTool(fs.NewOSFileSystem(), ws, nil) })
}
