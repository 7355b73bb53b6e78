package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/service/path"
	"github.com/sirupsen/logrus"
)

const defaultFilePerm os.FileMode = 0o644

// WriteFileTool handles file writing operations.
type WriteFileTool struct {
	fileOps   fileWriter
	workspace workspaceProvider
	config    *config.Config
}

// NewWriteFileTool creates a new WriteFileTool with injected dependencies.
func NewWriteFileTool(fileOps fileWriter, workspace workspaceProvider, cfg *config.Config) *WriteFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if workspace == nil {
		panic("workspace is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &WriteFileTool{
		fileOps:   fileOps,
		workspace: workspace,
		config:    cfg,
	}
}

// Run writes a file in the active workspace, creating parent directories and
// replacing any existing file. The write is atomic: readers see either the old
// or the new content.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *WriteFileTool) Run(ctx context.Context, req *WriteFileRequest) (*WriteFileResponse, error) {
	if err := req.Validate(t.config); err != nil {
		return nil, err
	}

	root, err := t.workspace.Current()
	if err != nil {
		return nil, err
	}
	abs, rel, err := path.NewResolver(root, t.fileOps).Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	// New files get defaultFilePerm; an overwrite keeps the existing mode.
	perm := defaultFilePerm
	info, err := t.fileOps.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, abs)
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return nil, &StatError{Path: abs, Cause: err}
	}

	parentDir := filepath.Dir(abs)
	if err := t.fileOps.EnsureDirs(parentDir); err != nil {
		return nil, &EnsureDirsError{Path: parentDir, Cause: err}
	}

	contentBytes, err := req.bytes()
	if err != nil {
		return nil, err
	}
	if err := t.fileOps.WriteFileAtomic(abs, contentBytes, perm); err != nil {
		return nil, &WriteError{Path: abs, Cause: err}
	}
	logrus.WithField("path", rel).Debugf("wrote %d bytes", len(contentBytes))

	return &WriteFileResponse{
		AbsolutePath: abs,
		RelativePath: rel,
		BytesWritten: len(contentBytes),
	}, nil
}
