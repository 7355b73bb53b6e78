package file

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"unicode/utf8"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/Cyclone1070/workbench/internal/tool/service/path"
)

// ReadFileTool handles file reading operations.
type ReadFileTool struct {
	fileOps   fileReader
	workspace workspaceProvider
	config    *config.Config
}

// NewReadFileTool creates a new ReadFileTool with injected dependencies.
func NewReadFileTool(fileOps fileReader, workspace workspaceProvider, cfg *config.Config) *ReadFileTool {
	if fileOps == nil {
		panic("fileOps is required")
	}
	if workspace == nil {
		panic("workspace is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &ReadFileTool{
		fileOps:   fileOps,
		workspace: workspace,
		config:    cfg,
	}
}

// Run reads a whole file from the active workspace.
// A missing file is not an error: the response has Exists=false and empty Content.
// Directories and files above tools.max_file_size yield a *ReadError.
// Content that is not valid UTF-8 is returned base64-encoded.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *ReadFileTool) Run(ctx context.Context, req *ReadFileRequest) (*ReadFileResponse, error) {
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

	info, err := t.fileOps.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ReadFileResponse{Exists: false, AbsolutePath: abs, RelativePath: rel}, nil
		}
		return nil, &ReadError{Path: abs, Cause: err}
	}
	if info.IsDir() {
		return nil, &ReadError{Path: abs, Cause: ErrIsDirectory}
	}

	maxFileSize := t.config.Tools.MaxFileSize
	if info.Size() > maxFileSize {
		return nil, &ReadError{Path: abs, Cause: fmt.Errorf("%w: size %d, limit %d", ErrFileTooLarge, info.Size(), maxFileSize)}
	}

	content, truncated, err := t.fileOps.ReadFile(abs, maxFileSize)
	if err != nil {
		return nil, &ReadError{Path: abs, Cause: err}
	}
	// grew between stat and read
	if truncated {
		return nil, &ReadError{Path: abs, Cause: fmt.Errorf("%w: limit %d", ErrFileTooLarge, maxFileSize)}
	}

	resp := &ReadFileResponse{
		Exists:       true,
		Content:      string(content),
		Encoding:     EncodingText,
		AbsolutePath: abs,
		RelativePath: rel,
		Size:         int64(len(content)),
	}
	if !utf8.Valid(content) {
		resp.Content = base64.StdEncoding.EncodeToString(content)
		resp.Encoding = EncodingBase64
	}
	return resp, nil
}
