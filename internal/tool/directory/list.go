package directory

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Cyclone1070/workbench/internal/config"
	fssvc "github.com/Cyclone1070/workbench/internal/tool/service/fs"
	"github.com/Cyclone1070/workbench/internal/tool/service/git"
	pathsvc "github.com/Cyclone1070/workbench/internal/tool/service/path"
	"github.com/sirupsen/logrus"
)

const gitDir = ".git"

// ListDirectoryTool handles directory listing operations.
type ListDirectoryTool struct {
	fs        fileSystem
	workspace workspaceProvider
	config    *config.Config
}

// NewListDirectoryTool creates a new ListDirectoryTool with injected dependencies.
func NewListDirectoryTool(fs fileSystem, workspace workspaceProvider, cfg *config.Config) *ListDirectoryTool {
	if fs == nil {
		panic("fs is required")
	}
	if workspace == nil {
		panic("workspace is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	return &ListDirectoryTool{
		fs:        fs,
		workspace: workspace,
		config:    cfg,
	}
}

// walker carries the state of one listing.
type walker struct {
	root       string
	resolver   *pathsvc.Resolver
	matcher    ignoreMatcher
	maxResults int
	files      []string
	truncated  bool
}

// Run lists every regular file below the requested directory, recursively.
//
// Paths are relative to the workspace root, not to the listed directory.
// Directory symlinks are never followed. A file symlink is listed under its
// own name only when it resolves to a regular file inside the workspace.
// When ExcludeIgnored is set, .gitignore files (root and nested) and the
// .git directory are honoured.
func (t *ListDirectoryTool) Run(ctx context.Context, req *ListDirectoryRequest) (*ListDirectoryResponse, error) {
	dir := req.Path
	if dir == "" {
		dir = "."
	}

	root, err := t.workspace.Current()
	if err != nil {
		return nil, err
	}
	resolver := pathsvc.NewResolver(root, t.fs)
	abs, rel, err := resolver.Resolve(dir)
	if err != nil {
		return nil, err
	}

	info, err := t.fs.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotADirectoryError{Path: dir}
		}
		return nil, &ListDirError{Path: dir, Cause: err}
	}
	if !info.IsDir() {
		return nil, &NotADirectoryError{Path: dir}
	}

	w := &walker{
		root:       root,
		resolver:   resolver,
		maxResults: t.config.Tools.MaxListResults,
		files:      []string{},
	}
	if req.ExcludeIgnored {
		matcher, err := git.NewIgnoreMatcher(root, t.fs)
		if err != nil {
			return nil, err
		}
		// Directories between the root and the listed one contribute patterns too.
		for _, parent := range ancestors(rel) {
			if err := matcher.LoadDir(parent); err != nil {
				return nil, err
			}
		}
		w.matcher = matcher
	}

	if err := t.walk(ctx, w, abs, rel); err != nil {
		return nil, err
	}

	sort.Strings(w.files)
	logrus.WithField("dir", rel).Debugf("listed %d files (truncated=%t)", len(w.files), w.truncated)

	return &ListDirectoryResponse{
		DirectoryPath: rel,
		Files:         w.files,
		Truncated:     w.truncated,
	}, nil
}

func (t *ListDirectoryTool) walk(ctx context.Context, w *walker, dirAbs, dirRel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := t.fs.ListDir(dirAbs)
	if err != nil {
		return &ListDirError{Path: dirAbs, Cause: err}
	}

	for _, entry := range entries {
		if w.truncated {
			return nil
		}

		entryAbs := filepath.Join(dirAbs, entry.Name())
		entryRel := path.Join(dirRel, entry.Name())
		mode := entry.Mode()

		if w.matcher != nil {
			if mode.IsDir() && entry.Name() == gitDir {
				continue
			}
			if w.matcher.ShouldIgnore(entryRel, mode.IsDir()) {
				continue
			}
		}

		switch {
		case mode.IsDir():
			if w.matcher != nil {
				if err := w.matcher.LoadDir(entryRel); err != nil {
					return err
				}
			}
			if err := t.walk(ctx, w, entryAbs, entryRel); err != nil {
				return err
			}
		case mode.IsRegular():
			// Temp files of writes still in flight.
			if strings.HasPrefix(entry.Name(), fssvc.TempFilePrefix) {
				continue
			}
			w.add(entryRel)
		case mode&os.ModeSymlink != 0:
			if t.isContainedRegularFile(w, entryAbs) {
				w.add(entryRel)
			}
		}
	}
	return nil
}

func (t *ListDirectoryTool) isContainedRegularFile(w *walker, linkAbs string) bool {
	target, _, err := w.resolver.Resolve(linkAbs)
	if err != nil {
		return false
	}
	info, err := t.fs.Stat(target)
	return err == nil && info.Mode().IsRegular()
}

func (w *walker) add(rel string) {
	if len(w.files) >= w.maxResults {
		w.truncated = true
		return
	}
	w.files = append(w.files, rel)
}

// ancestors returns the directories from just below the root down to and
// including rel, outermost first. The root is loaded by the matcher constructor.
func ancestors(rel string) []string {
	if rel == "" {
		return nil
	}
	dirs := []string{rel}
	for d := path.Dir(rel); d != "."; d = path.Dir(d) {
		dirs = append([]string{d}, dirs...)
	}
	return dirs
}
