package path

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// maxSymlinkHops bounds symlink expansion during a single resolution.
const maxSymlinkHops = 64

// fileSystem defines the minimal filesystem interface needed for path resolution.
type fileSystem interface {
	Lstat(path string) (os.FileInfo, error)
	Readlink(path string) (string, error)
}

// Resolver confines paths to a workspace boundary.
// It holds no cache: every call walks the filesystem again, so symlinks created
// between calls are always seen.
type Resolver struct {
	workspaceRoot string
	fs            fileSystem
}

// NewResolver creates a new path resolver for the given canonical workspace root.
func NewResolver(workspaceRoot string, fs fileSystem) *Resolver {
	if fs == nil {
		panic("fs is required")
	}
	return &Resolver{
		workspaceRoot: workspaceRoot,
		fs:            fs,
	}
}

// Root returns the workspace root the resolver confines to.
func (r *Resolver) Root() string {
	return r.workspaceRoot
}

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Resolve canonicalises candidate and proves it lies inside the workspace root.
// Relative candidates are taken relative to the root. Symlinks and ".." are
// resolved component by component, the way the kernel would, before the
// containment check runs. Missing trailing components are kept as-is so callers
// can create them.
//
// Returns the canonical absolute path and the slash-separated path relative to
// the root ("" for the root itself).
func (r *Resolver) Resolve(candidate string) (abs string, rel string, err error) {
	if r.workspaceRoot == "" {
		return "", "", ErrWorkspaceRootNotSet
	}
	root := filepath.Clean(r.workspaceRoot)

	start, remainder := root, candidate
	if filepath.IsAbs(candidate) {
		vol := filepath.VolumeName(candidate)
		start, remainder = vol+string(filepath.Separator), candidate[len(vol):]
	}

	resolved, err := r.walk(start, splitComponents(remainder))
	if err != nil {
		return "", "", err
	}

	if !Within(resolved, root) {
		logrus.WithFields(logrus.Fields{"root": root, "candidate": candidate, "resolved": resolved}).
			Warn("path resolves outside workspace")
		return "", "", &ConfinementError{Root: root, Path: resolved}
	}

	rel, err = filepath.Rel(root, resolved)
	if err != nil {
		return "", "", &ConfinementError{Root: root, Path: resolved}
	}
	if rel == "." {
		rel = ""
	}
	logrus.Debugf("resolved %q to %s", candidate, resolved)
	return resolved, filepath.ToSlash(rel), nil
}

// Abs resolves candidate and returns only the absolute path.
func (r *Resolver) Abs(candidate string) (string, error) {
	abs, _, err := r.Resolve(candidate)
	return abs, err
}

// walk expands pending components on top of current, which is always a
// symlink-free absolute path.
func (r *Resolver) walk(current string, pending []string) (string, error) {
	hops := 0
	for len(pending) > 0 {
		part := pending[0]
		pending = pending[1:]

		switch part {
		case "", ".":
			continue
		case "..":
			current = filepath.Dir(current)
			continue
		}

		next := filepath.Join(current, part)
		info, err := r.fs.Lstat(next)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				current = next
				continue
			}
			return "", &LstatError{Path: next, Cause: err}
		}

		if info.Mode()&os.ModeSymlink == 0 {
			current = next
			continue
		}

		hops++
		if hops > maxSymlinkHops {
			return "", &SymlinkLoopError{Path: next, MaxHops: maxSymlinkHops}
		}

		target, err := r.fs.Readlink(next)
		if err != nil {
			return "", &ReadlinkError{Path: next, Cause: err}
		}

		// Relative targets are interpreted from the link's directory, which is current.
		if filepath.IsAbs(target) {
			vol := filepath.VolumeName(target)
			current, target = vol+string(filepath.Separator), target[len(vol):]
		}
		pending = append(splitComponents(target), pending...)
	}
	return current, nil
}

// Within reports whether path equals root or is a descendant of it.
// Containment is decided on path components, never on a raw string prefix, so
// "/a/proj2" is not within "/a/proj".
func Within(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	if path == root {
		return true
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func splitComponents(p string) []string {
	return strings.Split(filepath.ToSlash(p), "/")
}
