package directory

import "os"

// workspaceProvider yields the active workspace root.
type workspaceProvider interface {
	Current() (string, error)
}

// fileSystem defines the minimal filesystem operations needed for directory listing.
type fileSystem interface {
	Lstat(path string) (os.FileInfo, error)
	Readlink(path string) (string, error)
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.FileInfo, error)
	ReadFile(path string, limit int64) ([]byte, bool, error)
}

// ignoreMatcher decides whether a workspace-relative path is gitignored.
type ignoreMatcher interface {
	LoadDir(relDir string) error
	ShouldIgnore(relativePath string, isDir bool) bool
}
