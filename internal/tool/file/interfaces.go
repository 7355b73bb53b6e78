package file

import "os"

// workspaceProvider yields the active workspace root.
type workspaceProvider interface {
	Current() (string, error)
}

// fileReader defines the minimal filesystem operations needed for reading files.
type fileReader interface {
	Lstat(path string) (os.FileInfo, error)
	Readlink(path string) (string, error)
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string, limit int64) ([]byte, bool, error)
}

// fileWriter defines the minimal filesystem operations needed for writing files.
type fileWriter interface {
	Lstat(path string) (os.FileInfo, error)
	Readlink(path string) (string, error)
	Stat(path string) (os.FileInfo, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	EnsureDirs(path string) error
}
