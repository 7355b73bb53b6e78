package workspace

import (
	"errors"
	"io/fs"
	"os"
	"sort"
)

// dirLister defines the minimal filesystem interface needed for the registry.
type dirLister interface {
	ListDir(path string) ([]os.FileInfo, error)
}

// Registry enumerates workspaces under the projects base.
// It does not depend on any active workspace.
type Registry struct {
	base string
	fs   dirLister
}

// NewRegistry creates a registry over base.
func NewRegistry(base string, fs dirLister) *Registry {
	if fs == nil {
		panic("fs is required")
	}
	return &Registry{base: base, fs: fs}
}

// List returns the sorted names of the directories directly under the base.
// Files and symlinks are skipped. A missing base yields an empty list.
func (r *Registry) List() ([]string, error) {
	infos, err := r.fs.ListDir(r.base)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, &ListError{Base: r.base, Cause: err}
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			names = append(names, info.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
