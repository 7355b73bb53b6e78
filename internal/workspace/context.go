package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Cyclone1070/workbench/internal/tool/service/path"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/sirupsen/logrus"
)

// Context holds the active workspace root for one session.
// Tool calls read the root through Current on every invocation, so a switch
// takes effect for the next call. It is safe for concurrent use.
type Context struct {
	base          string
	maxNameLength int

	mu   sync.RWMutex
	root string
}

// NewContext creates a context with no active workspace.
// base is the projects base directory; it is created on first Initialize.
func NewContext(base string, maxNameLength int) *Context {
	if base == "" {
		panic("base is required")
	}
	return &Context{base: base, maxNameLength: maxNameLength}
}

// Initialize sanitises name, creates the workspace directory under the
// projects base if needed and makes it active. Initializing an existing
// workspace keeps its contents. On failure the active root is unchanged.
func (c *Context) Initialize(name string) (string, error) {
	root, err := c.establish(name, true)
	if err != nil {
		return "", err
	}
	c.setRoot(root)
	logrus.WithField("root", root).Info("workspace initialized")
	return root, nil
}

// Switch makes an existing workspace active without creating anything.
func (c *Context) Switch(name string) (string, error) {
	root, err := c.establish(name, false)
	if err != nil {
		return "", err
	}
	c.setRoot(root)
	logrus.WithField("root", root).Info("switched workspace")
	return root, nil
}

// Current returns the active workspace root.
func (c *Context) Current() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.root == "" {
		return "", ErrNotInitialized
	}
	return c.root, nil
}

// IsInitialized reports whether a workspace is active.
func (c *Context) IsInitialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.root != ""
}

// Name returns the directory name of the active workspace, or "" if none.
func (c *Context) Name() string {
	root, err := c.Current()
	if err != nil {
		return ""
	}
	return filepath.Base(root)
}

// Base returns the projects base as configured.
func (c *Context) Base() string {
	return c.base
}

func (c *Context) setRoot(root string) {
	c.mu.Lock()
	c.root = root
	c.mu.Unlock()
}

func (c *Context) establish(name string, create bool) (string, error) {
	safe := SanitizeName(name, c.maxNameLength)
	fail := func(p string, cause error) (string, error) {
		logrus.WithError(cause).WithField("workspace", safe).Warn("workspace not established")
		return "", &CreationError{Name: safe, Path: p, Cause: cause}
	}

	if create {
		if err := os.MkdirAll(c.base, 0o755); err != nil {
			return fail(c.base, err)
		}
	}
	base, err := path.CanonicaliseRoot(c.base)
	if err != nil {
		if !create && errors.Is(err, fs.ErrNotExist) {
			return fail(c.base, ErrWorkspaceNotFound)
		}
		return fail(c.base, err)
	}

	candidate, err := securejoin.SecureJoin(base, safe)
	if err != nil {
		return fail(filepath.Join(base, safe), err)
	}
	// A symlinked name resolves somewhere else under base.
	if filepath.Dir(candidate) != base {
		return fail(candidate, ErrNotDirectChild)
	}

	if create {
		if err := os.MkdirAll(candidate, 0o755); err != nil {
			return fail(candidate, err)
		}
	} else if info, err := os.Stat(candidate); err != nil || !info.IsDir() {
		return fail(candidate, ErrWorkspaceNotFound)
	}

	root, err := path.CanonicaliseRoot(candidate)
	if err != nil {
		return fail(candidate, err)
	}
	if filepath.Dir(root) != base {
		return fail(root, ErrNotDirectChild)
	}
	return root, nil
}
