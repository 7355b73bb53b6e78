package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	ConfigDir  = "workbench"
	ConfigFile = "config.json"
)

// Source supplies the home directory and the bytes of the config file.
type Source interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

type osSource struct{}

func (osSource) UserHomeDir() (string, error)         { return os.UserHomeDir() }
func (osSource) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// LoadError names the config file that could not be read, parsed or validated.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }

// Loader reads the workspace, tools and log sections over DefaultConfig.
type Loader struct {
	src Source
}

func NewLoader() *Loader {
	return NewLoaderFrom(osSource{})
}

func NewLoaderFrom(src Source) *Loader {
	if src == nil {
		panic("src is required")
	}
	return &Loader{src: src}
}

// Path is ~/.config/workbench/config.json, or "" without a home directory.
func (l *Loader) Path() string {
	home, err := l.src.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", ConfigDir, ConfigFile)
}

// Load decodes the config file on top of DefaultConfig, so any key present
// in the file wins, including an explicit zero. A missing file or an unknown
// home directory yields the defaults unchanged.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	path := l.Path()
	if path == "" {
		return cfg, nil
	}

	data, err := l.src.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return cfg, nil
	case err != nil:
		return nil, &LoadError{Path: path, Cause: err}
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}
	return cfg, nil
}

// Load reads the config of the current user.
func Load() (*Config, error) {
	return NewLoader().Load()
}
