package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const (
	gitignoreFile = ".gitignore"
	commentPrefix = "#"
	// maxGitignoreSize caps how much of a single .gitignore is parsed.
	maxGitignoreSize = 1 << 20
)

// GitignoreReadError is returned when .gitignore cannot be read.
type GitignoreReadError struct {
	Path  string
	Cause error
}

func (e *GitignoreReadError) Error() string {
	return fmt.Sprintf("failed to read .gitignore at %s: %v", e.Path, e.Cause)
}
func (e *GitignoreReadError) Unwrap() error { return e.Cause }

// fileSystem defines the minimal filesystem interface needed for gitignore matching.
type fileSystem interface {
	Lstat(path string) (os.FileInfo, error)
	ReadFile(path string, limit int64) ([]byte, bool, error)
}

// IgnoreMatcher implements gitignore pattern matching using go-git's gitignore matcher.
// Patterns from nested .gitignore files are scoped to their directory, so the
// matcher is built up with LoadDir as a walk descends.
type IgnoreMatcher struct {
	workspaceRoot string
	fs            fileSystem
	patterns      []gitignore.Pattern
	matcher       gitignore.Matcher
}

// NewIgnoreMatcher creates a gitignore matcher seeded with the workspace root's .gitignore.
// A missing .gitignore yields a matcher that ignores nothing.
func NewIgnoreMatcher(workspaceRoot string, fs fileSystem) (*IgnoreMatcher, error) {
	if workspaceRoot == "" {
		panic("workspaceRoot is required")
	}
	if fs == nil {
		panic("fs is required")
	}

	m := &IgnoreMatcher{workspaceRoot: workspaceRoot, fs: fs}
	if err := m.LoadDir(""); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadDir adds the patterns of the .gitignore in relDir, a slash-separated
// directory relative to the workspace root ("" for the root).
// Only regular files are read; a symlinked .gitignore is skipped.
func (m *IgnoreMatcher) LoadDir(relDir string) error {
	path := filepath.Join(m.workspaceRoot, filepath.FromSlash(relDir), gitignoreFile)

	info, err := m.fs.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}

	data, _, err := m.fs.ReadFile(path, maxGitignoreSize)
	if err != nil {
		return &GitignoreReadError{Path: path, Cause: err}
	}

	domain := splitPath(relDir)
	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
	}
	// A file that cannot be scanned to the end contributes no patterns.
	if err := scanner.Err(); err != nil {
		return &GitignoreReadError{Path: path, Cause: err}
	}
	if len(patterns) > 0 {
		m.patterns = append(m.patterns, patterns...)
		m.matcher = gitignore.NewMatcher(m.patterns)
	}
	return nil
}

// ShouldIgnore checks if a relative path matches any loaded gitignore pattern.
func (m *IgnoreMatcher) ShouldIgnore(relativePath string, isDir bool) bool {
	if m.matcher == nil {
		return false
	}
	return m.matcher.Match(splitPath(relativePath), isDir)
}

// splitPath splits a path into segments, dropping empty and "." segments.
func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
