package fs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriteSyncCloser struct {
	buffer      *bytes.Buffer
	name        string
	writeErr    error
	syncErr     error
	closeErr    error
	syncCalled  bool
	closeCalled bool
}

func newMockWriteSyncCloser(name string) *mockWriteSyncCloser {
	return &mockWriteSyncCloser{buffer: new(bytes.Buffer), name: name}
}

func (m *mockWriteSyncCloser) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	return m.buffer.Write(p)
}

func (m *mockWriteSyncCloser) Sync() error {
	m.syncCalled = true
	return m.syncErr
}

func (m *mockWriteSyncCloser) Close() error {
	m.closeCalled = true
	return m.closeErr
}

func (m *mockWriteSyncCloser) Name() string { return m.name }

func TestWriteFileAtomicFailures(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(fs *OSFileSystem, f *mockWriteSyncCloser)
		wantErr       any
		wantCleanedUp bool
	}{
		{
			name: "write failure",
			setup: func(_ *OSFileSystem, f *mockWriteSyncCloser) {
				f.writeErr = errors.New("write failed")
			},
			wantErr:       &TempWriteError{},
			wantCleanedUp: true,
		},
		{
			name: "sync failure",
			setup: func(_ *OSFileSystem, f *mockWriteSyncCloser) {
				f.syncErr = errors.New("sync failed")
			},
			wantErr:       &TempSyncError{},
			wantCleanedUp: true,
		},
		{
			name: "close failure",
			setup: func(_ *OSFileSystem, f *mockWriteSyncCloser) {
				f.closeErr = errors.New("close failed")
			},
			wantErr:       &TempCloseError{},
			wantCleanedUp: true,
		},
		{
			name: "rename failure",
			setup: func(fs *OSFileSystem, _ *mockWriteSyncCloser) {
				fs.rename = func(string, string) error { return errors.New("rename failed") }
			},
			wantErr:       &RenameError{},
			wantCleanedUp: true,
		},
		{
			name: "chmod failure leaves renamed file",
			setup: func(fs *OSFileSystem, _ *mockWriteSyncCloser) {
				fs.chmod = func(string, os.FileMode) error { return errors.New("chmod failed") }
			},
			wantErr:       &ChmodError{},
			wantCleanedUp: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewOSFileSystem()
			mockFile := newMockWriteSyncCloser("/tmp/.tmp-123")
			removed := false

			fs.createTemp = func(string, string) (writeSyncCloser, error) { return mockFile, nil }
			fs.rename = func(string, string) error { return nil }
			fs.chmod = func(string, os.FileMode) error { return nil }
			fs.remove = func(name string) error {
				if name == mockFile.name {
					removed = true
				}
				return nil
			}
			tt.setup(fs, mockFile)

			err := fs.WriteFileAtomic("/test/file.txt", []byte("content"), 0o644)
			require.Error(t, err)
			assert.IsType(t, tt.wantErr, err)
			assert.Equal(t, tt.wantCleanedUp, removed)
		})
	}
}

func TestWriteFileAtomicCreateTempFailure(t *testing.T) {
	fs := NewOSFileSystem()
	fs.createTemp = func(string, string) (writeSyncCloser, error) {
		return nil, errors.New("disk full")
	}

	err := fs.WriteFileAtomic("/test/file.txt", []byte("content"), 0o644)

	var tfe *TempFileError
	require.ErrorAs(t, err, &tfe)
	assert.Equal(t, "/test", tfe.Dir)
}

func TestWriteFileAtomicSuccess(t *testing.T) {
	fs := NewOSFileSystem()
	mockFile := newMockWriteSyncCloser("/test/.tmp-ok")
	var renamedTo string
	var chmodMode os.FileMode

	fs.createTemp = func(dir, pattern string) (writeSyncCloser, error) {
		assert.Equal(t, "/test", dir)
		return mockFile, nil
	}
	fs.rename = func(oldpath, newpath string) error {
		assert.Equal(t, mockFile.name, oldpath)
		renamedTo = newpath
		return nil
	}
	fs.chmod = func(_ string, mode os.FileMode) error {
		chmodMode = mode
		return nil
	}
	fs.remove = func(string) error {
		t.Error("remove should not be called on success")
		return nil
	}

	require.NoError(t, fs.WriteFileAtomic("/test/file.txt", []byte("content"), 0o644))
	assert.True(t, mockFile.syncCalled)
	assert.True(t, mockFile.closeCalled)
	assert.Equal(t, "/test/file.txt", renamedTo)
	assert.Equal(t, os.FileMode(0o644), chmodMode)
	assert.Equal(t, "content", mockFile.buffer.String())
}

func TestWriteFileAtomicOnDisk(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")
	fs := NewOSFileSystem()

	require.NoError(t, fs.WriteFileAtomic(target, []byte("first"), 0o644))
	require.NoError(t, fs.WriteFileAtomic(target, []byte(""), 0o644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Empty(t, data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not linger")
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))
	fs := NewOSFileSystem()

	tests := []struct {
		name          string
		limit         int64
		wantContent   string
		wantTruncated bool
	}{
		{"unlimited", 0, "0123456789", false},
		{"limit above size", 100, "0123456789", false},
		{"limit equals size", 10, "0123456789", false},
		{"limit below size", 4, "0123", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, truncated, err := fs.ReadFile(path, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantContent, string(content))
			assert.Equal(t, tt.wantTruncated, truncated)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, _, err := fs.ReadFile(filepath.Join(dir, "nope"), 0)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "link")))

	infos, err := NewOSFileSystem().ListDir(dir)
	require.NoError(t, err)

	modes := make(map[string]os.FileMode)
	var names []string
	for _, info := range infos {
		names = append(names, info.Name())
		modes[info.Name()] = info.Mode()
	}
	sort.Strings(names)
	assert.Equal(t, []string{"a.txt", "link", "sub"}, names)
	assert.True(t, modes["sub"].IsDir())
	assert.NotZero(t, modes["link"]&os.ModeSymlink, "symlinks are reported, not followed")
}
