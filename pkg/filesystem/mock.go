package filesystem

import (
	"bytes"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory filesystem implementation for testing.
//
// Unlike the helpers AddFile and AddDir, Create behaves like the real
// filesystem and fails when the parent directory is missing.
type MockFileSystem struct {
	mu         sync.RWMutex
	files      map[string]*mockFile
	listErrors map[string]error
	lists      int
}

// mockFile represents a file in the mock filesystem.
type mockFile struct {
	path    string
	data    []byte
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

// mockFileInfo implements os.FileInfo for mock files.
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.perm }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

// mockFileHandle implements the File interface for reading/writing.
type mockFileHandle struct {
	fs     *MockFileSystem
	path   string
	reader *bytes.Reader
	writer *bytes.Buffer
	closed bool
}

func (f *mockFileHandle) Read(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if f.reader == nil {
		return 0, io.EOF
	}
	return f.reader.Read(p)
}

func (f *mockFileHandle) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if f.writer == nil {
		return 0, fmt.Errorf("write %s: file opened read-only", f.path)
	}
	return f.writer.Write(p)
}

func (f *mockFileHandle) Close() error {
	if f.closed {
		return os.ErrClosed
	}
	f.closed = true

	// Commit written data
	if f.writer != nil {
		f.fs.mu.Lock()
		defer f.fs.mu.Unlock()

		if file, exists := f.fs.files[f.path]; exists {
			file.data = f.writer.Bytes()
			file.modTime = time.Now()
		}
	}

	return nil
}

func (f *mockFileHandle) Stat() (os.FileInfo, error) {
	if f.closed {
		return nil, os.ErrClosed
	}

	return f.fs.Stat(f.path)
}

// NewMockFileSystem creates a new in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string]*mockFile),
		listErrors: make(map[string]error),
	}
}

// Create creates or truncates a file for writing. The parent directory must exist.
func (fs *MockFileSystem) Create(path string) (File, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	path = filepath.Clean(path)
	if dir := filepath.Dir(path); !fs.isDirLocked(dir) {
		return nil, &iofs.PathError{Op: "create", Path: path, Err: iofs.ErrNotExist}
	}

	if existing, ok := fs.files[path]; ok && existing.isDir {
		return nil, &iofs.PathError{Op: "create", Path: path, Err: ErrIsDirectory}
	}

	fs.files[path] = &mockFile{
		path:    path,
		data:    []byte{},
		modTime: time.Now(),
		isDir:   false,
		perm:    0o644,
	}

	return &mockFileHandle{
		fs:     fs,
		path:   path,
		writer: &bytes.Buffer{},
	}, nil
}

// List returns an iterator over the direct children of path, sorted by name.
func (fs *MockFileSystem) List(path string) FileScanner {
	return newSliceScanner(func() ([]FileInfo, error) {
		return fs.list(filepath.Clean(path))
	})
}

// MkdirAll creates a directory and all necessary parents.
func (fs *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.mkdirAllLocked(filepath.Clean(path), perm)
}

// Open opens a file for reading.
func (fs *MockFileSystem) Open(path string) (File, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	path = filepath.Clean(path)

	file, exists := fs.files[path]
	if !exists {
		return nil, &iofs.PathError{Op: "open", Path: path, Err: iofs.ErrNotExist}
	}

	if file.isDir {
		return nil, &iofs.PathError{Op: "open", Path: path, Err: ErrIsDirectory}
	}

	return &mockFileHandle{
		fs:     fs,
		path:   path,
		reader: bytes.NewReader(file.data),
	}, nil
}

// Remove removes a file or empty directory.
func (fs *MockFileSystem) Remove(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	path = filepath.Clean(path)

	file, exists := fs.files[path]
	if !exists {
		return &iofs.PathError{Op: "remove", Path: path, Err: iofs.ErrNotExist}
	}

	if file.isDir {
		for p := range fs.files {
			if strings.HasPrefix(p, path+"/") {
				return &iofs.PathError{Op: "remove", Path: path, Err: fmt.Errorf("directory not empty")} //nolint:err113 // Mirrors the OS message
			}
		}
	}

	delete(fs.files, path)

	return nil
}

// Stat returns file information.
func (fs *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	path = filepath.Clean(path)

	file, exists := fs.files[path]
	if !exists {
		return nil, &iofs.PathError{Op: "stat", Path: path, Err: iofs.ErrNotExist}
	}

	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(file.data)),
		modTime: file.modTime,
		isDir:   file.isDir,
		perm:    file.perm,
	}, nil
}

// Helper methods for testing

// AddDir adds a directory (and its parents) to the mock filesystem.
func (fs *MockFileSystem) AddDir(path string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	_ = fs.mkdirAllLocked(filepath.Clean(path), 0o755)
}

// AddFile adds a file to the mock filesystem, creating parent directories.
func (fs *MockFileSystem) AddFile(path string, content []byte) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	path = filepath.Clean(path)
	_ = fs.mkdirAllLocked(filepath.Dir(path), 0o755)

	fs.files[path] = &mockFile{
		path:    path,
		data:    append([]byte(nil), content...),
		modTime: time.Now(),
		isDir:   false,
		perm:    0o644,
	}
}

// Exists checks if a path exists in the mock filesystem.
func (fs *MockFileSystem) Exists(path string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, exists := fs.files[filepath.Clean(path)]

	return exists
}

// GetFile retrieves a file's content from the mock filesystem.
func (fs *MockFileSystem) GetFile(path string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	file, exists := fs.files[filepath.Clean(path)]
	if !exists {
		return nil, os.ErrNotExist
	}

	if file.isDir {
		return nil, ErrIsDirectory
	}

	return append([]byte(nil), file.data...), nil
}

// ListCount returns how many times List has been read.
func (fs *MockFileSystem) ListCount() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.lists
}

// ListFiles returns all paths in the mock filesystem.
func (fs *MockFileSystem) ListFiles() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	paths := make([]string, 0, len(fs.files))
	for p := range fs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths
}

// SetListError makes every listing of path fail with err.
func (fs *MockFileSystem) SetListError(path string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.listErrors[filepath.Clean(path)] = err
}

// isDirLocked reports whether path is an existing directory. "." and "/"
// always exist.
func (fs *MockFileSystem) isDirLocked(path string) bool {
	if path == "." || path == "/" {
		return true
	}

	file, ok := fs.files[path]

	return ok && file.isDir
}

func (fs *MockFileSystem) list(path string) ([]FileInfo, error) {
	fs.mu.Lock()
	fs.lists++
	fs.mu.Unlock()

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err, ok := fs.listErrors[path]; ok {
		return nil, err
	}

	if _, exists := fs.files[path]; !exists && path != "." && path != "/" {
		return nil, &iofs.PathError{Op: "open", Path: path, Err: iofs.ErrNotExist}
	}

	if !fs.isDirLocked(path) {
		return nil, &iofs.PathError{Op: "open", Path: path, Err: ErrNotDirectory}
	}

	files := make([]FileInfo, 0)
	for p, file := range fs.files {
		if p == path || filepath.Dir(p) != path {
			continue
		}

		files = append(files, FileInfo{
			Name:    filepath.Base(p),
			Size:    int64(len(file.data)),
			ModTime: file.modTime,
			IsDir:   file.isDir,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// mkdirAllLocked is the internal implementation that assumes the lock is held.
func (fs *MockFileSystem) mkdirAllLocked(path string, perm os.FileMode) error {
	if path == "." || path == "/" {
		return nil
	}

	if existing, exists := fs.files[path]; exists {
		if !existing.isDir {
			return &iofs.PathError{Op: "mkdir", Path: path, Err: ErrNotDirectory}
		}

		return nil
	}

	if err := fs.mkdirAllLocked(filepath.Dir(path), perm); err != nil {
		return err
	}

	fs.files[path] = &mockFile{
		path:    path,
		modTime: time.Now(),
		isDir:   true,
		perm:    perm,
	}

	return nil
}
