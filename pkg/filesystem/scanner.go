package filesystem

import (
	"time"
)

// FileScanner is an iterator over the entries of a directory.
// It provides a simple Next pattern for traversing directory contents.
type FileScanner interface {
	// Next advances to the next entry and returns its info.
	// Returns (FileInfo{}, false) when done or on error.
	// Check Err() after Next() returns false to distinguish between end-of-scan and error.
	Next() (FileInfo, bool)

	// Err returns any error that occurred during scanning.
	// Should be checked after Next() returns false.
	Err() error
}

// FileInfo contains metadata about a directory entry.
// This is our own type (not os.FileInfo) to make it easier to work with.
type FileInfo struct {
	// Name is the base name of the entry
	Name string

	// Size is the file size in bytes
	Size int64

	// ModTime is the modification time
	ModTime time.Time

	// IsDir indicates if this is a directory
	IsDir bool
}

// sliceScanner iterates over entries collected up front by a load function.
type sliceScanner struct {
	load    func() ([]FileInfo, error)
	files   []FileInfo
	index   int
	err     error
	scanned bool
}

func newSliceScanner(load func() ([]FileInfo, error)) *sliceScanner {
	return &sliceScanner{load: load, index: -1}
}

// Err returns any error that occurred during scanning.
func (s *sliceScanner) Err() error {
	return s.err
}

// Next advances to the next entry and returns its info.
func (s *sliceScanner) Next() (FileInfo, bool) {
	// Load on first call
	if !s.scanned {
		s.files, s.err = s.load()
		s.scanned = true
	}

	if s.err != nil {
		return FileInfo{}, false
	}

	s.index++
	if s.index >= len(s.files) {
		return FileInfo{}, false
	}

	return s.files[s.index], true
}

// errScanner creates a scanner in an error state.
func errScanner(err error) *sliceScanner {
	return &sliceScanner{err: err, scanned: true, index: -1}
}
