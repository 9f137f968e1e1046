package filesystem

import (
	"fmt"

	"github.com/kr/fs"
)

// newRealFileScanner creates a scanner over the direct children of root.
func newRealFileScanner(root string) *sliceScanner {
	return newSliceScanner(func() ([]FileInfo, error) {
		return listLocal(root)
	})
}

// listLocal walks root one level deep, skipping every subdirectory it meets.
func listLocal(root string) ([]FileInfo, error) {
	files := make([]FileInfo, 0)
	walker := fs.Walk(root)
	first := true

	for walker.Step() {
		if err := walker.Err(); err != nil { //nolint:noinlineerr // Inline error check is idiomatic for walker error handling
			return nil, fmt.Errorf("failed to list %s: %w", root, err)
		}

		stat := walker.Stat()

		// The walker visits the root itself first
		if first {
			first = false
			if !stat.IsDir() {
				return nil, fmt.Errorf("failed to list %s: %w", root, ErrNotDirectory)
			}

			continue
		}

		files = append(files, FileInfo{
			Name:    stat.Name(),
			Size:    stat.Size(),
			ModTime: stat.ModTime(),
			IsDir:   stat.IsDir(),
		})

		if stat.IsDir() {
			walker.SkipDir()
		}
	}

	return files, nil
}
