package filesystem

import (
	"fmt"
)

// Lister adapts a FileSystem to the scene resolver's directory lister.
type Lister struct {
	FS FileSystem
}

// NewLister creates a Lister reading through fs.
func NewLister(fs FileSystem) *Lister {
	return &Lister{FS: fs}
}

// ListNames returns the names of the regular files directly inside folder.
// An empty folder means the current directory.
func (l *Lister) ListNames(folder string) ([]string, error) {
	if folder == "" {
		folder = "."
	}

	scanner := l.FS.List(folder)

	var names []string
	for info, ok := scanner.Next(); ok; info, ok = scanner.Next() {
		if info.IsDir {
			continue
		}

		names = append(names, info.Name)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to list names in %s: %w", folder, err)
	}

	return names, nil
}
