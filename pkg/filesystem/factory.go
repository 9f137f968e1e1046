package filesystem

import (
	"fmt"
)

// CreateFileSystem creates a FileSystem for the given path.
// Returns (filesystem, basePath, closer, error).
// - filesystem: The FileSystem to use for operations
// - basePath: The actual path to use with the filesystem (stripped of URL prefix)
// - closer: A function to call when done (closes SFTP connections), never nil
func CreateFileSystem(pathStr string, opts ConnectOptions) (FileSystem, string, func(), error) {
	parsed, err := ParsePath(pathStr)
	if err != nil {
		return nil, "", nil, err
	}

	if !parsed.IsRemote {
		return NewRealFileSystem(), parsed.LocalPath, func() {}, nil
	}

	conn, err := Connect(parsed.Host, parsed.Port, parsed.User, opts)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to connect to %s@%s:%d: %w",
			parsed.User, parsed.Host, parsed.Port, err)
	}

	fs := NewSFTPFileSystem(conn)
	closer := func() {
		_ = fs.Close()
	}

	return fs, parsed.Path, closer, nil
}

// CreateFileSystemPair creates filesystems for the scene file being saved and
// the folder it is saved into.
// Returns (sceneFS, folderFS, scenePath, folderPath, closer, error).
// The closer function should be called when done to clean up any connections.
func CreateFileSystemPair(scene, folder string, opts ConnectOptions) (
	sceneFS FileSystem,
	folderFS FileSystem,
	scenePath string,
	folderPath string,
	closer func(),
	err error,
) {
	var sceneCloser, folderCloser func()

	sceneFS, scenePath, sceneCloser, err = CreateFileSystem(scene, opts)
	if err != nil {
		return nil, nil, "", "", nil, fmt.Errorf("failed to create scene filesystem: %w", err)
	}

	folderFS, folderPath, folderCloser, err = CreateFileSystem(folder, opts)
	if err != nil {
		// Clean up the scene side if the folder side fails
		sceneCloser()
		return nil, nil, "", "", nil, fmt.Errorf("failed to create folder filesystem: %w", err)
	}

	closer = func() {
		sceneCloser()
		folderCloser()
	}

	return sceneFS, folderFS, scenePath, folderPath, closer, nil
}
