package filesystem

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"sort"

	"github.com/pkg/sftp"
)

// SFTPFileSystem implements FileSystem for SFTP connections.
// A save touches the remote folder a handful of times, so one client is
// shared by every operation.
type SFTPFileSystem struct {
	conn   *SFTPConnection
	client *sftp.Client
}

// NewSFTPFileSystem creates a new SFTP filesystem using an established connection.
func NewSFTPFileSystem(conn *SFTPConnection) *SFTPFileSystem {
	return &SFTPFileSystem{
		conn:   conn,
		client: conn.Client(),
	}
}

// Close closes the underlying connection.
func (fs *SFTPFileSystem) Close() error {
	if fs.conn != nil {
		return fs.conn.Close()
	}

	return nil
}

// Create creates a remote file for writing.
func (fs *SFTPFileSystem) Create(path string) (File, error) {
	file, err := fs.client.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote file %s: %w", path, normalizeSFTPError(err))
	}

	return newSFTPFile(file, path), nil
}

// List returns an iterator over the direct children of a remote directory.
func (fs *SFTPFileSystem) List(path string) FileScanner {
	return newSliceScanner(func() ([]FileInfo, error) {
		entries, err := fs.client.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("error listing SFTP directory %s: %w", path, normalizeSFTPError(err))
		}

		files := make([]FileInfo, 0, len(entries))
		for _, entry := range entries {
			files = append(files, FileInfo{
				Name:    entry.Name(),
				Size:    entry.Size(),
				ModTime: entry.ModTime(),
				IsDir:   entry.IsDir(),
			})
		}

		sort.Slice(files, func(i, j int) bool {
			return files[i].Name < files[j].Name
		})

		return files, nil
	})
}

// MkdirAll creates a remote directory and all necessary parents.
func (fs *SFTPFileSystem) MkdirAll(path string, perm os.FileMode) error { //nolint:revive,lll // perm unused - SFTP uses server defaults, parameter required by FileSystem interface
	err := fs.client.MkdirAll(path)
	if err != nil {
		return fmt.Errorf("failed to create remote directory %s: %w", path, normalizeSFTPError(err))
	}

	return nil
}

// Open opens a remote file for reading.
func (fs *SFTPFileSystem) Open(path string) (File, error) {
	file, err := fs.client.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote file %s: %w", path, normalizeSFTPError(err))
	}

	return newSFTPFile(file, path), nil
}

// Remove removes a remote file or empty directory.
func (fs *SFTPFileSystem) Remove(path string) error {
	err := fs.client.Remove(path)
	if err != nil {
		return fmt.Errorf("failed to remove remote file %s: %w", path, normalizeSFTPError(err))
	}

	return nil
}

// Stat returns file information for a remote file.
func (fs *SFTPFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := fs.client.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat remote file %s: %w", path, normalizeSFTPError(err))
	}

	return info, nil
}

// normalizeSFTPError makes "no such file" status codes match fs.ErrNotExist
// and permission codes match fs.ErrPermission.
func normalizeSFTPError(err error) error {
	var statusErr *sftp.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	switch statusErr.FxCode() {
	case sftp.ErrSSHFxNoSuchFile:
		return fmt.Errorf("%w: %w", iofs.ErrNotExist, err)
	case sftp.ErrSSHFxPermissionDenied:
		return fmt.Errorf("%w: %w", iofs.ErrPermission, err)
	default:
		return err
	}
}
