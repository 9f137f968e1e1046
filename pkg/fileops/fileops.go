// Package fileops writes scene files through the filesystem abstraction,
// creating missing parent directories on demand.
package fileops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/joe/smart-save/pkg/filesystem"
)

// Exported constants.
const (
	// BufferSize is the size of the buffer used for copy operations (64KB)
	BufferSize = 64 * 1024
	// DefaultDirPermissions is the default permission mode for created directories
	DefaultDirPermissions = 0o750
)

// Exported variables.
var (
	ErrSaveCancelled = errors.New("save cancelled")
)

// FileOps writes files with dependency injection for filesystem access.
// Source and destination may live on different filesystems (e.g., local to SFTP).
type FileOps struct {
	SourceFS filesystem.FileSystem
	DestFS   filesystem.FileSystem
	Logger   *slog.Logger
}

// SaveStats contains timing information about a save.
type SaveStats struct {
	BytesWritten int64
	ReadTime     time.Duration
	WriteTime    time.Duration
	// CreatedDirs is set when the destination's parent had to be created
	CreatedDirs bool
}

// NewDualFileOps creates a FileOps with separate source and destination filesystems.
func NewDualFileOps(sourceFS, destFS filesystem.FileSystem) *FileOps {
	return &FileOps{SourceFS: sourceFS, DestFS: destFS}
}

// NewFileOps creates a FileOps reading and writing through fs.
func NewFileOps(fs filesystem.FileSystem) *FileOps {
	return NewDualFileOps(fs, fs)
}

// NewRealFileOps creates a FileOps using the real filesystem.
func NewRealFileOps() *FileOps {
	return NewFileOps(filesystem.NewRealFileSystem())
}

// SaveAs copies the scene file at src on the source filesystem to dst on the
// destination filesystem, overwriting dst. An empty src writes an empty scene.
// When src and dst name the same file on the same filesystem nothing is written.
func (fo *FileOps) SaveAs(ctx context.Context, src, dst string) (*SaveStats, error) {
	if src == "" {
		return fo.Write(ctx, dst, strings.NewReader(""))
	}

	if sameFileSystem(fo.SourceFS, fo.DestFS) && cleanPath(src) == cleanPath(dst) {
		fo.logger().Debug("scene already saved at destination", "path", dst)

		return &SaveStats{}, nil
	}

	sourceFile, err := fo.SourceFS.Open(src)
	if err != nil {
		return &SaveStats{}, fmt.Errorf("failed to open scene %s: %w", src, err)
	}

	defer func() {
		_ = sourceFile.Close()
	}()

	return fo.Write(ctx, dst, sourceFile)
}

// Write writes the contents of r to dst on the destination filesystem.
// If dst cannot be created because a parent directory is missing, the
// directories are created and the create is retried once. A partially
// written file is removed on failure.
func (fo *FileOps) Write(ctx context.Context, dst string, r io.Reader) (*SaveStats, error) {
	stats := &SaveStats{}

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrSaveCancelled, err)
	}

	destFile, err := fo.create(dst, stats)
	if err != nil {
		return stats, err
	}

	saveCompleted := false

	defer func() {
		if !saveCompleted {
			_ = destFile.Close()
			_ = fo.DestFS.Remove(dst)
		}
	}()

	written, err := copyLoop(ctx, r, destFile, stats)
	if err != nil {
		return stats, fmt.Errorf("failed to write %s: %w", dst, err)
	}

	stats.BytesWritten = written

	err = destFile.Close()
	if err != nil {
		return stats, fmt.Errorf("failed to close %s: %w", dst, err)
	}

	saveCompleted = true

	fo.logger().Debug("wrote scene file", "path", dst, "bytes", written)

	return stats, nil
}

// create opens dst for writing, creating missing parent directories once.
func (fo *FileOps) create(dst string, stats *SaveStats) (filesystem.File, error) {
	destFile, err := fo.DestFS.Create(dst)
	if err == nil {
		return destFile, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to create %s: %w", dst, err)
	}

	dir := parentDir(dst)
	fo.logger().Warn("missing directories in path, creating directories", "path", dir)

	if mkErr := fo.DestFS.MkdirAll(dir, DefaultDirPermissions); mkErr != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, mkErr)
	}

	stats.CreatedDirs = true

	destFile, err = fo.DestFS.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dst, err)
	}

	return destFile, nil
}

func (fo *FileOps) logger() *slog.Logger {
	if fo.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return fo.Logger
}

// cleanPath cleans p with the separator convention it was written in.
func cleanPath(p string) string {
	if strings.Contains(p, "/") {
		return path.Clean(p)
	}

	return filepath.Clean(p)
}

// copyLoop copies r to w, checking ctx between chunks.
func copyLoop(ctx context.Context, r io.Reader, w io.Writer, stats *SaveStats) (int64, error) {
	var written int64

	buf := make([]byte, BufferSize)

	for {
		if err := ctx.Err(); err != nil {
			return written, fmt.Errorf("%w: %w", ErrSaveCancelled, err)
		}

		readStart := time.Now()
		nr, err := r.Read(buf) //nolint:varnamelen // nr is idiomatic for bytes read
		stats.ReadTime += time.Since(readStart)

		if nr > 0 {
			writeStart := time.Now()
			nw, werr := w.Write(buf[0:nr]) //nolint:varnamelen // nw is idiomatic for bytes written
			stats.WriteTime += time.Since(writeStart)

			if werr != nil {
				return written, fmt.Errorf("failed to write to destination: %w", werr)
			}

			if nr != nw {
				return written, fmt.Errorf("short write: %w", io.ErrShortWrite)
			}

			written += int64(nw)
		}

		if errors.Is(err, io.EOF) {
			return written, nil
		}

		if err != nil {
			return written, fmt.Errorf("failed to read from source: %w", err)
		}
	}
}

// sameFileSystem reports whether a and b reach the same files. Every
// RealFileSystem does.
func sameFileSystem(a, b filesystem.FileSystem) bool {
	if a == b {
		return true
	}

	_, aReal := a.(*filesystem.RealFileSystem)
	_, bReal := b.(*filesystem.RealFileSystem)

	return aReal && bReal
}

// parentDir returns the directory holding p, keeping the separator style of p.
func parentDir(p string) string {
	if strings.Contains(p, "/") {
		return path.Dir(p)
	}

	return filepath.Dir(p)
}
