package smartsave

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/joe/smart-save/pkg/scenefile"
)

// Exported constants.
const (
	// DefaultLockRetryDelay is how often a held lock is retried
	DefaultLockRetryDelay = 50 * time.Millisecond
)

// Exported variables.
var (
	ErrLocked = errors.New("scene is locked by another save")
)

// Locker serialises the scan-then-write step of Save Increment for one
// descriptor/task pair.
type Locker interface {
	// Lock blocks until the lock for rec is held or ctx is done.
	Lock(ctx context.Context, rec scenefile.Record) (unlock func() error, err error)
}

// FileLocker takes an advisory lock on a hidden file next to the scene files.
// It only works for folders on the local filesystem.
type FileLocker struct {
	RetryDelay time.Duration
	// Timeout bounds the wait for a held lock; zero waits until ctx is done
	Timeout time.Duration
}

// NewFileLocker creates a FileLocker with the default retry delay.
func NewFileLocker() *FileLocker {
	return &FileLocker{RetryDelay: DefaultLockRetryDelay}
}

// Lock creates the scene folder if needed and locks
// <folder>/.<descriptor>_<task>.lock.
func (l *FileLocker) Lock(ctx context.Context, rec scenefile.Record) (func() error, error) {
	folder := rec.FolderPath
	if folder == "" {
		folder = "."
	}

	if err := os.MkdirAll(folder, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory %s: %w", folder, err)
	}

	path := LockPath(rec)
	lock := flock.New(path)

	delay := l.RetryDelay
	if delay <= 0 {
		delay = DefaultLockRetryDelay
	}

	if l.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	ok, err := lock.TryLockContext(ctx, delay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLocked, path, ctxErr)
		}

		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	return lock.Unlock, nil
}

// LockPath returns the lock file guarding saves of rec's descriptor and task.
func LockPath(rec scenefile.Record) string {
	return scenefile.FullPathIn(rec.FolderPath, "."+rec.Descriptor+scenefile.FieldSeparator+rec.Task+".lock")
}

// NopLocker never blocks. It is used for remote folders.
type NopLocker struct{}

// Lock returns immediately.
func (NopLocker) Lock(context.Context, scenefile.Record) (func() error, error) {
	return func() error { return nil }, nil
}
