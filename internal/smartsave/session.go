// Package smartsave ties the version resolver to the filesystem: it saves the
// current scene under its own name or under the next free version.
package smartsave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joe/smart-save/pkg/fileops"
	"github.com/joe/smart-save/pkg/scenefile"
)

// Session performs saves for one scene folder.
type Session struct {
	Resolver *scenefile.Resolver
	Ops      *fileops.FileOps
	Locker   Locker
	Logger   *slog.Logger
}

// NewSession creates a Session with no locking.
func NewSession(resolver *scenefile.Resolver, ops *fileops.FileOps) *Session {
	return &Session{
		Resolver: resolver,
		Ops:      ops,
		Locker:   NopLocker{},
	}
}

// Preview returns the record Save Increment would write, without writing.
func (s *Session) Preview(rec scenefile.Record) (scenefile.Record, error) {
	next, err := s.Resolver.Increment(rec)
	if err != nil {
		return scenefile.Record{}, fmt.Errorf("failed to preview %s: %w", rec.Stem(), err)
	}

	return next, nil
}

// Save writes the scene to rec's own path, overwriting any file there.
func (s *Session) Save(ctx context.Context, rec scenefile.Record, scene string) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	path := rec.FullPath()

	if _, err := s.Ops.SaveAs(ctx, scene, path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}

	s.logger().Info("saved scene", "path", path, "version", rec.Version)

	return path, nil
}

// SaveIncrement writes the scene to the next available version of rec and
// returns the new record and its path. The folder is scanned and written
// while holding the lock, so two concurrent saves get different versions.
func (s *Session) SaveIncrement(ctx context.Context, rec scenefile.Record, scene string) (scenefile.Record, string, error) {
	if err := rec.Validate(); err != nil {
		return scenefile.Record{}, "", err
	}

	unlock, err := s.locker().Lock(ctx, rec)
	if err != nil {
		return scenefile.Record{}, "", err
	}

	defer func() {
		if unlockErr := unlock(); unlockErr != nil {
			s.logger().Warn("failed to release save lock", "error", unlockErr)
		}
	}()

	next, err := s.Resolver.Increment(rec)
	if err != nil {
		return scenefile.Record{}, "", fmt.Errorf("failed to resolve next version of %s: %w", rec.Stem(), err)
	}

	path := next.FullPath()

	if _, err := s.Ops.SaveAs(ctx, scene, path); err != nil {
		return scenefile.Record{}, "", fmt.Errorf("failed to save %s: %w", path, err)
	}

	s.logger().Info("saved scene increment", "path", path, "from", rec.Version, "version", next.Version)

	return next, path, nil
}

func (s *Session) locker() Locker {
	if s.Locker == nil {
		return NopLocker{}
	}

	return s.Locker
}

func (s *Session) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return s.Logger
}
