package scenefile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
)

// Exported constants.
const (
	// MissingFolderAsEmpty treats a missing scan folder as having no versions
	MissingFolderAsEmpty MissingFolderPolicy = iota
	// MissingFolderAsError reports a missing scan folder as *DirectoryNotFoundError
	MissingFolderAsError
)

// DirectoryLister lists the names of the direct children of a folder.
//
// A missing folder must be reported with an error that satisfies
// errors.Is(err, fs.ErrNotExist) or errors.Is(err, ErrDirectoryNotFound).
type DirectoryLister interface {
	ListNames(folder string) ([]string, error)
}

// Defaults holds the field values used for an untitled scene.
type Defaults struct {
	Descriptor string
	Task       string
	Extension  string
	ScenesDir  string
}

// MissingFolderPolicy decides what a scan of a missing folder yields.
type MissingFolderPolicy int

// String returns the string representation of MissingFolderPolicy
func (p MissingFolderPolicy) String() string {
	switch p {
	case MissingFolderAsEmpty:
		return "empty"
	case MissingFolderAsError:
		return "error"
	default:
		return "unknown"
	}
}

// Resolver ties the pure record operations to the host application.
//
// The host supplies its current scene and workspace root as functions, and
// the folder contents through a DirectoryLister. Every scan reads the folder
// again; nothing is cached between calls.
type Resolver struct {
	Lister        DirectoryLister
	CurrentScene  func() (string, error)
	WorkspaceRoot func() (string, error)
	Defaults      Defaults
	MissingFolder MissingFolderPolicy
	Scanner       *Scanner
	Logger        *slog.Logger
}

// NewResolver creates a Resolver that reads folders through lister, with the
// package defaults and the MissingFolderAsEmpty policy.
func NewResolver(lister DirectoryLister) *Resolver {
	return &Resolver{
		Lister: lister,
		Defaults: Defaults{
			Descriptor: DefaultDescriptor,
			Task:       DefaultTask,
			Extension:  DefaultExtension,
			ScenesDir:  DefaultScenesDir,
		},
		MissingFolder: MissingFolderAsEmpty,
	}
}

// Current returns the record for the host's current scene. An untitled scene
// gets the default fields in the workspace scenes folder.
func (r *Resolver) Current() (Record, error) {
	scene := ""
	if r.CurrentScene != nil {
		var err error

		scene, err = r.CurrentScene()
		if err != nil {
			return Record{}, fmt.Errorf("failed to look up current scene: %w", err)
		}
	}

	if strings.TrimSpace(scene) != "" {
		return Parse(scene)
	}

	folder, err := r.defaultFolder()
	if err != nil {
		return Record{}, err
	}

	r.logger().Info("initialize with default properties", "folder", folder)

	rec := Record{
		FolderPath: folder,
		Descriptor: orDefault(r.Defaults.Descriptor, DefaultDescriptor),
		Task:       orDefault(r.Defaults.Task, DefaultTask),
		Version:    1,
		Extension:  orDefault(r.Defaults.Extension, DefaultExtension),
	}

	if err := rec.Validate(); err != nil {
		return Record{}, fmt.Errorf("invalid scene defaults: %w", err)
	}

	return rec, nil
}

// Increment returns a copy of rec carrying the next available version.
func (r *Resolver) Increment(rec Record) (Record, error) {
	next, err := r.NextAvailableVersion(rec)
	if err != nil {
		return rec, err
	}

	return rec.WithVersion(next)
}

// NextAvailableVersion lists rec's folder and returns one past the highest
// existing version of rec, or 1 when there is none.
func (r *Resolver) NextAvailableVersion(rec Record) (int, error) {
	listing, err := r.list(rec)
	if err != nil {
		return 0, err
	}

	next := r.scanner().NextAvailableVersion(rec, listing)
	r.logger().Debug("resolved next version",
		"folder", rec.FolderPath, "entries", len(listing), "next", next)

	return next, nil
}

// Versions lists rec's folder and returns every existing version of rec,
// ordered by version.
func (r *Resolver) Versions(rec Record) ([]Match, error) {
	listing, err := r.list(rec)
	if err != nil {
		return nil, err
	}

	return r.scanner().Versions(rec, listing), nil
}

// list validates rec and reads its folder, applying the missing folder
// policy. A missing folder read as empty yields a nil listing.
func (r *Resolver) list(rec Record) ([]string, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if r.Lister == nil {
		return nil, fmt.Errorf("no directory lister configured") //nolint:err113,perfsprint // Configuration error
	}

	listing, err := r.Lister.ListNames(rec.FolderPath)
	if err == nil {
		return listing, nil
	}

	if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, ErrDirectoryNotFound) {
		return nil, fmt.Errorf("failed to list %s: %w", rec.FolderPath, err)
	}

	if r.MissingFolder == MissingFolderAsError {
		var dirErr *DirectoryNotFoundError
		if errors.As(err, &dirErr) {
			return nil, dirErr
		}

		return nil, &DirectoryNotFoundError{Path: rec.FolderPath, Err: err}
	}

	r.logger().Debug("scan folder does not exist, starting at version 1", "folder", rec.FolderPath)

	return nil, nil
}

func (r *Resolver) defaultFolder() (string, error) {
	if r.WorkspaceRoot == nil {
		return "", fmt.Errorf("no workspace root configured for an untitled scene") //nolint:err113,perfsprint // Configuration error
	}

	root, err := r.WorkspaceRoot()
	if err != nil {
		return "", fmt.Errorf("failed to look up workspace root: %w", err)
	}

	return FullPathIn(root, orDefault(r.Defaults.ScenesDir, DefaultScenesDir)), nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return r.Logger
}

func (r *Resolver) scanner() *Scanner {
	if r.Scanner == nil {
		return NewScanner(WithLogger(r.Logger))
	}

	return r.Scanner
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
