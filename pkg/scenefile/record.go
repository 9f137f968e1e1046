// Package scenefile resolves versioned scene file names of the form
// descriptor_task_vNNN.ext.
//
// It parses names into records, formats records back into names, and scans
// directory listings for the next free version number. Everything in this
// package is pure except Resolver, which reads a directory through an injected
// DirectoryLister.
package scenefile

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Exported constants.
const (
	// DefaultDescriptor is the descriptor used for a new, untitled scene
	DefaultDescriptor = "main"
	// DefaultExtension is the extension used for a new, untitled scene
	DefaultExtension = ".ma"
	// DefaultScenesDir is the folder under the workspace root that holds scenes
	DefaultScenesDir = "scenes"
	// DefaultTask is the task used for a new, untitled scene
	DefaultTask = "model"
	// FieldSeparator separates descriptor, task and version token
	FieldSeparator = "_"
	// VersionPrefix precedes the version digits
	VersionPrefix = "v"
	// VersionWidth is the minimum number of digits a version is rendered with
	VersionWidth = 3
)

// Record is the structured form of a scene file path.
//
// Records are values: the derived file name is recomputed from the fields on
// every call and nothing is cached.
type Record struct {
	FolderPath string
	Descriptor string
	Task       string
	Version    int
	Extension  string
}

// New builds a record from explicit field values and validates it.
func New(folder, descriptor, task string, version int, ext string) (Record, error) {
	rec := Record{
		FolderPath: folder,
		Descriptor: descriptor,
		Task:       task,
		Version:    version,
		Extension:  ext,
	}

	if err := rec.Validate(); err != nil {
		return Record{}, err
	}

	return rec, nil
}

// Default builds the record for an untitled scene in folder.
func Default(folder string) Record {
	return Record{
		FolderPath: folder,
		Descriptor: DefaultDescriptor,
		Task:       DefaultTask,
		Version:    1,
		Extension:  DefaultExtension,
	}
}

// Filename returns the canonical base name, e.g. main_model_v007.ma.
func (r Record) Filename() string {
	return Format(r)
}

// FullPath returns the folder joined with the canonical file name.
func (r Record) FullPath() string {
	return FullPath(r)
}

// Stem returns the file name without its extension.
func (r Record) Stem() string {
	return r.Descriptor + FieldSeparator + r.Task + FieldSeparator + versionToken(r.Version)
}

// Validate checks every field invariant and returns the first violation as an
// *InvalidFieldError.
func (r Record) Validate() error {
	if err := validateIdentifier("descriptor", r.Descriptor); err != nil {
		return err
	}

	if err := validateIdentifier("task", r.Task); err != nil {
		return err
	}

	if err := validateVersion(r.Version); err != nil {
		return err
	}

	return validateExtension(r.Extension)
}

// WithVersion returns a copy of r with only the version replaced.
func (r Record) WithVersion(version int) (Record, error) {
	if err := validateVersion(version); err != nil {
		return r, err
	}

	r.Version = version

	return r, nil
}

// Format renders the canonical base name of r. The version is zero-padded to
// VersionWidth digits; wider versions are never truncated.
func Format(r Record) string {
	return r.Stem() + r.Extension
}

// FullPath joins the record's folder and file name without cleaning the
// folder. Parse recovers the folder with any trailing separator removed.
func FullPath(r Record) string {
	return FullPathIn(r.FolderPath, Format(r))
}

// FullPathIn joins folder and name without cleaning folder. A trailing
// separator on folder is not doubled, and a folder that already uses
// forward slashes keeps using them.
func FullPathIn(folder, name string) string {
	if folder == "" {
		return name
	}

	if isSeparator(folder[len(folder)-1]) {
		return folder + name
	}

	if strings.Contains(folder, "/") {
		return folder + "/" + name
	}

	return folder + string(filepath.Separator) + name
}

func validateExtension(ext string) error {
	switch {
	case ext == "":
		return &InvalidFieldError{Field: "extension", Value: ext, Reason: "must not be empty"}
	case !strings.HasPrefix(ext, "."):
		return &InvalidFieldError{Field: "extension", Value: ext, Reason: "must start with '.'"}
	case len(ext) == 1:
		return &InvalidFieldError{Field: "extension", Value: ext, Reason: "must name a type after '.'"}
	case strings.Count(ext, ".") != 1:
		return &InvalidFieldError{Field: "extension", Value: ext, Reason: "must contain a single '.'"}
	case strings.IndexFunc(ext, isSeparatorRune) >= 0:
		return &InvalidFieldError{Field: "extension", Value: ext, Reason: "must not contain a path separator"}
	}

	return nil
}

func validateIdentifier(field, value string) error {
	switch {
	case value == "":
		return &InvalidFieldError{Field: field, Value: value, Reason: "must not be empty"}
	case strings.Contains(value, FieldSeparator):
		return &InvalidFieldError{Field: field, Value: value, Reason: fmt.Sprintf("must not contain %q", FieldSeparator)}
	case strings.IndexFunc(value, isSeparatorRune) >= 0:
		return &InvalidFieldError{Field: field, Value: value, Reason: "must not contain a path separator"}
	}

	return nil
}

func validateVersion(version int) error {
	if version < 1 {
		return &InvalidFieldError{Field: "version", Value: strconv.Itoa(version), Reason: "must be 1 or greater"}
	}

	return nil
}

func versionToken(version int) string {
	return fmt.Sprintf("%s%0*d", VersionPrefix, VersionWidth, version)
}

func isSeparator(c byte) bool {
	return c == '/' || c == filepath.Separator
}

func isSeparatorRune(r rune) bool {
	return r == '/' || r == filepath.Separator
}
