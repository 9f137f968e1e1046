package scenefile

import (
	"errors"
	"fmt"
)

// Exported variables.
var (
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrInvalidField      = errors.New("invalid field")
	ErrMalformedName     = errors.New("malformed scene file name")
)

// DirectoryNotFoundError reports a scan target folder that does not exist.
// It is only returned when the resolver runs with MissingFolderAsError.
type DirectoryNotFoundError struct {
	Path string
	Err  error
}

func (e *DirectoryNotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("directory not found: %s", e.Path)
	}

	return fmt.Sprintf("directory not found: %s: %v", e.Path, e.Err)
}

// Is reports whether target is ErrDirectoryNotFound.
func (e *DirectoryNotFoundError) Is(target error) bool {
	return target == ErrDirectoryNotFound
}

func (e *DirectoryNotFoundError) Unwrap() error {
	return e.Err
}

// InvalidFieldError reports a record field that violates a record invariant.
type InvalidFieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidField.
func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// MalformedNameError reports a file name that does not follow the
// descriptor_task_vNNN.ext convention.
type MalformedNameError struct {
	Name   string
	Reason string
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("malformed scene file name %q: %s", e.Name, e.Reason)
}

// Is reports whether target is ErrMalformedName.
func (e *MalformedNameError) Is(target error) bool {
	return target == ErrMalformedName
}
