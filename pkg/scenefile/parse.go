package scenefile

import (
	"regexp"
	"strconv"
	"strings"
)

// unexported variables.
var (
	//nolint:gochecknoglobals // Compiled once, shared by Parse and the scanner
	versionTokenPattern = regexp.MustCompile(`^v([0-9]+)$`)
	//nolint:gochecknoglobals // Compiled once, shared by Parse and the scanner
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Parse decomposes a scene file path into a Record.
//
// The base name without extension must split on "_" into exactly three parts:
// descriptor, task and a version token "v" followed by digits. Leading zeros
// in the version are ignored. Folder and extension are taken verbatim.
func Parse(path string) (Record, error) {
	folder, stem, ext := SplitPath(path)

	parts := strings.Split(stem, FieldSeparator)
	if len(parts) != 3 { //nolint:mnd // descriptor, task, version
		return Record{}, &MalformedNameError{Name: path, Reason: "expected descriptor_task_vNNN"}
	}

	descriptor, task, token := parts[0], parts[1], parts[2]
	if descriptor == "" {
		return Record{}, &MalformedNameError{Name: path, Reason: "empty descriptor"}
	}

	if task == "" {
		return Record{}, &MalformedNameError{Name: path, Reason: "empty task"}
	}

	match := versionTokenPattern.FindStringSubmatch(token)
	if match == nil {
		return Record{}, &MalformedNameError{Name: path, Reason: "version must be 'v' followed by digits, got " + strconv.Quote(token)}
	}

	version, reason := parseVersionDigits(match[1])
	if reason != "" {
		return Record{}, &MalformedNameError{Name: path, Reason: reason}
	}

	if ext == "" {
		return Record{}, &MalformedNameError{Name: path, Reason: "missing extension"}
	}

	return Record{
		FolderPath: folder,
		Descriptor: descriptor,
		Task:       task,
		Version:    version,
		Extension:  ext,
	}, nil
}

// SplitPath splits path into its parent folder, the base name without
// extension, and the extension including its leading dot.
//
// The parent is returned without its trailing separator, except for a file
// directly under the root, whose parent is the separator itself. A path
// without any separator has an empty parent.
func SplitPath(path string) (parent, stem, ext string) {
	base := path

	idx := strings.LastIndexFunc(path, isSeparatorRune)
	switch {
	case idx == 0:
		parent, base = path[:1], path[1:]
	case idx > 0:
		parent, base = path[:idx], path[idx+1:]
	}

	dot := strings.LastIndexByte(base, '.')
	if dot < 0 {
		return parent, base, ""
	}

	return parent, base[:dot], base[dot:]
}

// parseVersionDigits converts a run of digits into a version. A non-empty
// reason means the digits do not form a usable version.
func parseVersionDigits(digits string) (int, string) {
	version, err := strconv.Atoi(digits)
	if err != nil {
		return 0, "version out of range"
	}

	if version < 1 {
		return 0, "version must be 1 or greater"
	}

	return version, ""
}
