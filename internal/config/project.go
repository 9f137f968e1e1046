package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Exported constants.
const (
	// ProjectFileName is looked up in the workspace root
	ProjectFileName = "smartsave.toml"
)

// ProjectConfig holds per-project defaults read from smartsave.toml.
//
//	descriptor = "main"
//	task = "anim"
//	extension = ".mb"
//	scenes_dir = "scenes"
//	case_insensitive = false
//	strict_folder = false
type ProjectConfig struct {
	Descriptor      string `toml:"descriptor"`
	Task            string `toml:"task"`
	Extension       string `toml:"extension"`
	ScenesDir       string `toml:"scenes_dir"`
	CaseInsensitive bool   `toml:"case_insensitive"`
	StrictFolder    bool   `toml:"strict_folder"`
}

// LoadProject reads a project file. A missing file yields the zero config and
// false; unknown keys are an error.
func LoadProject(path string) (ProjectConfig, bool, error) {
	var project ProjectConfig

	file, err := os.Open(path) //nolint:gosec // Path chosen by the user
	if errors.Is(err, fs.ErrNotExist) {
		return project, false, nil
	}
	if err != nil {
		return project, false, fmt.Errorf("open project file: %w", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&project); err != nil {
		return ProjectConfig{}, false, fmt.Errorf("parse project file %s: %w", path, err)
	}

	return project, true, nil
}

// ProjectFilePath returns the project file location inside workspace.
func ProjectFilePath(workspace string) string {
	return filepath.Join(workspace, ProjectFileName)
}

// resolveScenesDir anchors a relative scenes_dir at the workspace.
func resolveScenesDir(workspace, scenesDir string) string {
	if filepath.IsAbs(scenesDir) || strings.HasPrefix(scenesDir, "sftp://") {
		return scenesDir
	}

	return filepath.Join(workspace, scenesDir)
}
