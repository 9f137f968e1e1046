// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/joe/smart-save/pkg/filesystem"
)

// Exported constants.
const (
	// DefaultLockTimeout bounds how long Save Increment waits for another save
	DefaultLockTimeout = 10 * time.Second
)

// Exported variables.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Mode selects what a non-interactive run does
type Mode int

const (
	// ModeIncrement - save to the next available version
	ModeIncrement Mode = iota
	// ModeSave - save to the record's own version, overwriting
	ModeSave
	// ModePreview - print the path Save Increment would write
	ModePreview
	// ModeList - print every existing version
	ModeList
)

// String returns the string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModeIncrement:
		return "increment"
	case ModeSave:
		return "save"
	case ModePreview:
		return "preview"
	case ModeList:
		return "list"
	default:
		return "unknown"
	}
}

// ParseMode parses a string into a Mode
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "increment", "save-increment", "inc":
		return ModeIncrement, nil
	case "save":
		return ModeSave, nil
	case "preview", "next":
		return ModePreview, nil
	case "list", "ls":
		return ModeList, nil
	default:
		return ModeIncrement, fmt.Errorf("invalid mode: %s (valid: increment, save, preview, list)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Config holds the application configuration
type Config struct {
	Mode            Mode          `arg:"-m,--mode" default:"increment" help:"What to do: increment|save|preview|list"`
	Interactive     bool          `arg:"-i,--interactive" help:"Open the Smart Save dialog"`
	Scene           string        `arg:"-s,--scene,env:SMART_SAVE_SCENE" help:"Current scene file; its contents are saved and its name seeds the fields"`
	Workspace       string        `arg:"-w,--workspace,env:SMART_SAVE_WORKSPACE" help:"Workspace root used for untitled scenes (default: current directory)"`
	Folder          string        `arg:"-f,--folder" help:"Scene folder, local path or sftp://user@host[:port]/path"`
	Descriptor      string        `arg:"-d,--descriptor" help:"Descriptor field"`
	Task            string        `arg:"-t,--task" help:"Task field"`
	VersionNumber   int           `arg:"-v,--version-number" help:"Version field for --mode save"`
	Ext             string        `arg:"-e,--ext" help:"Extension including the dot, e.g. .ma"`
	CaseInsensitive bool          `arg:"--case-insensitive" help:"Match existing files ignoring case"`
	StrictFolder    bool          `arg:"--strict-folder" help:"Fail when the scene folder does not exist"`
	LockTimeout     time.Duration `arg:"--lock-timeout" help:"How long to wait for a concurrent save (default: 10s)"`
	KnownHosts      string        `arg:"--known-hosts" help:"known_hosts file for sftp folders (default: ~/.ssh/known_hosts)"`
	InsecureHostKey bool          `arg:"--insecure-host-key" help:"Skip SSH host key verification"`
	LogLevel        string        `arg:"--log-level" default:"info" help:"debug|info|warn|error"`
	LogFormat       string        `arg:"--log-format" default:"console" help:"console|json"`
	LogFile         string        `arg:"--log-file" help:"Also append logs to this file"`
	Project         string        `arg:"--project" help:"Project file (default: <workspace>/smartsave.toml)"`

	// Defaults holds the project file settings; they seed untitled scenes
	Defaults ProjectConfig `arg:"-"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Save scene files as descriptor_task_vNNN.ext, picking the next free version"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "smart-save 1.0.0"
}

// ConnectOptions returns the SFTP host key settings.
func (cfg *Config) ConnectOptions() filesystem.ConnectOptions {
	return filesystem.ConnectOptions{
		KnownHostsPath:      cfg.KnownHosts,
		InsecureSkipHostKey: cfg.InsecureHostKey,
	}
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// PostProcessConfig fills in defaults, merges the project file and validates
// a parsed config. Flags win over the project file.
func PostProcessConfig(cfg *Config) (*Config, error) {
	if cfg.LockTimeout == 0 {
		cfg.LockTimeout = DefaultLockTimeout
	}

	if cfg.Workspace == "" {
		cfg.Workspace = "."
	}

	project, _, err := LoadProject(cfg.ProjectPath())
	if err != nil {
		return nil, err
	}

	cfg.ApplyProject(project)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyProject records the project settings as defaults for untitled
// scenes. The boolean switches are on when either the flag or the file sets them.
func (cfg *Config) ApplyProject(project ProjectConfig) {
	if project.ScenesDir != "" {
		project.ScenesDir = resolveScenesDir(cfg.Workspace, project.ScenesDir)
	}

	cfg.Defaults = project
	cfg.CaseInsensitive = cfg.CaseInsensitive || project.CaseInsensitive
	cfg.StrictFolder = cfg.StrictFolder || project.StrictFolder
}

// ProjectPath returns the project file to read.
func (cfg *Config) ProjectPath() string {
	if cfg.Project != "" {
		return cfg.Project
	}

	return ProjectFilePath(cfg.Workspace)
}

// Validate checks flag values that do not depend on the filesystem layout
// beyond the scene file itself.
func (cfg *Config) Validate() error {
	switch strings.ToLower(cfg.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log format must be console or json, got %q", ErrInvalidConfig, cfg.LogFormat)
	}

	if cfg.LockTimeout < 0 {
		return fmt.Errorf("%w: lock timeout must not be negative", ErrInvalidConfig)
	}

	if cfg.VersionNumber < 0 {
		return fmt.Errorf("%w: version must not be negative", ErrInvalidConfig)
	}

	if cfg.Folder != "" {
		if _, err := filesystem.ParsePath(cfg.Folder); err != nil {
			return fmt.Errorf("%w: folder: %w", ErrInvalidConfig, err)
		}
	}

	return cfg.validateScene()
}

// validateScene checks that a local scene file exists and is a regular file.
func (cfg *Config) validateScene() error {
	if cfg.Scene == "" {
		return nil
	}

	parsed, err := filesystem.ParsePath(cfg.Scene)
	if err != nil {
		return fmt.Errorf("%w: scene: %w", ErrInvalidConfig, err)
	}

	if parsed.IsRemote {
		return nil
	}

	info, err := os.Stat(cfg.Scene)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: scene file does not exist: %s", ErrInvalidConfig, cfg.Scene)
	}
	if err != nil {
		return fmt.Errorf("cannot access scene file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: scene is a directory: %s", ErrInvalidConfig, cfg.Scene)
	}

	return nil
}
