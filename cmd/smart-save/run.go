package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joe/smart-save/internal/config"
	"github.com/joe/smart-save/internal/listing"
	"github.com/joe/smart-save/internal/smartsave"
	"github.com/joe/smart-save/internal/tui"
	"github.com/joe/smart-save/pkg/fileops"
	"github.com/joe/smart-save/pkg/filesystem"
	"github.com/joe/smart-save/pkg/scenefile"
)

// Exported variables.
var (
	ErrNotTerminal    = errors.New("interactive mode needs a terminal")
	ErrFolderMismatch = errors.New("folder must stay on the same host")
)

// streams are the process's terminal handles.
type streams struct {
	In  io.Reader
	Out io.Writer
	// UI is where the dialog is drawn
	UI io.Writer
	// Terminal reports whether In and UI are a TTY
	Terminal bool
}

// run performs one invocation of the tool for an already validated config.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, std streams) error {
	sceneParsed, err := filesystem.ParsePath(cfg.Scene)
	if err != nil {
		return err
	}

	resolver := newResolver(cfg, sceneParsed, logger)

	rec, err := currentRecord(cfg, resolver, sceneParsed, logger)
	if err != nil {
		return err
	}

	folder := folderSpec(cfg, sceneParsed, rec)

	folderParsed, err := filesystem.ParsePath(folder)
	if err != nil {
		return err
	}

	sceneFS, folderFS, scenePath, folderPath, closer, err := filesystem.CreateFileSystemPair(
		cfg.Scene, folder, cfg.ConnectOptions())
	if err != nil {
		return err
	}
	defer closer()

	// A second connection to the same host would let Save truncate the
	// scene it is reading from
	if sameRemote(sceneParsed, folderParsed) {
		sceneFS = folderFS
	}

	rec, err = applyOverrides(cfg, rec, folderPath)
	if err != nil {
		return err
	}

	resolver.Lister = filesystem.NewLister(folderFS)

	ops := fileops.NewDualFileOps(sceneFS, folderFS)
	ops.Logger = logger

	session := &smartsave.Session{
		Resolver: resolver,
		Ops:      ops,
		Locker:   newLocker(cfg, folderParsed, logger),
		Logger:   logger,
	}

	logger.Debug("resolved scene",
		"scene", cfg.Scene,
		"folder", folderParsed.Display(rec.FolderPath),
		"name", rec.Filename(),
		"mode", cfg.Mode.String())

	if cfg.Interactive {
		return runDialog(ctx, session, rec, scenePath, folderParsed, std)
	}

	return runMode(ctx, cfg.Mode, session, rec, scenePath, folderParsed, std.Out)
}

func runMode(
	ctx context.Context,
	mode config.Mode,
	session *smartsave.Session,
	rec scenefile.Record,
	scene string,
	folder *filesystem.ParsedPath,
	out io.Writer,
) error {
	switch mode {
	case config.ModeSave:
		path, err := session.Save(ctx, rec, scene)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(out, folder.Display(path))

		return err
	case config.ModeIncrement:
		_, path, err := session.SaveIncrement(ctx, rec, scene)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(out, folder.Display(path))

		return err
	case config.ModePreview:
		next, err := session.Preview(rec)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(out, folder.Display(next.FullPath()))

		return err
	case config.ModeList:
		return printListing(session.Resolver, rec, folder, out)
	default:
		return fmt.Errorf("%w: unknown mode %s", config.ErrInvalidConfig, mode)
	}
}

func runDialog(
	ctx context.Context,
	session *smartsave.Session,
	rec scenefile.Record,
	scene string,
	folder *filesystem.ParsedPath,
	std streams,
) error {
	if !std.Terminal {
		return ErrNotTerminal
	}

	dialog := tui.NewDialog(rec, session, tui.DialogOptions{
		Scene:      scene,
		Display:    folder.Display,
		FolderPath: folderPathOn(folder),
	})

	result, err := tui.Run(ctx, dialog, std.In, std.UI)
	if err != nil {
		return err
	}

	if result.Path != "" {
		_, err = fmt.Fprintln(std.Out, folder.Display(result.Path))
	}

	return err
}

func printListing(resolver *scenefile.Resolver, rec scenefile.Record, folder *filesystem.ParsedPath, out io.Writer) error {
	matches, err := resolver.Versions(rec)
	if err != nil {
		return err
	}

	next, err := resolver.Increment(rec)
	if err != nil {
		return err
	}

	report := listing.Report{
		Folder:  folder.Display(rec.FolderPath),
		Matches: matches,
		Next:    next,
	}

	_, err = fmt.Fprintln(out, report.Render())

	return err
}

func newResolver(cfg *config.Config, scene *filesystem.ParsedPath, logger *slog.Logger) *scenefile.Resolver {
	resolver := scenefile.NewResolver(nil)
	resolver.Logger = logger
	resolver.CurrentScene = func() (string, error) { return scenePathOf(scene), nil }
	resolver.WorkspaceRoot = func() (string, error) { return cfg.Workspace, nil }

	if cfg.Defaults.Descriptor != "" {
		resolver.Defaults.Descriptor = cfg.Defaults.Descriptor
	}

	if cfg.Defaults.Task != "" {
		resolver.Defaults.Task = cfg.Defaults.Task
	}

	if cfg.Defaults.Extension != "" {
		resolver.Defaults.Extension = cfg.Defaults.Extension
	}

	if cfg.StrictFolder {
		resolver.MissingFolder = scenefile.MissingFolderAsError
	}

	opts := []scenefile.Option{scenefile.WithLogger(logger)}
	if cfg.CaseInsensitive {
		opts = append(opts, scenefile.WithCaseInsensitive())
	}

	resolver.Scanner = scenefile.NewScanner(opts...)

	return resolver
}

// currentRecord parses the current scene. A scene whose name does not follow
// the convention is accepted when the flags name both descriptor and task.
func currentRecord(
	cfg *config.Config,
	resolver *scenefile.Resolver,
	scene *filesystem.ParsedPath,
	logger *slog.Logger,
) (scenefile.Record, error) {
	rec, err := resolver.Current()
	if err == nil || !errors.Is(err, scenefile.ErrMalformedName) || cfg.Descriptor == "" || cfg.Task == "" {
		return rec, err
	}

	parent, _, ext := scenefile.SplitPath(scenePathOf(scene))

	logger.Info("scene name does not follow the convention, naming it from flags", "scene", cfg.Scene)

	rec = scenefile.Default(parent)
	if ext != "" {
		rec.Extension = ext
	}

	return rec, nil
}

// folderSpec picks the folder to save into, as a local path or sftp URL.
// An explicit --folder wins, then the project scenes_dir for an untitled
// scene, then the folder holding the scene.
func folderSpec(cfg *config.Config, scene *filesystem.ParsedPath, rec scenefile.Record) string {
	switch {
	case cfg.Folder != "":
		return cfg.Folder
	case cfg.Scene == "" && cfg.Defaults.ScenesDir != "":
		return cfg.Defaults.ScenesDir
	case rec.FolderPath == "":
		return "."
	default:
		return scene.Display(rec.FolderPath)
	}
}

// applyOverrides moves rec into folder and replaces the fields set by flags.
func applyOverrides(cfg *config.Config, rec scenefile.Record, folder string) (scenefile.Record, error) {
	rec.FolderPath = folder

	if cfg.Descriptor != "" {
		rec.Descriptor = cfg.Descriptor
	}

	if cfg.Task != "" {
		rec.Task = cfg.Task
	}

	if cfg.Ext != "" {
		rec.Extension = cfg.Ext
	}

	if cfg.VersionNumber > 0 {
		rec.Version = cfg.VersionNumber
	}

	if err := rec.Validate(); err != nil {
		return scenefile.Record{}, err
	}

	return rec, nil
}

func newLocker(cfg *config.Config, folder *filesystem.ParsedPath, logger *slog.Logger) smartsave.Locker {
	if folder.IsRemote {
		logger.Debug("saves to remote folders are not locked", "folder", folder.Display("."))

		return smartsave.NopLocker{}
	}

	locker := smartsave.NewFileLocker()
	locker.Timeout = cfg.LockTimeout

	return locker
}

// folderPathOn returns the dialog's folder parser: the typed folder must be
// on the same filesystem the session writes to.
func folderPathOn(folder *filesystem.ParsedPath) func(string) (string, error) {
	return func(typed string) (string, error) {
		parsed, err := filesystem.ParsePath(typed)
		if err != nil {
			return "", err
		}

		if parsed.IsRemote != folder.IsRemote || (folder.IsRemote && !sameRemote(parsed, folder)) {
			return "", fmt.Errorf("%w: %s", ErrFolderMismatch, folder.Display("."))
		}

		return scenePathOf(parsed), nil
	}
}

// sameRemote reports whether a and b are sftp URLs for the same login.
func sameRemote(a, b *filesystem.ParsedPath) bool {
	return a.IsRemote && b.IsRemote && a.Host == b.Host && a.Port == b.Port && a.User == b.User
}

// scenePathOf returns the path part of a parsed local path or URL.
func scenePathOf(parsed *filesystem.ParsedPath) string {
	if parsed.IsRemote {
		return parsed.Path
	}

	return parsed.LocalPath
}
