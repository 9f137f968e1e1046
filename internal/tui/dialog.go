// Package tui implements the interactive save dialog.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/smart-save/internal/tui/shared"
	"github.com/joe/smart-save/pkg/scenefile"
)

// Action is what the user last asked the dialog to do.
type Action int

// Action values.
const (
	ActionNone Action = iota
	ActionSave
	ActionSaveIncrement
	ActionCancel
)

// Field identifies one of the dialog's inputs.
type Field int

// Field values in tab order.
const (
	FieldFolder Field = iota
	FieldDescriptor
	FieldTask
	FieldVersion
	fieldCount
)

// Saver performs the dialog's two save actions.
type Saver interface {
	Save(ctx context.Context, rec scenefile.Record, scene string) (string, error)
	SaveIncrement(ctx context.Context, rec scenefile.Record, scene string) (scenefile.Record, string, error)
}

// DialogOptions configures a dialog.
type DialogOptions struct {
	// Scene is the file currently open; empty for an untitled scene
	Scene string
	// Display renders a folder or file path for the user. Defaults to identity.
	Display func(path string) string
	// FolderPath turns what the user typed in the folder field back into a
	// path on the scenes filesystem. Defaults to identity.
	FolderPath func(typed string) (string, error)
	// SaveTimeout bounds each save, including waiting for the lock. Zero means no limit.
	SaveTimeout time.Duration
}

// Result summarises the dialog once it has closed.
type Result struct {
	// Action is the last action taken
	Action Action
	// Path is the last file written, empty if nothing was saved
	Path string
	// Record is the record of the last file written
	Record scenefile.Record
	// Saves counts the successful saves
	Saves int
}

// DialogModel is the bubbletea model of the save dialog.
//
// The dialog stays open after a save. Save Increment writes the new version
// back into the version field, and the saved file becomes the current scene
// for the next save.
type DialogModel struct {
	saver      Saver
	scene      string
	extension  string
	display    func(string) string
	folderPath func(string) (string, error)
	timeout    time.Duration

	inputs [fieldCount]textinput.Model
	focus  Field

	busy   bool
	status string
	err    error
	result Result
	width  int
}

// NewDialog creates a dialog pre-filled from initial.
func NewDialog(initial scenefile.Record, saver Saver, opts DialogOptions) DialogModel {
	display := opts.Display
	if display == nil {
		display = func(path string) string { return path }
	}

	folderPath := opts.FolderPath
	if folderPath == nil {
		folderPath = func(typed string) (string, error) { return typed, nil }
	}

	model := DialogModel{
		saver:      saver,
		scene:      opts.Scene,
		extension:  initial.Extension,
		display:    display,
		folderPath: folderPath,
		timeout:    opts.SaveTimeout,
	}

	model.inputs[FieldFolder] = newInput("scenes folder", display(initial.FolderPath), shared.InputWidth)
	model.inputs[FieldDescriptor] = newInput(scenefile.DefaultDescriptor, initial.Descriptor, shared.InputWidth)
	model.inputs[FieldTask] = newInput(scenefile.DefaultTask, initial.Task, shared.InputWidth)
	model.inputs[FieldVersion] = newInput("1", strconv.Itoa(initial.Version), shared.VersionWidth)
	model.inputs[FieldVersion].Validate = validateDigits

	model.inputs[FieldFolder].Focus()

	return model
}

// Err returns the error of the last action, if any.
func (m DialogModel) Err() error {
	return m.err
}

// Focused returns the field that has keyboard focus.
func (m DialogModel) Focused() Field {
	return m.focus
}

// Init implements tea.Model.
func (m DialogModel) Init() tea.Cmd {
	return textinput.Blink
}

// Record builds a record from the current field values.
func (m DialogModel) Record() (scenefile.Record, error) {
	folder, err := m.folderPath(strings.TrimSpace(m.inputs[FieldFolder].Value()))
	if err != nil {
		return scenefile.Record{}, err
	}

	version, err := strconv.Atoi(strings.TrimSpace(m.inputs[FieldVersion].Value()))
	if err != nil {
		return scenefile.Record{}, &scenefile.InvalidFieldError{
			Field:  "version",
			Value:  m.inputs[FieldVersion].Value(),
			Reason: "must be a whole number",
		}
	}

	return scenefile.New(
		folder,
		strings.TrimSpace(m.inputs[FieldDescriptor].Value()),
		strings.TrimSpace(m.inputs[FieldTask].Value()),
		version,
		m.extension,
	)
}

// Result returns the summary of what the dialog did.
func (m DialogModel) Result() Result {
	return m.result
}

// Scene returns the file the next save copies from.
func (m DialogModel) Scene() string {
	return m.scene
}

// Status returns the last status line.
func (m DialogModel) Status() string {
	return m.status
}

// Value returns the text of a field.
func (m DialogModel) Value(field Field) string {
	return m.inputs[field].Value()
}

func newInput(placeholder, value string, width int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	input.Width = width
	input.SetValue(value)

	return input
}

func validateDigits(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("version must be digits, got %q", s)
		}
	}

	return nil
}
