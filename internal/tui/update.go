package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/smart-save/internal/tui/shared"
	"github.com/joe/smart-save/pkg/scenefile"
)

// savedMsg is sent when a save finished.
type savedMsg struct {
	action Action
	record scenefile.Record
	path   string
}

// saveFailedMsg is sent when a save failed.
type saveFailedMsg struct {
	action Action
	err    error
}

// Update implements tea.Model.
func (m DialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case savedMsg:
		return m.handleSaved(msg), nil
	case saveFailedMsg:
		m.busy = false
		m.err = msg.err
		m.status = ""
		m.result.Action = msg.action

		return m, nil
	}

	var cmd tea.Cmd

	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return m, cmd
}

func (m DialogModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case shared.KeyCtrlC, shared.KeyEsc:
		m.result.Action = ActionCancel

		return m, tea.Quit
	case shared.KeyCtrlS:
		return m.startSave(ActionSaveIncrement)
	case shared.KeyCtrlW:
		return m.startSave(ActionSave)
	case "tab", "enter":
		return m.moveFocus(1)
	case "shift+tab":
		return m.moveFocus(-1)
	case "up":
		if m.focus == FieldVersion {
			return m.bumpVersion(1), nil
		}

		return m.moveFocus(-1)
	case "down":
		if m.focus == FieldVersion {
			return m.bumpVersion(-1), nil
		}

		return m.moveFocus(1)
	}

	var cmd tea.Cmd

	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return m, cmd
}

func (m DialogModel) handleSaved(msg savedMsg) DialogModel {
	m.busy = false
	m.err = nil
	m.scene = msg.path
	m.result.Action = msg.action
	m.result.Path = msg.path
	m.result.Record = msg.record
	m.result.Saves++

	if msg.action == ActionSaveIncrement {
		m.inputs[FieldVersion].SetValue(strconv.Itoa(msg.record.Version))
	}

	m.status = "Saved " + m.display(msg.path)

	return m
}

func (m DialogModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()

	m.focus = Field((int(m.focus) + delta + int(fieldCount)) % int(fieldCount))

	return m, m.inputs[m.focus].Focus()
}

// bumpVersion steps the version field, never going below 1.
func (m DialogModel) bumpVersion(delta int) DialogModel {
	version, err := strconv.Atoi(strings.TrimSpace(m.inputs[FieldVersion].Value()))
	if err != nil {
		version = 0
	}

	version = max(version+delta, 1)

	m.inputs[FieldVersion].SetValue(strconv.Itoa(version))

	return m
}

func (m DialogModel) startSave(action Action) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	rec, err := m.Record()
	if err != nil {
		m.err = err
		m.status = ""

		return m, nil
	}

	m.busy = true
	m.err = nil
	m.status = "Saving..."

	return m, saveCmd(m.saver, action, rec, m.scene, m.timeout)
}

func saveCmd(saver Saver, action Action, rec scenefile.Record, scene string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if timeout > 0 {
			var cancel context.CancelFunc

			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if action == ActionSave {
			path, err := saver.Save(ctx, rec, scene)
			if err != nil {
				return saveFailedMsg{action: action, err: err}
			}

			return savedMsg{action: action, record: rec, path: path}
		}

		next, path, err := saver.SaveIncrement(ctx, rec, scene)
		if err != nil {
			return saveFailedMsg{action: action, err: err}
		}

		return savedMsg{action: action, record: next, path: path}
	}
}
