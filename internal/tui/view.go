package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joe/smart-save/internal/tui/shared"
	"github.com/joe/smart-save/pkg/scenefile"
)

// View implements tea.Model.
func (m DialogModel) View() string {
	var builder strings.Builder

	builder.WriteString(shared.RenderTitle("Smart Save"))
	builder.WriteString("\n")

	builder.WriteString(m.label(FieldFolder, "Folder"))
	builder.WriteString("\n")
	builder.WriteString(m.inputs[FieldFolder].View())
	builder.WriteString("\n\n")

	builder.WriteString(m.nameRow())
	builder.WriteString("\n\n")

	builder.WriteString(shared.RenderDim("File: " + m.preview()))
	builder.WriteString("\n\n")

	switch {
	case m.err != nil:
		builder.WriteString(shared.RenderSaveError(shared.ErrorConfig{
			Err:      m.err,
			MaxWidth: m.messageWidth(),
		}))
	case m.busy:
		builder.WriteString(shared.RenderWarning(m.status))
		builder.WriteString("\n")
	case m.status != "":
		builder.WriteString(shared.RenderSuccess(m.status))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(shared.RenderDim(
		"ctrl+s save increment • ctrl+w save • tab next field • ↑/↓ version • esc cancel"))

	return shared.RenderBox(builder.String())
}

func (m DialogModel) label(field Field, text string) string {
	if m.focus == field {
		return shared.FocusedStyle().Render(shared.PromptArrow + text)
	}

	return shared.RenderLabel("  " + text)
}

// nameRow lays the name fields out the way the file name reads:
// descriptor _ task _v version extension.
func (m DialogModel) nameRow() string {
	column := func(field Field, text string) string {
		return lipgloss.JoinVertical(lipgloss.Left, m.label(field, text), m.inputs[field].View())
	}

	separator := func(text string) string {
		return lipgloss.JoinVertical(lipgloss.Left, "", shared.RenderDim(text))
	}

	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		column(FieldDescriptor, "Descriptor"),
		separator(" "+scenefile.FieldSeparator+" "),
		column(FieldTask, "Task"),
		separator(" "+scenefile.FieldSeparator+scenefile.VersionPrefix),
		column(FieldVersion, "Version"),
		separator(m.extension),
	)
}

// preview renders the file the current fields name, or a hint when they
// do not form a valid record.
func (m DialogModel) preview() string {
	rec, err := m.Record()
	if err != nil {
		return "(incomplete)"
	}

	return m.display(rec.FullPath())
}

func (m DialogModel) messageWidth() int {
	if m.width == 0 {
		return 0
	}

	return max(m.width-4*shared.DefaultPadding, 0)
}
