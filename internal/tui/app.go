package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the dialog until the user cancels it and returns what it did.
// The dialog is drawn on out, which is usually the terminal's stderr so that
// saved paths printed on stdout stay scriptable.
func Run(ctx context.Context, model DialogModel, in io.Reader, out io.Writer) (Result, error) {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := program.Run()
	if err != nil {
		return Result{}, fmt.Errorf("dialog failed: %w", err)
	}

	dialog, ok := final.(DialogModel)
	if !ok {
		return Result{}, fmt.Errorf("dialog returned unexpected model %T", final)
	}

	return dialog.Result(), nil
}
