package shared

import (
	"fmt"
	"strings"

	"github.com/joe/smart-save/pkg/errors"
)

// ErrorConfig holds configuration for rendering a save error
type ErrorConfig struct {
	// Err is the error to display
	Err error

	// Path is the scene or folder the error concerns; may be empty
	Path string

	// MaxWidth is the maximum width for the error message; zero means unlimited
	MaxWidth int
}

// ErrorSymbol returns the styled marker shown in front of errors
func ErrorSymbol() string {
	return ErrorStyle().Render("✗")
}

// RenderSaveError renders an error with its actionable suggestions.
// Returns an empty string when there is no error.
func RenderSaveError(config ErrorConfig) string {
	if config.Err == nil {
		return ""
	}

	var builder strings.Builder

	enrichedErr := errors.NewEnricher().Enrich(config.Err, config.Path)

	errMsg := enrichedErr.Error()
	if config.MaxWidth > ellipsisLength && len(errMsg) > config.MaxWidth {
		errMsg = errMsg[:config.MaxWidth-ellipsisLength] + "..."
	}

	fmt.Fprintf(&builder, "%s %s\n", ErrorSymbol(), ErrorStyle().Render(errMsg))

	suggestions := errors.FormatSuggestions(enrichedErr)
	if suggestions != "" {
		fmt.Fprintf(&builder, "%s\n", DimStyle().Render(suggestions))
	}

	return builder.String()
}

const ellipsisLength = 3
