// Package errors provides actionable error handling with context-aware suggestions.
//
// This package enriches the errors a save can produce with a category and a
// short list of things the user can do about it. Typed scene-file errors
// (malformed names, invalid fields, missing folders) are recognised first;
// everything else is categorised by matching the message text.
//
// Basic Usage:
//
//	enricher := errors.NewEnricher()
//	_, err := session.SaveIncrement(ctx, rec, scene)
//	if err != nil {
//	    actionableErr := enricher.Enrich(err, rec.FolderPath)
//	    fmt.Println(actionableErr.Error())
//	    fmt.Println(errors.FormatSuggestions(actionableErr))
//	}
//
// The enricher extracts paths from error messages when none is given:
//
//	err := errors.New("open /proj/scenes/main_model_v001.ma: permission denied")
//	enriched := enricher.Enrich(err, "") // path is /proj/scenes/main_model_v001.ma
package errors

import "strings"

// Exported constants.
const (
	CategoryConnection    ErrorCategory = "connection"
	CategoryDiskSpace     ErrorCategory = "disk_space"
	CategoryInvalidField  ErrorCategory = "invalid_field"
	CategoryLocked        ErrorCategory = "locked"
	CategoryMalformedName ErrorCategory = "malformed_name"
	CategoryMissingFolder ErrorCategory = "missing_folder"
	CategoryPath          ErrorCategory = "path"
	CategoryPermission    ErrorCategory = "permission"
	CategoryUnknown       ErrorCategory = "unknown"
)

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	OriginalError() string
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError creates a new ActionableError with the given details.
func NewActionableError(
	originalError string,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		originalError: originalError,
		category:      category,
		suggestions:   suggestions,
		affectedPath:  affectedPath,
	}
}

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// FormatSuggestions formats the suggestions from an ActionableError as a bulleted list.
// Returns empty string if the error is nil or has no suggestions.
func FormatSuggestions(err error) string {
	if err == nil {
		return ""
	}

	actionable, ok := err.(ActionableError)
	if !ok {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	originalError string
	category      ErrorCategory
	suggestions   []string
	affectedPath  string
	cause         error
}

// AffectedPath returns the file path affected by this error.
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	return e.originalError
}

// OriginalError returns the original error message.
func (e *actionableError) OriginalError() string {
	return e.originalError
}

// Suggestions returns the list of actionable suggestions.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}

// Unwrap returns the enriched error, nil for errors built by NewActionableError.
func (e *actionableError) Unwrap() error {
	return e.cause
}
