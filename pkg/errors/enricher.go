package errors

import (
	"errors"
	"io/fs"
	"regexp"
	"strings"

	"github.com/joe/smart-save/pkg/scenefile"
)

// Enricher enriches standard errors with actionable suggestions.
type Enricher interface {
	Enrich(err error, affectedPath string) error
}

// NewEnricher creates a new Enricher with default pattern matcher and suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewPatternMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Compiled regexes shared across all enricher instances
	pathExtractionPatterns = []*regexp.Regexp{
		// Unix/Linux paths (absolute and relative)
		regexp.MustCompile(`\b\w+\s+([./][^\s:]+):`),
		// Windows paths with backslashes
		regexp.MustCompile(`\b\w+\s+([A-Za-z]:\\[^\s:]+):`),
		// Windows paths with forward slashes
		regexp.MustCompile(`\b\w+\s+([A-Za-z]:/[^\s:]+):`),
	}
)

// enricher is the concrete implementation of Enricher.
type enricher struct {
	matcher   PatternMatcher
	generator SuggestionGenerator
}

// Enrich takes an error and enriches it with category and actionable suggestions.
// If the error is already an ActionableError, it is returned unchanged.
// If affectedPath is empty, the path is taken from a typed scene-file error or
// extracted from the error message.
func (e *enricher) Enrich(err error, affectedPath string) error {
	if err == nil {
		return nil
	}

	var actionableErr ActionableError
	if errors.As(err, &actionableErr) {
		return actionableErr
	}

	errMsg := err.Error()

	category, typedPath := classify(err)
	if category == CategoryUnknown {
		category = e.matcher.Match(errMsg)
	}

	if affectedPath == "" {
		affectedPath = typedPath
	}

	if affectedPath == "" {
		affectedPath = extractPath(errMsg)
	}

	return &actionableError{
		originalError: errMsg,
		category:      category,
		suggestions:   e.generator.Generate(category, affectedPath),
		affectedPath:  affectedPath,
		cause:         err,
	}
}

// classify recognises the typed errors of the scenefile package and the
// io/fs sentinels, returning the category and the path the error names.
func classify(err error) (ErrorCategory, string) {
	var (
		dirErr   *scenefile.DirectoryNotFoundError
		nameErr  *scenefile.MalformedNameError
		fieldErr *scenefile.InvalidFieldError
	)

	switch {
	case errors.As(err, &dirErr):
		return CategoryMissingFolder, dirErr.Path
	case errors.As(err, &nameErr):
		return CategoryMalformedName, nameErr.Name
	case errors.As(err, &fieldErr):
		return CategoryInvalidField, ""
	case errors.Is(err, fs.ErrPermission):
		return CategoryPermission, ""
	case errors.Is(err, fs.ErrNotExist):
		return CategoryPath, ""
	default:
		return CategoryUnknown, ""
	}
}

// extractPath attempts to extract a file path from common Go error message formats.
// Returns empty string if no path is found.
//
// This function recognizes standard Go error formats like:
//   - "open /proj/scenes/main_model_v001.ma: permission denied"
//   - "stat /proj/scenes: no such file or directory"
func extractPath(errorMsg string) string {
	for _, pattern := range pathExtractionPatterns {
		if matches := pattern.FindStringSubmatch(errorMsg); len(matches) > 1 {
			path := strings.TrimSpace(matches[1])
			if path != "" {
				return path
			}
		}
	}

	return ""
}
