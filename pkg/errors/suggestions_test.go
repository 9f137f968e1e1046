package errors_test

import (
	"strings"
	"testing"

	"github.com/joe/smart-save/pkg/errors"
)

func TestSuggestionGenerator_EveryCategoryHasSuggestions(t *testing.T) {
	t.Parallel()

	generator := errors.NewSuggestionGenerator()

	for _, category := range allCategories() {
		if suggestions := generator.Generate(category, ""); len(suggestions) == 0 {
			t.Errorf("expected suggestions for category %q", category)
		}
	}
}

func TestSuggestionGenerator_IncludesPath(t *testing.T) {
	t.Parallel()

	testCases := []errors.ErrorCategory{
		errors.CategoryDiskSpace,
		errors.CategoryLocked,
		errors.CategoryMalformedName,
		errors.CategoryMissingFolder,
		errors.CategoryPath,
		errors.CategoryPermission,
		errors.CategoryUnknown,
	}

	generator := errors.NewSuggestionGenerator()
	path := "/proj/scenes/main_model_v003.ma"

	for _, category := range testCases {
		t.Run(string(category), func(t *testing.T) {
			t.Parallel()

			suggestions := generator.Generate(category, path)
			if !anyContains(suggestions, path) {
				t.Errorf("expected a suggestion mentioning %q, got %v", path, suggestions)
			}
		})
	}
}

func TestSuggestionGenerator_EmptyPath(t *testing.T) {
	t.Parallel()

	generator := errors.NewSuggestionGenerator()

	suggestions := generator.Generate(errors.CategoryPath, "")
	if !anyContains(suggestions, "Ensure all parent directories exist") {
		t.Errorf("expected generic parent directory suggestion, got %v", suggestions)
	}

	for _, suggestion := range suggestions {
		if strings.HasSuffix(suggestion, ": ") {
			t.Errorf("suggestion has a dangling path placeholder: %q", suggestion)
		}
	}
}

func TestSuggestionGenerator_UnrecognisedCategory(t *testing.T) {
	t.Parallel()

	generator := errors.NewSuggestionGenerator()

	got := generator.Generate("made_up", "")
	want := generator.Generate(errors.CategoryUnknown, "")

	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected unknown suggestions %v, got %v", want, got)
	}
}

func anyContains(suggestions []string, substr string) bool {
	for _, suggestion := range suggestions {
		if strings.Contains(suggestion, substr) {
			return true
		}
	}

	return false
}
