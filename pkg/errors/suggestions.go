package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
//
//nolint:cyclop // One branch per category
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryConnection:
		return g.generateConnectionSuggestions(affectedPath)
	case CategoryDiskSpace:
		return g.generateDiskSpaceSuggestions(affectedPath)
	case CategoryInvalidField:
		return g.generateInvalidFieldSuggestions(affectedPath)
	case CategoryLocked:
		return g.generateLockedSuggestions(affectedPath)
	case CategoryMalformedName:
		return g.generateMalformedNameSuggestions(affectedPath)
	case CategoryMissingFolder:
		return g.generateMissingFolderSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateConnectionSuggestions(_ string) []string {
	return []string{
		"Check that the SFTP host is reachable and the port is correct",
		"Make sure your SSH agent is running or a key exists in ~/.ssh",
		"Add the host to ~/.ssh/known_hosts by connecting once with ssh",
	}
}

func (g *suggestionGenerator) generateDiskSpaceSuggestions(path string) []string {
	suggestions := []string{
		"Free up space on the device holding the scenes folder",
		"Check available space with 'df -h'",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify disk usage for the filesystem containing "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) generateInvalidFieldSuggestions(_ string) []string {
	return []string{
		"Descriptor and task must be non-empty and must not contain '_' or path separators",
		"Versions start at 1",
		"The extension must start with a single dot, e.g. .ma",
	}
}

func (g *suggestionGenerator) generateLockedSuggestions(path string) []string {
	suggestions := []string{
		"Another save of this scene is in progress",
		"Wait for it to finish or raise --lock-timeout",
	}

	if path != "" {
		suggestions = append(suggestions, "Remove a stale lock file only if no other save is running: "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) generateMalformedNameSuggestions(path string) []string {
	suggestions := []string{
		"Scene files must be named <descriptor>_<task>_v<NNN>.<ext>",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Rename %s to follow the convention, or save it with --descriptor and --task", path))
	}

	return suggestions
}

func (g *suggestionGenerator) generateMissingFolderSuggestions(path string) []string {
	suggestions := []string{
		"Create the scenes folder, or run without --strict-folder to treat it as empty",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the folder exists: "+path)
	}

	return suggestions
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the path exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the path exists: "+path)
		suggestions = append(suggestions, "Ensure all parent directories exist for "+path)
	} else {
		suggestions = append(suggestions, "Ensure all parent directories exist")
	}

	return suggestions
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Ensure you have read/write permissions for the scenes folder",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -la %s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -la' on the affected path")
	}

	return suggestions
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Run again with --log-level debug",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}
