package scenefile

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match is a listing entry that names a version of a record.
type Match struct {
	Name    string
	Version int
}

// Option configures a Scanner.
type Option func(*Scanner)

// Scanner finds existing versions of a record in a directory listing.
//
// Entries are matched against the glob "{descriptor}_{task}_v*{extension}".
// Matching is case-sensitive unless WithCaseInsensitive is given. Entries that
// match the glob but carry no usable version number are skipped with a
// warning on the scanner's logger.
type Scanner struct {
	caseInsensitive bool
	logger          *slog.Logger
}

// NewScanner creates a Scanner. Without options it matches case-sensitively
// and discards diagnostics.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithCaseInsensitive folds entry names and the pattern to lower case before
// matching, for folders on case-insensitive filesystems.
func WithCaseInsensitive() Option {
	return func(s *Scanner) {
		s.caseInsensitive = true
	}
}

// WithLogger sets the logger that receives skipped-entry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NextAvailableVersion returns one past the highest version of r found in
// listing, or 1 when there is none. The version of r itself is ignored.
func NextAvailableVersion(r Record, listing []string) int {
	return NewScanner().NextAvailableVersion(r, listing)
}

// CaseInsensitive reports whether the scanner folds case.
func (s *Scanner) CaseInsensitive() bool {
	return s.caseInsensitive
}

// NextAvailableVersion returns one past the highest version of r found in
// listing, or 1 when there is none. Gaps are never filled.
func (s *Scanner) NextAvailableVersion(r Record, listing []string) int {
	highest := 0
	s.each(r, listing, func(m Match) {
		if m.Version > highest {
			highest = m.Version
		}
	})

	return highest + 1
}

// Pattern returns the glob used to match versions of r. Glob metacharacters
// inside the record's fields are escaped.
func (s *Scanner) Pattern(r Record) string {
	pattern := escapeGlob(r.Descriptor) + FieldSeparator + escapeGlob(r.Task) + FieldSeparator +
		VersionPrefix + "*" + escapeGlob(r.Extension)
	if s.caseInsensitive {
		return strings.ToLower(pattern)
	}

	return pattern
}

// Versions returns every version of r found in listing, ordered by version
// and then by name.
func (s *Scanner) Versions(r Record, listing []string) []Match {
	var matches []Match
	s.each(r, listing, func(m Match) {
		matches = append(matches, m)
	})

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Version != matches[j].Version {
			return matches[i].Version < matches[j].Version
		}

		return matches[i].Name < matches[j].Name
	})

	return matches
}

// each calls fn for every listing entry that matches r and has a usable
// version number.
func (s *Scanner) each(r Record, listing []string, fn func(Match)) {
	pattern := s.Pattern(r)
	ext := r.Extension
	if s.caseInsensitive {
		ext = strings.ToLower(ext)
	}

	for _, entry := range listing {
		name := baseName(entry)
		if name == "" {
			continue
		}

		candidate := name
		if s.caseInsensitive {
			candidate = strings.ToLower(name)
		}

		matched, err := doublestar.Match(pattern, candidate)
		if err != nil || !matched {
			continue
		}

		version, reason := extractVersion(strings.TrimSuffix(candidate, ext))
		if reason != "" {
			s.logger.Warn("skipping malformed scene file entry", "entry", name, "reason", reason)
			continue
		}

		fn(Match{Name: name, Version: version})
	}
}

// extractVersion parses the digit run after the last "_v" of stem.
func extractVersion(stem string) (int, string) {
	idx := strings.LastIndex(stem, FieldSeparator+VersionPrefix)
	if idx < 0 {
		return 0, "missing version token"
	}

	digits := stem[idx+len(FieldSeparator)+len(VersionPrefix):]
	if !digitsPattern.MatchString(digits) {
		return 0, "version is not a run of digits"
	}

	version, reason := parseVersionDigits(digits)
	if reason == "" && version == math.MaxInt {
		return 0, "version has no successor"
	}

	return version, reason
}

func baseName(entry string) string {
	if idx := strings.LastIndexFunc(entry, isSeparatorRune); idx >= 0 {
		return entry[idx+1:]
	}

	return entry
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}

	return b.String()
}
