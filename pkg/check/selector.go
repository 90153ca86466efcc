package check

import (
	"path"
	"path/filepath"
	"strings"
)

// Selector declares which files a rule applies to. A file matches when any
// of the extension, base-name pattern, or predicate criteria match. The
// zero Selector matches nothing; use MatchAll for rules that see every file.
type Selector struct {
	// Extensions lists file extensions including the dot, e.g. ".toml".
	Extensions []string
	// BasePatterns lists filepath.Match patterns applied to the base name,
	// e.g. "pyproject.toml" or "*.lock".
	BasePatterns []string
	// All matches every file regardless of name.
	All bool
}

// MatchAll returns a selector that applies to every file.
func MatchAll() Selector { return Selector{All: true} }

// ByExtension returns a selector matching files with any of the given
// extensions (dot included, matched case-insensitively).
func ByExtension(exts ...string) Selector { return Selector{Extensions: exts} }

// ByBaseName returns a selector matching base names against
// filepath.Match patterns.
func ByBaseName(patterns ...string) Selector { return Selector{BasePatterns: patterns} }

// Matches reports whether the selector applies to the given relative path.
func (s Selector) Matches(relPath string) bool {
	if s.All {
		return true
	}
	base := path.Base(relPath)
	ext := strings.ToLower(path.Ext(base))
	for _, e := range s.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	for _, pat := range s.BasePatterns {
		if ok, err := filepath.Match(pat, base); err == nil && ok {
			return true
		}
	}
	return false
}
