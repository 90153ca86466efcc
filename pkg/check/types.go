package check

import (
	"strings"
	"time"
)

// Severity indicates the importance of a violation.
type Severity int

// Severity levels, ordered from most to least severe.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity name to a Severity.
// Returns false if the name is not recognized.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, true
	case "warning", "warn":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return SeverityWarning, false
	}
}

// FileInfo identifies a file in the target file set.
type FileInfo struct {
	// Path is the absolute path on disk.
	Path string
	// RelPath is the path relative to the checked root, slash-separated.
	RelPath string
	// Size is the file size in bytes at discovery time.
	Size int64
}

// File is the per-file input handed to a rule's check function.
// Content is nil for rules that declared they only need metadata.
type File struct {
	Info    FileInfo
	Content []byte
}

// Violation is a single finding produced by a rule during a run.
type Violation struct {
	RuleID   string   `json:"rule_id"`
	Path     string   `json:"path"`           // relative path of the offending file
	Line     int      `json:"line,omitempty"` // 1-based; 0 means whole-file
	Severity Severity `json:"-"`
	Message  string   `json:"message"`
}

// RunResult is the outcome of one runner execution. Violations are
// append-only while the run is in flight and frozen in canonical
// (rule order, file order, line) order before the result is returned.
type RunResult struct {
	ID            string
	Violations    []Violation
	FilesScanned  int
	RulesExecuted int
	StartedAt     time.Time
	FinishedAt    time.Time

	// Incomplete is true when the run was cancelled before all
	// (rule, file) units were processed.
	Incomplete bool
}
