package hygiene

import (
	"bytes"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func init() {
	check.MustRegister(EndOfFileNewline)
}

// EndOfFileNewline reports files that do not end with exactly one newline.
var EndOfFileNewline = check.RuleDef{
	ID:          "end-of-file-newline",
	Name:        "hygiene.eof_newline",
	Group:       "hygiene",
	Description: "Files must end with exactly one newline",
	Severity:    check.SeverityWarning,
	Selector:    check.MatchAll(),
	Check:       checkEndOfFileNewline,
}

func checkEndOfFileNewline(file check.File, _ map[string]any) []check.Violation {
	content := file.Content
	if len(content) == 0 || isBinary(content) {
		return nil
	}
	lastLine := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		return []check.Violation{{
			RuleID:   "end-of-file-newline",
			Severity: check.SeverityWarning,
			Line:     lastLine + 1,
			Message:  "no newline at end of file",
		}}
	}
	if bytes.HasSuffix(content, []byte("\n\n")) {
		return []check.Violation{{
			RuleID:   "end-of-file-newline",
			Severity: check.SeverityWarning,
			Line:     lastLine,
			Message:  "multiple trailing newlines at end of file",
		}}
	}
	return nil
}
