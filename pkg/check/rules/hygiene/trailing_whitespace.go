package hygiene

import (
	"bytes"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func init() {
	check.MustRegister(TrailingWhitespace)
}

// TrailingWhitespace reports lines ending in spaces or tabs.
var TrailingWhitespace = check.RuleDef{
	ID:          "trailing-whitespace",
	Name:        "hygiene.trailing_whitespace",
	Group:       "hygiene",
	Description: "Lines must not end with whitespace",
	Severity:    check.SeverityWarning,
	Selector:    check.MatchAll(),
	Check:       checkTrailingWhitespace,
}

func checkTrailingWhitespace(file check.File, _ map[string]any) []check.Violation {
	if isBinary(file.Content) {
		return nil
	}
	var violations []check.Violation
	for i, line := range lines(file.Content) {
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(line) == 0 {
			continue
		}
		last := line[len(line)-1]
		if last == ' ' || last == '\t' {
			violations = append(violations, check.Violation{
				RuleID:   "trailing-whitespace",
				Severity: check.SeverityWarning,
				Line:     i + 1,
				Message:  "trailing whitespace",
			})
		}
	}
	return violations
}
