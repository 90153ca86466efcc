package hygiene

import (
	"bytes"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func init() {
	check.MustRegister(MergeConflict)
}

// MergeConflict reports leftover merge conflict markers.
var MergeConflict = check.RuleDef{
	ID:          "merge-conflict",
	Name:        "hygiene.merge_conflict",
	Group:       "hygiene",
	Description: "Files must not contain merge conflict markers",
	Severity:    check.SeverityError,
	Selector:    check.MatchAll(),
	Check:       checkMergeConflict,
}

var conflictMarkers = [][]byte{
	[]byte("<<<<<<< "),
	[]byte(">>>>>>> "),
	[]byte("=======\n"),
	[]byte("=======\r\n"),
}

func checkMergeConflict(file check.File, _ map[string]any) []check.Violation {
	if isBinary(file.Content) {
		return nil
	}
	var violations []check.Violation
	for i, line := range lines(file.Content) {
		withNL := append(append([]byte{}, line...), '\n')
		for _, marker := range conflictMarkers {
			if bytes.HasPrefix(withNL, marker) {
				violations = append(violations, check.Violation{
					RuleID:   "merge-conflict",
					Severity: check.SeverityError,
					Line:     i + 1,
					Message:  "merge conflict marker found",
				})
				break
			}
		}
	}
	return violations
}
