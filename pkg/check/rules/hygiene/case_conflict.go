package hygiene

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func init() {
	check.MustRegister(CaseConflict)
}

// CaseConflict reports paths that would collide on a case-insensitive
// filesystem. It is a file-set rule: it inspects names, not contents.
var CaseConflict = check.RuleDef{
	ID:           "case-conflict",
	Name:         "hygiene.case_conflict",
	Group:        "hygiene",
	Description:  "Paths must not collide on case-insensitive filesystems",
	Severity:     check.SeverityError,
	CheckFileSet: checkCaseConflict,
}

func checkCaseConflict(files []check.FileInfo, _ map[string]any) []check.Violation {
	seen := make(map[string]string, len(files))
	var violations []check.Violation
	for _, f := range files {
		folded := strings.ToLower(f.RelPath)
		if first, ok := seen[folded]; ok {
			violations = append(violations, check.Violation{
				RuleID:   "case-conflict",
				Path:     f.RelPath,
				Severity: check.SeverityError,
				Message:  fmt.Sprintf("path conflicts with %q on case-insensitive filesystems", first),
			})
			continue
		}
		seen[folded] = f.RelPath
	}
	return violations
}
