package hygiene

import (
	"fmt"
	"regexp"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func init() {
	check.MustRegister(DebugStatements)
}

// DebugStatements reports debugger invocations and debug-print residue
// left in source files.
var DebugStatements = check.RuleDef{
	ID:          "debug-statements",
	Name:        "hygiene.debug_statements",
	Group:       "hygiene",
	Description: "Source files must not contain debugger residue",
	Severity:    check.SeverityWarning,
	Selector:    check.ByExtension(".py", ".js", ".ts", ".jsx", ".tsx", ".rb"),
	ConfigKeys:  []string{"patterns"},
	Check:       checkDebugStatements,
}

var defaultDebugPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:import|from)\s+i?pdb\b`),
	regexp.MustCompile(`\bi?pdb\.set_trace\(`),
	regexp.MustCompile(`\bbreakpoint\(\s*\)`),
	regexp.MustCompile(`^\s*debugger\b`),
	regexp.MustCompile(`\bbinding\.pry\b`),
}

func checkDebugStatements(file check.File, opts map[string]any) []check.Violation {
	patterns := defaultDebugPatterns
	for _, extra := range stringSliceOption(opts, "patterns") {
		// Extra patterns come from configuration; a bad pattern is a
		// configuration mistake, reported once per file.
		re, err := regexp.Compile(extra)
		if err != nil {
			return []check.Violation{{
				RuleID:   "debug-statements",
				Severity: check.SeverityError,
				Message:  fmt.Sprintf("invalid configured pattern %q: %v", extra, err),
			}}
		}
		patterns = append(patterns, re)
	}

	var violations []check.Violation
	for i, line := range lines(file.Content) {
		for _, re := range patterns {
			if re.Match(line) {
				violations = append(violations, check.Violation{
					RuleID:   "debug-statements",
					Severity: check.SeverityWarning,
					Line:     i + 1,
					Message:  fmt.Sprintf("debug statement matches %q", re.String()),
				})
				break
			}
		}
	}
	return violations
}

// stringSliceOption reads a []string option that may arrive as []any
// after YAML decoding.
func stringSliceOption(opts map[string]any, key string) []string {
	if opts == nil {
		return nil
	}
	switch v := opts[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
