package hygiene

import (
	"fmt"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func init() {
	check.MustRegister(LargeFiles)
}

// defaultMaxBytes matches the conventional 500 KB pre-commit threshold.
const defaultMaxBytes int64 = 500 * 1024

// LargeFiles reports files above a size threshold.
var LargeFiles = check.RuleDef{
	ID:          "large-files",
	Name:        "hygiene.large_files",
	Group:       "hygiene",
	Description: "Files must stay below a size threshold",
	Severity:    check.SeverityWarning,
	Selector:    check.MatchAll(),
	ConfigKeys:  []string{"max_bytes"},
	Check:       checkLargeFiles,
}

func checkLargeFiles(file check.File, opts map[string]any) []check.Violation {
	max := intOption(opts, "max_bytes", defaultMaxBytes)
	if max <= 0 || file.Info.Size <= max {
		return nil
	}
	return []check.Violation{{
		RuleID:   "large-files",
		Severity: check.SeverityWarning,
		Message:  fmt.Sprintf("file is %d bytes (limit %d)", file.Info.Size, max),
	}}
}

// intOption reads an integer option that may arrive as int, int64, or
// float64 after YAML decoding.
func intOption(opts map[string]any, key string, def int64) int64 {
	if opts == nil {
		return def
	}
	switch v := opts[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return def
	}
}
