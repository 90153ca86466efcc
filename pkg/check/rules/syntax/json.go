package syntax

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func init() {
	check.MustRegister(JSONValid)
}

// JSONValid reports JSON files that fail to parse.
var JSONValid = check.RuleDef{
	ID:          "check-json",
	Name:        "syntax.json",
	Group:       "syntax",
	Description: "JSON files must parse",
	Severity:    check.SeverityError,
	Selector:    check.ByExtension(".json"),
	Check:       checkJSON,
}

func checkJSON(file check.File, _ map[string]any) []check.Violation {
	var doc any
	err := json.Unmarshal(file.Content, &doc)
	if err == nil {
		return nil
	}

	line := 0
	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		line = lineAtOffset(file.Content, serr.Offset)
	}
	return []check.Violation{{
		RuleID:   "check-json",
		Severity: check.SeverityError,
		Line:     line,
		Message:  fmt.Sprintf("invalid JSON: %v", err),
	}}
}

// lineAtOffset converts a byte offset into a 1-based line number.
func lineAtOffset(content []byte, offset int64) int {
	if offset < 0 || offset > int64(len(content)) {
		return 0
	}
	return bytes.Count(content[:offset], []byte{'\n'}) + 1
}
