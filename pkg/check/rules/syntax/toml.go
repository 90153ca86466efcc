package syntax

import (
	"errors"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func init() {
	check.MustRegister(TOMLValid)
}

// TOMLValid reports TOML files that fail to parse.
var TOMLValid = check.RuleDef{
	ID:          "check-toml",
	Name:        "syntax.toml",
	Group:       "syntax",
	Description: "TOML files must parse",
	Severity:    check.SeverityError,
	Selector:    check.ByExtension(".toml"),
	Check:       checkTOML,
}

func checkTOML(file check.File, _ map[string]any) []check.Violation {
	var doc any
	err := toml.Unmarshal(file.Content, &doc)
	if err == nil {
		return nil
	}

	line := 0
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		line, _ = derr.Position()
	}
	return []check.Violation{{
		RuleID:   "check-toml",
		Severity: check.SeverityError,
		Line:     line,
		Message:  fmt.Sprintf("invalid TOML: %v", err),
	}}
}
