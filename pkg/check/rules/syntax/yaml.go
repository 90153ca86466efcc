package syntax

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func init() {
	check.MustRegister(YAMLValid)
}

// YAMLValid reports YAML files that fail to parse.
var YAMLValid = check.RuleDef{
	ID:          "check-yaml",
	Name:        "syntax.yaml",
	Group:       "syntax",
	Description: "YAML files must parse",
	Severity:    check.SeverityError,
	Selector:    check.ByExtension(".yaml", ".yml"),
	Check:       checkYAML,
}

func checkYAML(file check.File, _ map[string]any) []check.Violation {
	var node yaml.Node
	err := yaml.Unmarshal(file.Content, &node)
	if err == nil {
		return nil
	}
	return []check.Violation{{
		RuleID:   "check-yaml",
		Severity: check.SeverityError,
		Message:  fmt.Sprintf("invalid YAML: %v", err),
	}}
}
