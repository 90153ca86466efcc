package secrets

import (
	"bytes"
	"regexp"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func init() {
	check.MustRegister(AWSAccessKey)
}

// AWSAccessKey reports AWS access key identifiers.
var AWSAccessKey = check.RuleDef{
	ID:          "aws-access-key",
	Name:        "secrets.aws_access_key",
	Group:       "secrets",
	Description: "Files must not contain AWS access key identifiers",
	Severity:    check.SeverityError,
	Selector:    check.MatchAll(),
	Check:       checkAWSAccessKey,
}

var awsAccessKeyID = regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`)

func checkAWSAccessKey(file check.File, _ map[string]any) []check.Violation {
	if bytes.IndexByte(file.Content, 0) >= 0 {
		return nil
	}
	var violations []check.Violation
	for i, line := range bytes.Split(file.Content, []byte{'\n'}) {
		if awsAccessKeyID.Match(line) {
			violations = append(violations, check.Violation{
				RuleID:   "aws-access-key",
				Severity: check.SeverityError,
				Line:     i + 1,
				Message:  "AWS access key ID detected",
			})
		}
	}
	return violations
}
