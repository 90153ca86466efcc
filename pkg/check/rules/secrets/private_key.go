package secrets

import (
	"bytes"
	"regexp"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func init() {
	check.MustRegister(PrivateKey)
}

// PrivateKey reports committed PEM private key blocks.
var PrivateKey = check.RuleDef{
	ID:          "private-key",
	Name:        "secrets.private_key",
	Group:       "secrets",
	Description: "Files must not contain private key material",
	Severity:    check.SeverityError,
	Selector:    check.MatchAll(),
	Check:       checkPrivateKey,
}

var privateKeyHeader = regexp.MustCompile(`-----BEGIN (?:RSA |DSA |EC |OPENSSH |PGP |ENCRYPTED )?PRIVATE KEY(?: BLOCK)?-----`)

func checkPrivateKey(file check.File, _ map[string]any) []check.Violation {
	if bytes.IndexByte(file.Content, 0) >= 0 {
		return nil
	}
	var violations []check.Violation
	for i, line := range bytes.Split(file.Content, []byte{'\n'}) {
		if privateKeyHeader.Match(line) {
			violations = append(violations, check.Violation{
				RuleID:   "private-key",
				Severity: check.SeverityError,
				Line:     i + 1,
				Message:  "private key detected",
			})
		}
	}
	return violations
}
