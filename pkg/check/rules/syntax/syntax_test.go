package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func fileOf(rel, content string) check.File {
	return check.File{
		Info:    check.FileInfo{Path: "/tmp/" + rel, RelPath: rel, Size: int64(len(content))},
		Content: []byte(content),
	}
}

func TestCheckTOML(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
		line    int
	}{
		{name: "valid document", content: "[server]\nhost = \"localhost\"\nport = 8080\n", valid: true},
		{name: "empty file", content: "", valid: true},
		{name: "unterminated string", content: "key = \"oops\n", valid: false, line: 1},
		{name: "bad value on later line", content: "[a]\nx = 1\ny = !\n", valid: false, line: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := checkTOML(fileOf("cfg.toml", tt.content), nil)
			if tt.valid {
				assert.Empty(t, violations)
				return
			}
			require.Len(t, violations, 1)
			assert.Equal(t, "check-toml", violations[0].RuleID)
			assert.Equal(t, check.SeverityError, violations[0].Severity)
			assert.Equal(t, tt.line, violations[0].Line)
			assert.Contains(t, violations[0].Message, "invalid TOML")
		})
	}
}

func TestCheckYAML(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{name: "valid mapping", content: "name: leapcheck\nitems:\n  - one\n  - two\n", valid: true},
		{name: "empty file", content: "", valid: true},
		{name: "tab indentation", content: "key:\n\tvalue: 1\n", valid: false},
		{name: "unclosed flow sequence", content: "items: [1, 2\n", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := checkYAML(fileOf("cfg.yaml", tt.content), nil)
			if tt.valid {
				assert.Empty(t, violations)
				return
			}
			require.Len(t, violations, 1)
			assert.Equal(t, "check-yaml", violations[0].RuleID)
			assert.Contains(t, violations[0].Message, "invalid YAML")
		})
	}
}

func TestCheckJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
		line    int
	}{
		{name: "valid object", content: "{\n  \"a\": 1\n}\n", valid: true},
		{name: "trailing comma", content: "{\n  \"a\": 1,\n}\n", valid: false, line: 3},
		{name: "bare word", content: "nope\n", valid: false, line: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := checkJSON(fileOf("data.json", tt.content), nil)
			if tt.valid {
				assert.Empty(t, violations)
				return
			}
			require.Len(t, violations, 1)
			assert.Equal(t, "check-json", violations[0].RuleID)
			assert.Equal(t, tt.line, violations[0].Line)
		})
	}
}

func TestSelectorsTargetTheRightExtensions(t *testing.T) {
	assert.True(t, TOMLValid.Selector.Matches("dir/app.toml"))
	assert.False(t, TOMLValid.Selector.Matches("dir/app.yaml"))
	assert.True(t, YAMLValid.Selector.Matches("ci.yml"))
	assert.True(t, YAMLValid.Selector.Matches("ci.yaml"))
	assert.True(t, JSONValid.Selector.Matches("package.json"))
	assert.False(t, JSONValid.Selector.Matches("package.jsonc"))
}
