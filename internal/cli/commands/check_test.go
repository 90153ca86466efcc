package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/internal/cli/config"
	"github.com/leapstack-labs/leapcheck/pkg/check"
)

func runCheckCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(config.ResetConfig)

	cmd := NewCheckCommand()
	// The real root command (internal/cli) sets SilenceUsage/SilenceErrors;
	// mirror that here since the subcommand is executed without its parent.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func checkTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o750))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o600))
	}
	return root
}

func TestCheckCommandCleanTree(t *testing.T) {
	root := checkTree(t, map[string]string{
		"a.toml": "[server]\nhost = \"localhost\"\n",
		"b.yaml": "name: ok\n",
	})

	out, err := runCheckCommand(t, root, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "No violations")
}

func TestCheckCommandReportsViolations(t *testing.T) {
	root := checkTree(t, map[string]string{
		"good.toml": "x = 1\n",
		"bad.toml":  "this is not toml\n",
	})

	out, err := runCheckCommand(t, root, "--format", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conformance check failed")
	assert.Contains(t, out, "bad.toml")
	assert.Contains(t, out, "check-toml")
	assert.Contains(t, out, "1 violations")
}

func TestCheckCommandJSONOutput(t *testing.T) {
	root := checkTree(t, map[string]string{
		"bad.json": "{broken\n",
	})

	out, err := runCheckCommand(t, root, "--format", "json")
	require.Error(t, err)

	var parsed struct {
		Summary struct {
			Pass            bool `json:"pass"`
			FilesScanned    int  `json:"files_scanned"`
			TotalViolations int  `json:"total_violations"`
		} `json:"summary"`
		Violations []struct {
			RuleID   string `json:"rule_id"`
			Path     string `json:"path"`
			Severity string `json:"severity"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.False(t, parsed.Summary.Pass)
	assert.Equal(t, 1, parsed.Summary.FilesScanned)
	assert.Equal(t, 1, parsed.Summary.TotalViolations)
	require.Len(t, parsed.Violations, 1)
	assert.Equal(t, "check-json", parsed.Violations[0].RuleID)
	assert.Equal(t, "bad.json", parsed.Violations[0].Path)
	assert.Equal(t, "error", parsed.Violations[0].Severity)
}

func TestCheckCommandDisableFlag(t *testing.T) {
	root := checkTree(t, map[string]string{
		"bad.toml": "this is not toml\n",
	})

	_, err := runCheckCommand(t, root, "--format", "text", "--disable", "check-toml")
	assert.NoError(t, err)
}

func TestCheckCommandRuleFlagLimitsRun(t *testing.T) {
	root := checkTree(t, map[string]string{
		"bad.toml": "this is not toml\n",
		"bad.yaml": "items: [1, 2\n",
	})

	out, err := runCheckCommand(t, root, "--format", "text", "--rule", "check-yaml")
	require.Error(t, err)
	assert.Contains(t, out, "check-yaml")
	assert.NotContains(t, out, "check-toml")
}

func TestCheckCommandUnknownRuleIsUsageError(t *testing.T) {
	root := checkTree(t, map[string]string{"a.txt": "x\n"})

	_, err := runCheckCommand(t, root, "--rule", "no-such-rule")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-rule")
}

func TestCheckCommandSeverityFilterAffectsDisplayNotExit(t *testing.T) {
	root := checkTree(t, map[string]string{
		"notes.txt": "trailing \n",
	})

	out, err := runCheckCommand(t, root, "--format", "json", "--severity", "error")
	require.Error(t, err, "warnings below the display threshold still fail the run")

	var parsed struct {
		Summary struct {
			TotalViolations int `json:"total_violations"`
		} `json:"summary"`
		Violations []any `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, 1, parsed.Summary.TotalViolations)
	assert.Empty(t, parsed.Violations)
}

func TestBuildCheckConfigMergesProjectAndFlags(t *testing.T) {
	t.Cleanup(config.ResetConfig)

	cfg := &config.Config{
		Workers: 2,
		Check: &config.CheckConfig{
			Disabled: []string{"large-files"},
			Severity: map[string]string{"trailing-whitespace": "hint"},
			Rules:    map[string]map[string]any{"large-files": {"max_bytes": 100}},
		},
	}
	opts := &CheckOptions{Disable: []string{" check-json "}}

	checkCfg, err := buildCheckConfig(cfg, opts, mustRegistry(t))
	require.NoError(t, err)

	assert.Equal(t, 2, checkCfg.Workers)
	assert.True(t, checkCfg.IsDisabled("large-files"))
	assert.True(t, checkCfg.IsDisabled("check-json"))
	assert.False(t, checkCfg.IsDisabled("check-toml"))
}

func mustRegistry(t *testing.T) *check.Registry {
	t.Helper()
	return check.DefaultRegistry()
}
