package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapcheck/internal/testutil"
)

// writeFiles creates the given files under a temp root and returns the
// discovered FileInfo set in sorted order.
func writeFiles(t *testing.T, files map[string]string) []FileInfo {
	t.Helper()
	root := t.TempDir()
	var infos []FileInfo
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o750))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o600))
	}
	// Stable file order, mirroring discovery
	for _, rel := range sortedKeys(files) {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		st, err := os.Stat(abs)
		require.NoError(t, err)
		infos = append(infos, FileInfo{Path: abs, RelPath: rel, Size: st.Size()})
	}
	return infos
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			if keys[j] < keys[i] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return keys
}

// flagLine returns a rule that reports every line containing the needle.
func flagLine(id, needle string) RuleDef {
	return RuleDef{
		ID:       id,
		Name:     "test." + id,
		Group:    "test",
		Severity: SeverityWarning,
		Selector: ByExtension(".txt"),
		Check: func(file File, _ map[string]any) []Violation {
			var out []Violation
			line := 0
			start := 0
			content := string(file.Content)
			for i := 0; i <= len(content); i++ {
				if i == len(content) || content[i] == '\n' {
					line++
					if containsStr(content[start:i], needle) {
						out = append(out, Violation{Line: line, Message: "found " + needle})
					}
					start = i + 1
				}
			}
			return out
		},
	}
}

func containsStr(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func TestRunnerCanonicalOrdering(t *testing.T) {
	files := writeFiles(t, map[string]string{
		"b.txt": "needle\nneedle\n",
		"a.txt": "needle\n",
	})
	reg := NewRegistry()
	require.NoError(t, reg.Register(flagLine("second", "needle")))
	require.NoError(t, reg.Register(flagLine("first", "needle")))

	res, err := NewRunner(nil, nil).Run(context.Background(), files, reg)
	require.NoError(t, err)

	// Rule order is registration order (second before first), file order
	// is file-set order (a before b), lines ascend within a file.
	var got []string
	for _, v := range res.Violations {
		got = append(got, fmt.Sprintf("%s/%s:%d", v.RuleID, v.Path, v.Line))
	}
	assert.Equal(t, []string{
		"second/a.txt:1",
		"second/b.txt:1",
		"second/b.txt:2",
		"first/a.txt:1",
		"first/b.txt:1",
		"first/b.txt:2",
	}, got)
}

func TestRunnerDeterminism(t *testing.T) {
	files := writeFiles(t, map[string]string{
		"a.txt": "needle here\n",
		"b.txt": "clean\nneedle\n",
		"c.txt": "needle\nneedle\nneedle\n",
	})
	reg := NewRegistry()
	require.NoError(t, reg.Register(flagLine("r1", "needle")))
	require.NoError(t, reg.Register(flagLine("r2", "needle")))

	cfg := NewConfig()
	cfg.Workers = 4

	first, err := NewRunner(cfg, testutil.NewTestLogger(t)).Run(context.Background(), files, reg)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := NewRunner(cfg, nil).Run(context.Background(), files, reg)
		require.NoError(t, err)
		assert.Equal(t, first.Violations, again.Violations)
	}
}

func TestRunnerDisabledRuleProducesNoViolations(t *testing.T) {
	files := writeFiles(t, map[string]string{"a.txt": "needle\n"})
	reg := NewRegistry()
	require.NoError(t, reg.Register(flagLine("silenced", "needle")))
	require.NoError(t, reg.Register(flagLine("active", "needle")))
	require.NoError(t, reg.Disable("silenced"))

	res, err := NewRunner(nil, nil).Run(context.Background(), files, reg)
	require.NoError(t, err)

	assert.Equal(t, 1, res.RulesExecuted)
	for _, v := range res.Violations {
		assert.NotEqual(t, "silenced", v.RuleID)
	}
	assert.Len(t, res.Violations, 1)
}

func TestRunnerConfigDisableAlsoSkips(t *testing.T) {
	files := writeFiles(t, map[string]string{"a.txt": "needle\n"})
	reg := NewRegistry()
	require.NoError(t, reg.Register(flagLine("skipme", "needle")))

	cfg := NewConfig()
	cfg.Disable("skipme")

	res, err := NewRunner(cfg, nil).Run(context.Background(), files, reg)
	require.NoError(t, err)
	assert.Empty(t, res.Violations)
	assert.Equal(t, 0, res.RulesExecuted)
}

func TestRunnerConvertsPanicsToInternalErrorViolations(t *testing.T) {
	files := writeFiles(t, map[string]string{
		"a.txt": "x",
		"b.txt": "y",
		"c.txt": "z",
	})
	reg := NewRegistry()
	broken := testRule("always-faults")
	broken.Check = func(_ File, _ map[string]any) []Violation {
		panic("boom")
	}
	broken.Selector = ByExtension(".txt")
	require.NoError(t, reg.Register(broken))

	runner := NewRunner(nil, testutil.NewTestLogger(t))
	res, err := runner.Run(context.Background(), files, reg)
	require.NoError(t, err)

	// One internal-error violation per file, and the run still completes.
	require.Len(t, res.Violations, 3)
	for i, v := range res.Violations {
		assert.Equal(t, InternalErrorRuleID, v.RuleID)
		assert.Equal(t, files[i].RelPath, v.Path)
		assert.Equal(t, SeverityError, v.Severity)
		assert.Contains(t, v.Message, "always-faults")
	}
	assert.Equal(t, StateCompleted, runner.State())
	assert.False(t, res.Incomplete)
}

func TestRunnerCancellation(t *testing.T) {
	files := writeFiles(t, map[string]string{"a.txt": "needle\n", "b.txt": "needle\n"})
	reg := NewRegistry()
	require.NoError(t, reg.Register(flagLine("r", "needle")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(nil, nil)
	res, err := runner.Run(ctx, files, reg)
	require.NoError(t, err)

	assert.True(t, res.Incomplete)
	assert.Equal(t, StateCancelled, runner.State())
	assert.Empty(t, res.Violations)
}

func TestRunnerCancelledResultIsSubsetOfFullRun(t *testing.T) {
	files := writeFiles(t, map[string]string{
		"a.txt": "needle\n",
		"b.txt": "needle\n",
		"c.txt": "needle\n",
	})
	reg := NewRegistry()
	require.NoError(t, reg.Register(flagLine("r", "needle")))

	full, err := NewRunner(nil, nil).Run(context.Background(), files, reg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	partial, err := NewRunner(nil, nil).Run(ctx, files, reg)
	require.NoError(t, err)

	// Everything in the partial result appears in the full result in the
	// same relative order.
	i := 0
	for _, v := range partial.Violations {
		for i < len(full.Violations) && full.Violations[i] != v {
			i++
		}
		require.Less(t, i, len(full.Violations), "partial violation missing from full run: %+v", v)
		i++
	}
}

func TestRunnerIsSingleUse(t *testing.T) {
	files := writeFiles(t, map[string]string{"a.txt": "x"})
	reg := NewRegistry()
	require.NoError(t, reg.Register(testRule("noop")))

	runner := NewRunner(nil, nil)
	assert.Equal(t, StateIdle, runner.State())

	_, err := runner.Run(context.Background(), files, reg)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, runner.State())

	_, err = runner.Run(context.Background(), files, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completed")
}

func TestRunnerAppliesSeverityOverrides(t *testing.T) {
	files := writeFiles(t, map[string]string{"a.txt": "needle\n"})
	reg := NewRegistry()
	require.NoError(t, reg.Register(flagLine("tuned", "needle")))

	cfg := NewConfig()
	cfg.SetSeverity("tuned", SeverityHint)

	res, err := NewRunner(cfg, nil).Run(context.Background(), files, reg)
	require.NoError(t, err)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, SeverityHint, res.Violations[0].Severity)
}

func TestRunnerFileSetRule(t *testing.T) {
	files := writeFiles(t, map[string]string{
		"Readme.md": "a",
		"readme.md": "b",
		"other.md":  "c",
	})
	reg := NewRegistry()
	require.NoError(t, reg.Register(RuleDef{
		ID:       "names",
		Name:     "test.names",
		Group:    "test",
		Severity: SeverityError,
		CheckFileSet: func(fs []FileInfo, _ map[string]any) []Violation {
			return []Violation{{Path: fs[len(fs)-1].RelPath, Message: "last file flagged"}}
		},
	}))

	res, err := NewRunner(nil, nil).Run(context.Background(), files, reg)
	require.NoError(t, err)
	require.Len(t, res.Violations, 1)
	// Runner fills in the rule ID the check left blank.
	assert.Equal(t, "names", res.Violations[0].RuleID)
	assert.Equal(t, "readme.md", res.Violations[0].Path)
}
