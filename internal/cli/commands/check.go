package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcheck/internal/cli/config"
	"github.com/leapstack-labs/leapcheck/internal/cli/output"
	"github.com/leapstack-labs/leapcheck/internal/walker"
	"github.com/leapstack-labs/leapcheck/pkg/check"
	_ "github.com/leapstack-labs/leapcheck/pkg/check/rules" // register built-in rules
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Path     string   // Root directory to check
	Format   string   // Output format: text, json
	Disable  []string // Rule IDs to disable
	Rules    []string // Run only specific rules
	Severity string   // Minimum severity to display: error, warning, info, hint
	Watch    bool     // Re-run on file changes
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{Path: "."}
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Run conformance rules against a file tree",
		Long: `Run all enabled conformance rules against the files under a root
directory and report violations.

Rules can be configured in leapcheck.yaml. The command exits 0 only when
the run completed and found no violations.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check the current directory
  leapcheck check

  # Check a specific path
  leapcheck check ./configs

  # Output as JSON
  leapcheck check --format json

  # Disable specific rules
  leapcheck check --disable trailing-whitespace,large-files

  # Run only specific rules
  leapcheck check --rule check-toml --rule check-yaml

  # Re-run whenever files change
  leapcheck check --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity to display: error, warning, info, hint")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run when files change")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if opts.Watch {
		return watchAndCheck(cmd.Context(), cmdCtx, r, opts)
	}

	summary, err := executeCheck(cmd.Context(), cmdCtx, r, opts)
	if err != nil {
		return err
	}
	if !summary.Pass {
		return fmt.Errorf("conformance check failed")
	}
	return nil
}

// executeCheck performs one full discover-run-report cycle.
func executeCheck(ctx context.Context, cmdCtx *CommandContext, r *output.Renderer, opts *CheckOptions) (check.Summary, error) {
	cfg := cmdCtx.Cfg

	// Discover the file set
	discovered, err := walker.Discover(opts.Path, walker.Options{Exclude: cfg.Exclude})
	if err != nil {
		return check.Summary{}, fmt.Errorf("failed to discover files: %w", err)
	}
	cmdCtx.Logger.Debug("discovery finished",
		"root", discovered.Root, "files", len(discovered.Files), "duration", discovered.Duration)
	for _, walkErr := range discovered.Errors {
		cmdCtx.Logger.Warn("discovery error", "path", walkErr.Path, "error", walkErr.Message)
	}

	// Build registry and run config from project config + CLI flags
	reg := check.DefaultRegistry()
	checkCfg, err := buildCheckConfig(cfg, opts, reg)
	if err != nil {
		return check.Summary{}, err
	}

	runner := check.NewRunner(checkCfg, cmdCtx.Logger)
	result, err := runner.Run(ctx, discovered.Files, reg)
	if err != nil {
		return check.Summary{}, err
	}

	summary := check.Report(result)
	renderCheckResults(r, result, summary, opts.Severity)
	return summary, nil
}

// buildCheckConfig merges project config (lower precedence) with CLI flags.
func buildCheckConfig(cfg *config.Config, opts *CheckOptions, reg *check.Registry) (*check.Config, error) {
	checkCfg := check.NewConfig()
	checkCfg.Workers = cfg.Workers

	// Apply project config first (lower precedence)
	if cfg.Check != nil {
		for _, id := range cfg.Check.Disabled {
			checkCfg.Disable(strings.TrimSpace(id))
		}
		for id, name := range cfg.Check.Severity {
			if sev, ok := check.ParseSeverity(name); ok {
				checkCfg.SetSeverity(id, sev)
			}
		}
		for id, ruleOpts := range cfg.Check.Rules {
			checkCfg.SetRuleOptions(id, ruleOpts)
		}
	}

	// Apply CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		checkCfg.Disable(strings.TrimSpace(id))
	}

	// If --rule specified, run only those; unknown IDs are a usage error
	if len(opts.Rules) > 0 {
		enabled := make(map[string]bool, len(opts.Rules))
		for _, id := range opts.Rules {
			id = strings.TrimSpace(id)
			if _, err := reg.Get(id); err != nil {
				return nil, err
			}
			enabled[id] = true
		}
		for _, rule := range reg.Rules() {
			if !enabled[rule.ID] {
				checkCfg.Disable(rule.ID)
			}
		}
	}

	return checkCfg, nil
}

// checkViolation is the JSON shape of one violation.
type checkViolation struct {
	RuleID   string `json:"rule_id"`
	Path     string `json:"path"`
	Line     int    `json:"line,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// checkOutput is the JSON shape of a whole run.
type checkOutput struct {
	Summary    check.Summary    `json:"summary"`
	Violations []checkViolation `json:"violations"`
}

func renderCheckResults(r *output.Renderer, result *check.RunResult, summary check.Summary, minSeverity string) {
	threshold, ok := check.ParseSeverity(minSeverity)
	if !ok {
		threshold = check.SeverityHint
	}

	if r.EffectiveMode() == output.ModeJSON {
		out := checkOutput{Summary: summary, Violations: []checkViolation{}}
		for _, v := range result.Violations {
			if v.Severity > threshold {
				continue
			}
			out.Violations = append(out.Violations, checkViolation{
				RuleID:   v.RuleID,
				Path:     v.Path,
				Line:     v.Line,
				Severity: v.Severity.String(),
				Message:  v.Message,
			})
		}
		_ = r.JSON(out)
		return
	}

	if summary.Pass {
		r.Success(fmt.Sprintf("No violations in %d files (%d rules)", summary.FilesScanned, summary.RulesExecuted))
		return
	}

	// Group violations by file; the canonical order makes the grouping
	// stable without re-sorting.
	lastPath := ""
	for _, v := range result.Violations {
		if v.Severity > threshold {
			continue
		}
		if v.Path != lastPath {
			if lastPath != "" {
				r.Println("")
			}
			path := v.Path
			if path == "" {
				path = "(file set)"
			}
			r.Println(r.Styles().FilePath.Render(path))
			lastPath = v.Path
		}
		loc := "-"
		if v.Line > 0 {
			loc = fmt.Sprintf("%d", v.Line)
		}
		r.Printf("  %s  %s  %s  %s\n",
			r.Styles().Muted.Render(fmt.Sprintf("%-5s", loc)),
			severityStyle(r, v.Severity),
			r.Styles().Bold.Render(v.RuleID),
			v.Message,
		)
	}
	r.Println("")

	// Print summary
	summaryParts := []string{fmt.Sprintf("%d violations", summary.TotalViolations)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Infos > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Infos))
	}
	if summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", summary.Hints))
	}
	r.Printf("Summary: %s in %d files, %d rules\n",
		strings.Join(summaryParts, ", "), summary.FilesScanned, summary.RulesExecuted)
	if summary.Incomplete {
		r.Println(r.Styles().Warning.Render("Run was cancelled before completion; results are partial."))
	}
}

func severityStyle(r *output.Renderer, sev check.Severity) string {
	switch sev {
	case check.SeverityError:
		return r.Styles().Error.Render("error  ")
	case check.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case check.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case check.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}
