package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapcheck/internal/cli/output"
	"github.com/leapstack-labs/leapcheck/pkg/check"
	_ "github.com/leapstack-labs/leapcheck/pkg/check/rules" // register built-in rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group  string // Filter by group
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available conformance rules",
		Long: `List all available conformance rules with their documentation.

Rules are organized by group (syntax, hygiene, secrets). Pass a rule ID
to show details for a single rule.`,
		Example: `  # List all rules
  leapcheck rules

  # Show details for a specific rule
  leapcheck rules check-toml

  # List rules in the hygiene group
  leapcheck rules --group hygiene

  # Output as JSON
  leapcheck rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// ruleInfo is the JSON shape of one rule's metadata.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Group       string   `json:"group"`
	Description string   `json:"description"`
	Severity    string   `json:"default_severity"`
	ConfigKeys  []string `json:"config_keys,omitempty"`
	Scope       string   `json:"scope"` // "file" or "file-set"
}

func infoFor(rule check.RuleDef) ruleInfo {
	scope := "file"
	if rule.Check == nil {
		scope = "file-set"
	}
	return ruleInfo{
		ID:          rule.ID,
		Name:        rule.Name,
		Group:       rule.Group,
		Description: rule.Description,
		Severity:    rule.Severity.String(),
		ConfigKeys:  rule.ConfigKeys,
		Scope:       scope,
	}
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rules := check.Builtins()
	if opts.Group != "" {
		filtered := rules[:0]
		for _, rule := range rules {
			if strings.EqualFold(rule.Group, opts.Group) {
				filtered = append(filtered, rule)
			}
		}
		rules = filtered
	}

	if r.EffectiveMode() == output.ModeJSON {
		infos := make([]ruleInfo, len(rules))
		for i, rule := range rules {
			infos[i] = infoFor(rule)
		}
		return r.JSON(infos)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"ID", "Group", "Severity", "Description"})
	for _, rule := range rules {
		t.AppendRow(table.Row{rule.ID, rule.Group, rule.Severity.String(), rule.Description})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	r.Printf("\n%d rules\n", len(rules))
	return nil
}

func showRule(cmd *cobra.Command, id string, opts *RulesOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rule, err := check.DefaultRegistry().Get(id)
	if err != nil {
		return err
	}
	info := infoFor(rule)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(info)
	}

	r.Println(r.Styles().Bold.Render(info.ID) + "  " + r.Styles().Muted.Render(info.Name))
	r.Println("")
	r.Printf("  Group:    %s\n", info.Group)
	r.Printf("  Severity: %s\n", info.Severity)
	r.Printf("  Scope:    %s\n", info.Scope)
	if len(info.ConfigKeys) > 0 {
		r.Printf("  Options:  %s\n", strings.Join(info.ConfigKeys, ", "))
	}
	r.Println("")
	r.Println(fmt.Sprintf("  %s", info.Description))
	return nil
}
