// Package config provides configuration management for the leapcheck CLI.
// Configuration is layered: flags override environment variables, which
// override the leapcheck.yaml project file, which overrides defaults.
package config

// CheckConfig holds the check-specific block of the project file.
type CheckConfig struct {
	// Disabled lists rule IDs to skip.
	Disabled []string `koanf:"disabled"`
	// Severity maps rule IDs to severity override names.
	Severity map[string]string `koanf:"severity"`
	// Rules maps rule IDs to rule-specific options.
	Rules map[string]map[string]any `koanf:"rules"`
}

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool         `koanf:"verbose"`
	OutputFormat string       `koanf:"output"`
	Workers      int          `koanf:"workers"`
	Exclude      []string     `koanf:"exclude"`
	Check        *CheckConfig `koanf:"check"`
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
