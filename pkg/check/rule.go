package check

import "sync"

// InternalErrorRuleID is the reserved rule identifier used for synthetic
// violations produced when a rule's check function fails unexpectedly.
// It cannot be registered.
const InternalErrorRuleID = "internal-error"

// CheckFunc analyzes one file and returns violations.
// The opts parameter contains rule-specific options from configuration.
// Implementations must not mutate the file and must not panic on malformed
// input: a file the rule cannot interpret yields exactly one violation
// describing the parse failure.
type CheckFunc func(file File, opts map[string]any) []Violation

// FileSetCheckFunc analyzes the file set as a whole, seeing only file
// metadata. Used by filename-based rules such as case-conflict detection.
type FileSetCheckFunc func(files []FileInfo, opts map[string]any) []Violation

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the check function parameters.
// Exactly one of Check and CheckFileSet must be set.
type RuleDef struct {
	ID          string    // Unique identifier, e.g. "check-toml"
	Name        string    // Human-readable name, e.g. "syntax.toml"
	Group       string    // Category: "syntax", "hygiene", "secrets"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Selector    Selector  // Which files the rule applies to
	ConfigKeys  []string  // Configuration keys this rule accepts
	Check       CheckFunc // Per-file check function
	// CheckFileSet runs once per run over file metadata instead of
	// per file. The runner orders its violations by file as usual.
	CheckFileSet FileSetCheckFunc
}

// perFile reports whether the rule runs against individual file contents.
func (r RuleDef) perFile() bool { return r.Check != nil }

// builtins holds rules registered by rule packages at init time,
// in registration order.
var (
	builtinsMu   sync.Mutex
	builtins     []RuleDef
	builtinIndex = map[string]int{}
)

// MustRegister adds a built-in rule definition.
// Call this from init() functions in rule packages; it panics on a
// duplicate or reserved ID since that is a programming error.
func MustRegister(rule RuleDef) {
	builtinsMu.Lock()
	defer builtinsMu.Unlock()
	if err := validateRule(rule); err != nil {
		panic(err)
	}
	if _, ok := builtinIndex[rule.ID]; ok {
		panic(&DuplicateRuleError{ID: rule.ID})
	}
	builtinIndex[rule.ID] = len(builtins)
	builtins = append(builtins, rule)
}

// Builtins returns all built-in rules in registration order.
func Builtins() []RuleDef {
	builtinsMu.Lock()
	defer builtinsMu.Unlock()
	out := make([]RuleDef, len(builtins))
	copy(out, builtins)
	return out
}

// DefaultRegistry returns a fresh registry populated with all built-in
// rules, all enabled, in registration order.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, rule := range Builtins() {
		// Built-ins were validated at registration.
		_ = reg.Register(rule)
	}
	return reg
}
