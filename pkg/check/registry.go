package check

import (
	"fmt"
	"strings"
	"sync"
)

// Registry holds rule definitions in insertion order. Insertion order is
// the rule order the runner and reporter observe, so registration order
// determines output order.
type Registry struct {
	mu       sync.RWMutex
	rules    []RuleDef
	index    map[string]int // rule ID -> position in rules
	disabled map[string]bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index:    make(map[string]int),
		disabled: make(map[string]bool),
	}
}

func validateRule(rule RuleDef) error {
	id := strings.TrimSpace(rule.ID)
	if id == "" {
		return fmt.Errorf("rule ID must not be empty")
	}
	if id == InternalErrorRuleID {
		return fmt.Errorf("rule ID %q is reserved", InternalErrorRuleID)
	}
	if (rule.Check == nil) == (rule.CheckFileSet == nil) {
		return fmt.Errorf("rule %q must set exactly one of Check and CheckFileSet", id)
	}
	return nil
}

// Register adds a rule. Registration of a duplicate identifier fails with
// a *DuplicateRuleError. Rules are immutable once registered.
func (r *Registry) Register(rule RuleDef) error {
	if err := validateRule(rule); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[rule.ID]; ok {
		return &DuplicateRuleError{ID: rule.ID}
	}
	r.index[rule.ID] = len(r.rules)
	r.rules = append(r.rules, rule)
	return nil
}

// Get returns a rule by ID, failing with a *NotFoundError if absent.
func (r *Registry) Get(id string) (RuleDef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return RuleDef{}, &NotFoundError{ID: id}
	}
	return r.rules[i], nil
}

// Enable marks a rule as enabled. Fails with *NotFoundError if absent.
func (r *Registry) Enable(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(r.disabled, id)
	return nil
}

// Disable marks a rule as disabled. Fails with *NotFoundError if absent.
func (r *Registry) Disable(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[id]; !ok {
		return &NotFoundError{ID: id}
	}
	r.disabled[id] = true
	return nil
}

// IsEnabled reports whether a registered rule is enabled.
// Unknown IDs report false.
func (r *Registry) IsEnabled(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[id]
	return ok && !r.disabled[id]
}

// Rules returns all rules in insertion order.
func (r *Registry) Rules() []RuleDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RuleDef, len(r.rules))
	copy(out, r.rules)
	return out
}

// Enabled returns the enabled rules in insertion order.
func (r *Registry) Enabled() []RuleDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RuleDef, 0, len(r.rules))
	for _, rule := range r.rules {
		if !r.disabled[rule.ID] {
			out = append(out, rule)
		}
	}
	return out
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
