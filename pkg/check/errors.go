package check

import "fmt"

// DuplicateRuleError is returned when a rule ID is registered twice.
type DuplicateRuleError struct {
	ID string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %q is already registered", e.ID)
}

// NotFoundError is returned when a rule ID is not present in a registry.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rule %q is not registered", e.ID)
}
