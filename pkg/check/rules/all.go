// Package rules registers all built-in conformance rules.
// Import this package to register them with the built-in registry:
//
//	import _ "github.com/leapstack-labs/leapcheck/pkg/check/rules"
//
// Rule groups:
//   - hygiene: file hygiene (conflict markers, debug residue, whitespace,
//     final newlines, oversized files, case-conflicting names)
//   - secrets: credential material that must not be committed
//   - syntax: configuration files that must parse
package rules

import (
	// Registered via init() functions in each group package.
	_ "github.com/leapstack-labs/leapcheck/pkg/check/rules/hygiene"
	_ "github.com/leapstack-labs/leapcheck/pkg/check/rules/secrets"
	_ "github.com/leapstack-labs/leapcheck/pkg/check/rules/syntax"
)
