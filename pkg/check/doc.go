// Package check implements the conformance checking core: rule definitions,
// the ordered rule registry, the runner that executes rules against a file
// set, and the reporter that turns a run's violations into a summary.
//
// Rules are stateless and side-effect-free; all context arrives through the
// check function parameters. The runner may execute independent (rule, file)
// units concurrently, but the violation sequence of a finished run is always
// sorted into (rule order, file order) before the result is frozen, so
// output is reproducible across runs on unchanged input.
package check
