package check

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RunnerState tracks a runner through its lifecycle.
type RunnerState int32

// Runner lifecycle states. Completed and Cancelled are terminal; a new
// run requires a fresh Runner.
const (
	StateIdle RunnerState = iota
	StateRunning
	StateCompleted
	StateCancelled
)

// String returns the lowercase name of the state.
func (s RunnerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Runner executes enabled rules against a file set and collects
// violations into a RunResult.
type Runner struct {
	cfg    *Config
	logger *slog.Logger
	state  atomic.Int32
}

// NewRunner creates a runner. A nil config means defaults; a nil logger
// discards log output.
func NewRunner(cfg *Config, logger *slog.Logger) *Runner {
	if cfg == nil {
		cfg = NewConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{cfg: cfg, logger: logger}
}

// State returns the runner's current lifecycle state.
func (r *Runner) State() RunnerState {
	return RunnerState(r.state.Load())
}

// orderedViolation carries the canonical sort key alongside a violation
// while the run is in flight.
type orderedViolation struct {
	ruleIdx int
	fileIdx int
	v       Violation
}

// workUnit is one (rule, file) pair, or a whole-file-set rule invocation
// when fileIdx is -1.
type workUnit struct {
	ruleIdx int
	fileIdx int
}

// Run executes all enabled rules in registry order against the file set.
// Violations are collected in canonical (rule order, file order, line)
// sequence. A rule panic is converted into a violation under
// InternalErrorRuleID and the run continues. Context cancellation is
// observed between work units: in-flight checks finish, the partial
// result is returned with Incomplete set, and the runner ends Cancelled.
//
// Run may be called once; a reused runner returns an error.
func (r *Runner) Run(ctx context.Context, files []FileInfo, reg *Registry) (*RunResult, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if !r.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil, fmt.Errorf("runner is %s; a new run requires a new runner", r.State())
	}

	result := &RunResult{
		ID:           uuid.NewString(),
		FilesScanned: len(files),
		StartedAt:    time.Now(),
	}

	// Effective rule set: enabled in the registry and not disabled by config.
	var active []RuleDef
	for _, rule := range reg.Enabled() {
		if r.cfg.IsDisabled(rule.ID) {
			continue
		}
		active = append(active, rule)
	}
	result.RulesExecuted = len(active)

	fileIndex := make(map[string]int, len(files))
	for i, f := range files {
		fileIndex[f.RelPath] = i
	}

	var (
		mu        sync.Mutex
		collected []orderedViolation
		cancelled bool
	)
	append_ := func(ovs ...orderedViolation) {
		mu.Lock()
		collected = append(collected, ovs...)
		mu.Unlock()
	}

	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g := &errgroup.Group{}
	g.SetLimit(workers)

	r.logger.Debug("run started",
		"run_id", result.ID, "files", len(files), "rules", len(active), "workers", workers)

dispatch:
	for ruleIdx, rule := range active {
		for _, unit := range r.unitsFor(ruleIdx, rule, files) {
			// Cooperative cancellation at work-unit boundaries.
			if ctx.Err() != nil {
				cancelled = true
				break dispatch
			}
			unit := unit
			rule := rule
			g.Go(func() error {
				append_(r.execute(unit, rule, files, fileIndex)...)
				return nil
			})
		}
	}
	_ = g.Wait()

	// Canonical ordering: rule order, then file order, then position
	// within the file. Message breaks remaining ties.
	sort.Slice(collected, func(i, j int) bool {
		a, b := collected[i], collected[j]
		if a.ruleIdx != b.ruleIdx {
			return a.ruleIdx < b.ruleIdx
		}
		if a.fileIdx != b.fileIdx {
			return a.fileIdx < b.fileIdx
		}
		if a.v.Line != b.v.Line {
			return a.v.Line < b.v.Line
		}
		return a.v.Message < b.v.Message
	})
	result.Violations = make([]Violation, len(collected))
	for i, ov := range collected {
		result.Violations[i] = ov.v
	}
	result.FinishedAt = time.Now()
	result.Incomplete = cancelled

	if cancelled {
		r.state.Store(int32(StateCancelled))
	} else {
		r.state.Store(int32(StateCompleted))
	}
	r.logger.Debug("run finished",
		"run_id", result.ID, "state", r.State().String(), "violations", len(result.Violations))
	return result, nil
}

// unitsFor expands a rule into its work units: one per matching file for
// per-file rules, one unit total for file-set rules.
func (r *Runner) unitsFor(ruleIdx int, rule RuleDef, files []FileInfo) []workUnit {
	if !rule.perFile() {
		return []workUnit{{ruleIdx: ruleIdx, fileIdx: -1}}
	}
	var units []workUnit
	for i, f := range files {
		if rule.Selector.Matches(f.RelPath) {
			units = append(units, workUnit{ruleIdx: ruleIdx, fileIdx: i})
		}
	}
	return units
}

// execute runs one work unit, converting panics and read failures into
// internal-error violations so one broken rule never aborts the run.
func (r *Runner) execute(unit workUnit, rule RuleDef, files []FileInfo, fileIndex map[string]int) (out []orderedViolation) {
	var path string
	if unit.fileIdx >= 0 {
		path = files[unit.fileIdx].RelPath
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.Warn("rule check failed", "rule", rule.ID, "path", path, "panic", p)
			out = append(out, orderedViolation{
				ruleIdx: unit.ruleIdx,
				fileIdx: unit.fileIdx,
				v: Violation{
					RuleID:   InternalErrorRuleID,
					Path:     path,
					Severity: SeverityError,
					Message:  fmt.Sprintf("rule %s failed: %v", rule.ID, p),
				},
			})
		}
	}()

	var violations []Violation
	if unit.fileIdx < 0 {
		violations = rule.CheckFileSet(files, r.cfg.OptionsFor(rule.ID))
	} else {
		info := files[unit.fileIdx]
		content, err := os.ReadFile(info.Path)
		if err != nil {
			return []orderedViolation{{
				ruleIdx: unit.ruleIdx,
				fileIdx: unit.fileIdx,
				v: Violation{
					RuleID:   InternalErrorRuleID,
					Path:     path,
					Severity: SeverityError,
					Message:  fmt.Sprintf("rule %s failed: %v", rule.ID, err),
				},
			}}
		}
		violations = rule.Check(File{Info: info, Content: content}, r.cfg.OptionsFor(rule.ID))
	}

	for _, v := range violations {
		// Fill defaults the rule left blank and apply severity overrides.
		if v.RuleID == "" {
			v.RuleID = rule.ID
		}
		if v.Path == "" {
			v.Path = path
		}
		v.Severity = r.cfg.GetSeverity(rule.ID, v.Severity)

		fileIdx := unit.fileIdx
		if fileIdx < 0 {
			if i, ok := fileIndex[v.Path]; ok {
				fileIdx = i
			} else {
				fileIdx = len(files)
			}
		}
		out = append(out, orderedViolation{ruleIdx: unit.ruleIdx, fileIdx: fileIdx, v: v})
	}
	return out
}
