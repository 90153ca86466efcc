package check

import "time"

// RuleCount is the number of violations attributed to one rule.
type RuleCount struct {
	RuleID string `json:"rule_id"`
	Count  int    `json:"count"`
}

// FileCount is the number of violations found in one file.
type FileCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Summary aggregates a finished run. Pass is true iff the run produced
// zero violations and was not cancelled.
type Summary struct {
	RunID           string      `json:"run_id"`
	Pass            bool        `json:"pass"`
	Incomplete      bool        `json:"incomplete"`
	FilesScanned    int         `json:"files_scanned"`
	RulesExecuted   int         `json:"rules_executed"`
	TotalViolations int         `json:"total_violations"`
	Errors          int         `json:"errors"`
	Warnings        int         `json:"warnings"`
	Infos           int         `json:"infos"`
	Hints           int         `json:"hints"`
	ByRule          []RuleCount `json:"by_rule,omitempty"`
	ByFile          []FileCount `json:"by_file,omitempty"`
	StartedAt       time.Time   `json:"started_at"`
	FinishedAt      time.Time   `json:"finished_at"`
}

// Report summarizes a frozen RunResult. The summary is a pure function of
// the result: same violations in, same summary out.
func Report(res *RunResult) Summary {
	s := Summary{
		RunID:           res.ID,
		Incomplete:      res.Incomplete,
		FilesScanned:    res.FilesScanned,
		RulesExecuted:   res.RulesExecuted,
		TotalViolations: len(res.Violations),
		StartedAt:       res.StartedAt,
		FinishedAt:      res.FinishedAt,
	}
	s.Pass = len(res.Violations) == 0 && !res.Incomplete

	// Count in violation order so ByRule/ByFile inherit the canonical
	// sequence's first-appearance order.
	ruleAt := make(map[string]int)
	fileAt := make(map[string]int)
	for _, v := range res.Violations {
		switch v.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		case SeverityHint:
			s.Hints++
		}
		if i, ok := ruleAt[v.RuleID]; ok {
			s.ByRule[i].Count++
		} else {
			ruleAt[v.RuleID] = len(s.ByRule)
			s.ByRule = append(s.ByRule, RuleCount{RuleID: v.RuleID, Count: 1})
		}
		if i, ok := fileAt[v.Path]; ok {
			s.ByFile[i].Count++
		} else {
			fileAt[v.Path] = len(s.ByFile)
			s.ByFile = append(s.ByFile, FileCount{Path: v.Path, Count: 1})
		}
	}
	return s
}
