package models

// ExecutionResult records the settled verdict of one hook invocation.
// Created by the invoker; read-only afterward.
type ExecutionResult struct {
	// HookID is the ID of the hook that produced this result.
	HookID string `json:"hook_id"`
	// Tier is the tier the hook executed in.
	Tier Tier `json:"tier"`
	// Family is the hook's family label.
	Family string `json:"family"`
	// DurationMs is wall-clock time from spawn to settle.
	DurationMs int64 `json:"duration_ms"`
	// Outcome is the decoded verdict.
	Outcome Outcome `json:"outcome"`
	// Output is the hook's captured stdout, informational only.
	Output string `json:"output,omitempty"`
	// Error describes what went wrong for fail/timeout outcomes. It
	// includes captured stderr when available.
	Error string `json:"error,omitempty"`
}

// TierStats counts outcomes within one tier, for diagnostics.
type TierStats struct {
	Allow   int `json:"allow"`
	Block   int `json:"block"`
	Fail    int `json:"fail"`
	Timeout int `json:"timeout"`
}

// Total returns the number of results recorded for the tier.
func (s TierStats) Total() int {
	return s.Allow + s.Block + s.Fail + s.Timeout
}

// RunSummary is the single return value of the engine's entry point.
// It is created fresh per invocation and never persisted.
type RunSummary struct {
	// RunID uniquely identifies this run, for log correlation.
	RunID string `json:"run_id"`
	// Success is true when no result has outcome block.
	Success bool `json:"success"`
	// Blocked is true when a hook explicitly vetoed the change. Distinct
	// from the mere presence of fail/timeout results so callers can tell
	// "rule violation" apart from "tooling problem".
	Blocked bool `json:"blocked"`
	// Results holds every settled invocation, in tier precedence order.
	Results []ExecutionResult `json:"results"`
	// TotalDurationMs is the sum of per-hook durations.
	TotalDurationMs int64 `json:"total_duration_ms"`
	// MaxDurationMs is the longest single hook duration.
	MaxDurationMs int64 `json:"max_duration_ms"`
	// ParallelEfficiency is TotalDurationMs / MaxDurationMs: how much
	// concurrency the run captured. Defined as 1 for an empty run.
	ParallelEfficiency float64 `json:"parallel_efficiency"`
	// ByTier counts outcomes per tier.
	ByTier map[Tier]TierStats `json:"by_tier"`
}

// Degraded returns true if any hook failed or timed out.
func (s RunSummary) Degraded() bool {
	for _, r := range s.Results {
		if r.Outcome == OutcomeFail || r.Outcome == OutcomeTimeout {
			return true
		}
	}
	return false
}
