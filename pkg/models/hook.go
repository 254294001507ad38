package models

import "time"

// FamilyUnclassified is the sentinel family for hooks whose configuration
// names no family.
const FamilyUnclassified = "unclassified"

// Hook is the immutable specification of one validator. It is created once
// per run from caller-supplied configuration and is never mutated by the
// scheduler.
type Hook struct {
	// ID uniquely identifies this hook within a run.
	ID string `json:"id" yaml:"id"`
	// Tier is the priority tier that decides when this hook executes.
	Tier Tier `json:"tier" yaml:"tier"`
	// Family is a free-form label grouping related hooks (e.g. "naming",
	// "docs"). Defaults to FamilyUnclassified.
	Family string `json:"family" yaml:"family"`
	// Command is the shell command that implements the validator. It
	// receives one JSON document on stdin and signals its verdict through
	// its exit code: 0 = allow, 2 = block, anything else = failure.
	Command string `json:"command" yaml:"command"`
	// TimeoutMs is the per-invocation wall-clock deadline in milliseconds.
	// Zero means "use the engine default".
	TimeoutMs int `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
}

// Timeout returns the hook's deadline as a duration, or zero when the hook
// defers to the engine default.
func (h Hook) Timeout() time.Duration {
	return time.Duration(h.TimeoutMs) * time.Millisecond
}
