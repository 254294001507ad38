// Package classify normalizes caller-supplied hook configuration into the
// immutable descriptors the scheduler trusts for ordering decisions.
package classify

import (
	"fmt"

	"github.com/hookgate/hookgate/pkg/models"
)

// RawHook is a hook entry as it appears in caller configuration, before any
// normalization. Fields may be missing or carry unrecognized values.
type RawHook struct {
	ID        string `json:"id" yaml:"id"`
	Tier      string `json:"tier" yaml:"tier"`
	Family    string `json:"family" yaml:"family"`
	Command   string `json:"command" yaml:"command"`
	TimeoutMs int    `json:"timeout_ms" yaml:"timeout_ms"`
}

// Classify converts one raw hook into a normalized descriptor. It is a
// total function: no input is rejected. An unrecognized or missing tier
// becomes medium, a missing family becomes the unclassified sentinel, and a
// missing ID is derived from the hook's position in the run.
func Classify(raw RawHook, index int) models.Hook {
	id := raw.ID
	if id == "" {
		id = fmt.Sprintf("hook-%d", index)
	}

	family := raw.Family
	if family == "" {
		family = models.FamilyUnclassified
	}

	timeoutMs := raw.TimeoutMs
	if timeoutMs < 0 {
		timeoutMs = 0
	}

	return models.Hook{
		ID:        id,
		Tier:      models.NormalizeTier(raw.Tier),
		Family:    family,
		Command:   raw.Command,
		TimeoutMs: timeoutMs,
	}
}

// ClassifyAll normalizes a full hook list, preserving order.
func ClassifyAll(raws []RawHook) []models.Hook {
	hooks := make([]models.Hook, 0, len(raws))
	for i, raw := range raws {
		hooks = append(hooks, Classify(raw, i))
	}
	return hooks
}
