package engine

import (
	"context"

	"github.com/hookgate/hookgate/internal/invoker"
	"github.com/hookgate/hookgate/pkg/models"
)

// SequentialFallback replays a hook list one invocation at a time,
// preserving tier precedence. It is used only when the concurrent
// orchestration itself faults; individual hook failures never reach this
// path because the invoker captures them as data.
type SequentialFallback struct {
	inv invoker.Invoker
}

// NewSequentialFallback creates a fallback executor backed by the given invoker.
func NewSequentialFallback(inv invoker.Invoker) *SequentialFallback {
	return &SequentialFallback{inv: inv}
}

// Run flattens all tiers into one ordered list and invokes each hook
// strictly one at a time. A block in a gating tier stops the run
// immediately, mirroring the concurrent path's short-circuit rule; a block
// in a non-gating tier is recorded and execution continues.
func (f *SequentialFallback) Run(ctx context.Context, hooks []models.Hook, payload []byte) []models.ExecutionResult {
	flat := flattenTiers(hooks)

	results := make([]models.ExecutionResult, 0, len(flat))
	for _, hook := range flat {
		result := f.inv.Invoke(ctx, hook, payload)
		results = append(results, result)
		debugLog("[fallback] hook %s settled: %s (%dms)", hook.ID, result.Outcome, result.DurationMs)

		if hook.Tier.Gating() && result.Outcome == models.OutcomeBlock {
			debugLog("[fallback] %s tier blocked, stopping", hook.Tier)
			break
		}
	}
	return results
}
