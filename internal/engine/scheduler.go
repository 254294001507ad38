package engine

import (
	"context"
	"sync"

	"github.com/hookgate/hookgate/internal/invoker"
	"github.com/hookgate/hookgate/pkg/models"
)

// TierScheduler executes hooks tier by tier in fixed precedence order.
// Hooks within a tier run concurrently; the scheduler waits for every one
// of them to settle before inspecting outcomes, so a failing sibling never
// cancels others still running in the same tier. A block outcome in a
// gating tier halts all tiers that have not yet started.
type TierScheduler struct {
	// inv runs one hook invocation to settlement.
	inv invoker.Invoker
	// maxParallel caps concurrent invocations per tier; zero is unbounded.
	maxParallel int
}

// NewTierScheduler creates a scheduler backed by the given invoker.
func NewTierScheduler(inv invoker.Invoker, maxParallel int) *TierScheduler {
	return &TierScheduler{inv: inv, maxParallel: maxParallel}
}

// Run executes all hooks against the payload and returns their settled
// results in tier precedence order. Results for a short-circuited run cover
// only the tiers that started. Individual hook failures are always captured
// as result data; only a bug in the scheduling machinery itself can panic
// out of here, and the engine recovers that at its boundary.
func (s *TierScheduler) Run(ctx context.Context, hooks []models.Hook, payload []byte) []models.ExecutionResult {
	groups := partitionTiers(hooks)

	var all []models.ExecutionResult
	for _, group := range groups {
		debugLog("[scheduler] running %s tier: %d hook(s)", group.tier, len(group.hooks))
		results := s.runTier(ctx, group, payload)
		all = append(all, results...)

		if group.tier.Gating() && anyBlocked(results) {
			debugLog("[scheduler] %s tier blocked, halting remaining tiers", group.tier)
			break
		}
	}
	return all
}

// runTier invokes every hook in the group concurrently and waits for all of
// them to settle. This is a settle-all join, not a cancel-on-first-failure
// join: one slow or blocking hook cannot hide the independent verdicts of
// its siblings.
func (s *TierScheduler) runTier(ctx context.Context, group tierGroup, payload []byte) []models.ExecutionResult {
	results := make([]models.ExecutionResult, len(group.hooks))

	var sem chan struct{}
	if s.maxParallel > 0 {
		sem = make(chan struct{}, s.maxParallel)
	}

	var wg sync.WaitGroup
	for i, hook := range group.hooks {
		wg.Add(1)
		go func(i int, hook models.Hook) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			results[i] = s.inv.Invoke(ctx, hook, payload)
			debugLog("[scheduler] hook %s settled: %s (%dms)", hook.ID, results[i].Outcome, results[i].DurationMs)
		}(i, hook)
	}
	wg.Wait()

	return results
}

// anyBlocked reports whether any result in the slice carries a block verdict.
func anyBlocked(results []models.ExecutionResult) bool {
	for _, r := range results {
		if r.Outcome == models.OutcomeBlock {
			return true
		}
	}
	return false
}
