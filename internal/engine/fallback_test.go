package engine

import (
	"context"
	"testing"

	"github.com/hookgate/hookgate/pkg/models"
)

func TestFallback_StrictlySequentialInTierOrder(t *testing.T) {
	inv := newFakeInvoker()
	hooks := []models.Hook{
		hook("l1", models.TierLow),
		hook("c1", models.TierCritical),
		hook("m1", models.TierMedium),
		hook("c2", models.TierCritical),
		hook("h1", models.TierHigh),
	}

	f := NewSequentialFallback(inv)
	results := f.Run(context.Background(), hooks, nil)

	want := []string{"c1", "c2", "h1", "m1", "l1"}
	order := inv.invocationOrder()
	if len(order) != len(want) {
		t.Fatalf("expected %d invocations, got %d", len(want), len(order))
	}
	for i, id := range want {
		if order[i] != id {
			t.Errorf("invocation %d = %s, want %s", i, order[i], id)
		}
	}
	if inv.maxConcurrent() != 1 {
		t.Errorf("fallback must run one at a time, peak concurrency was %d", inv.maxConcurrent())
	}
	if len(results) != 5 {
		t.Errorf("expected 5 results, got %d", len(results))
	}
}

func TestFallback_GatingBlockStopsImmediately(t *testing.T) {
	inv := newFakeInvoker()
	inv.outcomes["c2"] = models.OutcomeBlock
	hooks := []models.Hook{
		hook("c1", models.TierCritical),
		hook("c2", models.TierCritical),
		hook("c3", models.TierCritical),
		hook("m1", models.TierMedium),
	}

	f := NewSequentialFallback(inv)
	results := f.Run(context.Background(), hooks, nil)

	// Sequential semantics: even the blocking hook's same-tier successors
	// never start, unlike the concurrent path where siblings were already
	// committed to the settle-all join.
	if len(results) != 2 {
		t.Fatalf("expected 2 results (stop at first gating block), got %d", len(results))
	}
	if results[1].Outcome != models.OutcomeBlock {
		t.Errorf("last result outcome = %q, want block", results[1].Outcome)
	}
}

func TestFallback_NonGatingBlockContinues(t *testing.T) {
	inv := newFakeInvoker()
	inv.outcomes["m1"] = models.OutcomeBlock
	hooks := []models.Hook{
		hook("m1", models.TierMedium),
		hook("l1", models.TierLow),
		hook("b1", models.TierBackground),
	}

	f := NewSequentialFallback(inv)
	results := f.Run(context.Background(), hooks, nil)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !anyBlocked(results) {
		t.Error("medium block must be recorded")
	}
}

func TestFallback_ToleratesMalformedTier(t *testing.T) {
	inv := newFakeInvoker()
	hooks := []models.Hook{
		{ID: "weird", Tier: models.Tier("bogus"), Command: "true"},
		hook("c1", models.TierCritical),
	}

	f := NewSequentialFallback(inv)
	results := f.Run(context.Background(), hooks, nil)

	// The malformed hook is normalized to medium, so critical runs first.
	order := inv.invocationOrder()
	if len(order) != 2 || order[0] != "c1" || order[1] != "weird" {
		t.Errorf("invocation order = %v, want [c1 weird]", order)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}
