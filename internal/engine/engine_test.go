package engine

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/hookgate/hookgate/pkg/models"
)

func testOptions() Options {
	opts := DefaultOptions()
	return opts
}

func TestExecute_AssignsRunID(t *testing.T) {
	inv := newFakeInvoker()
	e := NewWithInvoker(inv, testOptions())

	summary, err := e.Execute(context.Background(), []models.Hook{hook("c1", models.TierCritical)}, map[string]string{"event": "edit"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if summary.RunID == "" {
		t.Error("expected a non-empty RunID")
	}
}

// Scenario: critical allows, high blocks, medium never starts.
func TestExecute_GatingBlockScenario(t *testing.T) {
	inv := newFakeInvoker()
	inv.durations["c1"] = 50
	inv.durations["h1"] = 30
	inv.durations["m1"] = 20
	inv.outcomes["h1"] = models.OutcomeBlock
	hooks := []models.Hook{
		hook("c1", models.TierCritical),
		hook("h1", models.TierHigh),
		hook("m1", models.TierMedium),
	}

	e := NewWithInvoker(inv, testOptions())
	summary, err := e.Execute(context.Background(), hooks, nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if !summary.Blocked {
		t.Error("expected blocked run")
	}
	if len(summary.Results) != 2 {
		t.Fatalf("expected exactly 2 results, got %d", len(summary.Results))
	}
	if summary.TotalDurationMs != 80 {
		t.Errorf("TotalDurationMs = %d, want 80", summary.TotalDurationMs)
	}
	for _, id := range inv.invocationOrder() {
		if id == "m1" {
			t.Error("medium hook must never execute after a high-tier block")
		}
	}
	// The high tier only started after the critical tier settled.
	order := inv.invocationOrder()
	if order[0] != "c1" || order[1] != "h1" {
		t.Errorf("invocation order = %v, want [c1 h1]", order)
	}
}

// Scenario: five medium allows capture concurrency in the efficiency ratio.
func TestExecute_ParallelEfficiencyScenario(t *testing.T) {
	inv := newFakeInvoker()
	durations := map[string]int64{"m1": 10, "m2": 20, "m3": 30, "m4": 5, "m5": 15}
	var hooks []models.Hook
	for id, d := range durations {
		inv.durations[id] = d
		hooks = append(hooks, hook(id, models.TierMedium))
	}

	e := NewWithInvoker(inv, testOptions())
	summary, err := e.Execute(context.Background(), hooks, nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if !summary.Success {
		t.Error("expected success")
	}
	if len(summary.Results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(summary.Results))
	}
	want := 80.0 / 30.0
	if math.Abs(summary.ParallelEfficiency-want) > 0.001 {
		t.Errorf("ParallelEfficiency = %v, want %v", summary.ParallelEfficiency, want)
	}
}

// Scenario: empty hook list settles cleanly.
func TestExecute_EmptyHookList(t *testing.T) {
	inv := newFakeInvoker()
	e := NewWithInvoker(inv, testOptions())

	summary, err := e.Execute(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !summary.Success || summary.Blocked {
		t.Errorf("empty run: success=%v blocked=%v, want true/false", summary.Success, summary.Blocked)
	}
	if len(summary.Results) != 0 {
		t.Errorf("expected zero results, got %d", len(summary.Results))
	}
	if summary.ParallelEfficiency != 1 {
		t.Errorf("ParallelEfficiency = %v, want 1", summary.ParallelEfficiency)
	}
}

func TestExecute_OrchestrationFaultTriggersFallback(t *testing.T) {
	inv := newFakeInvoker()
	inv.outcomes["weird"] = models.OutcomeBlock
	// A descriptor that skipped classification: the concurrent partition
	// panics on the unrecognized tier, the fallback normalizes it.
	hooks := []models.Hook{
		hook("c1", models.TierCritical),
		{ID: "weird", Tier: models.Tier("bogus"), Command: "true"},
		hook("l1", models.TierLow),
	}

	e := NewWithInvoker(inv, testOptions())
	summary, err := e.Execute(context.Background(), hooks, nil)
	if err != nil {
		t.Fatalf("expected fallback to recover the run, got error: %v", err)
	}

	// Matches a task-by-task sequential run in tier order: critical
	// allows, the normalized-to-medium hook blocks (non-gating, so low
	// still runs), and the run is marked blocked.
	if !summary.Blocked {
		t.Error("expected blocked run from fallback")
	}
	if len(summary.Results) != 3 {
		t.Errorf("expected 3 results from fallback, got %d", len(summary.Results))
	}
	if inv.maxConcurrent() != 1 {
		t.Errorf("fallback must be sequential, peak concurrency was %d", inv.maxConcurrent())
	}
}

func TestExecute_FallbackDisabledPropagatesFault(t *testing.T) {
	inv := newFakeInvoker()
	hooks := []models.Hook{
		{ID: "weird", Tier: models.Tier("bogus"), Command: "true"},
	}

	opts := testOptions()
	opts.FallbackToSequential = false
	e := NewWithInvoker(inv, opts)

	_, err := e.Execute(context.Background(), hooks, nil)
	if err == nil {
		t.Fatal("expected orchestration fault to propagate when fallback is disabled")
	}
	if !strings.Contains(err.Error(), "orchestration fault") {
		t.Errorf("error = %q, want orchestration fault", err)
	}
	if len(inv.invocationOrder()) != 0 {
		t.Error("no hook should run when partitioning faults with fallback disabled")
	}
}

func TestExecute_UnencodableInputIsFatal(t *testing.T) {
	inv := newFakeInvoker()
	e := NewWithInvoker(inv, testOptions())

	_, err := e.Execute(context.Background(), []models.Hook{hook("c1", models.TierCritical)}, func() {})
	if err == nil {
		t.Fatal("expected error for unencodable input payload")
	}
}

func TestExecute_FailuresAreDataNotErrors(t *testing.T) {
	inv := newFakeInvoker()
	inv.outcomes["m-fail"] = models.OutcomeFail
	inv.outcomes["m-timeout"] = models.OutcomeTimeout
	hooks := []models.Hook{
		hook("m-fail", models.TierMedium),
		hook("m-timeout", models.TierMedium),
	}

	e := NewWithInvoker(inv, testOptions())
	summary, err := e.Execute(context.Background(), hooks, nil)
	if err != nil {
		t.Fatalf("hook failures must never surface as errors, got: %v", err)
	}
	if summary.Blocked {
		t.Error("failures are not vetoes")
	}
	if !summary.Degraded() {
		t.Error("summary must report degradation for fail/timeout results")
	}
}
