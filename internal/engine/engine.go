package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hookgate/hookgate/internal/invoker"
	"github.com/hookgate/hookgate/pkg/models"
)

// Engine is the public entry point of the validation engine. One Engine may
// serve concurrent Execute calls: each run's state is local to its
// invocation and the only object shared across hook invocations is the
// read-only input payload.
type Engine struct {
	inv  invoker.Invoker
	opts Options
}

// New creates an engine that runs hooks as external processes.
func New(opts Options) *Engine {
	return NewWithInvoker(invoker.NewProcessInvoker(opts.DefaultTimeout), opts)
}

// NewWithInvoker creates an engine with a custom invoker, letting tests
// substitute in-process functions for real subprocesses.
func NewWithInvoker(inv invoker.Invoker, opts Options) *Engine {
	return &Engine{inv: inv, opts: opts}
}

// Execute runs every hook against the input and returns the merged summary.
// The input is serialized once; every hook receives the same document.
// Individual hook failures are captured in the summary, never returned as
// errors. An error return means the orchestration machinery itself faulted
// and, if the fallback was enabled, the fallback failed too; that is a
// fatal condition of last resort.
func (e *Engine) Execute(ctx context.Context, hooks []models.Hook, input any) (models.RunSummary, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return models.RunSummary{}, fmt.Errorf("encode input payload: %w", err)
	}

	results, faultErr := e.runConcurrent(ctx, hooks, payload)
	if faultErr != nil {
		debugLog("[engine] orchestration fault: %v", faultErr)
		if !e.opts.FallbackToSequential {
			return models.RunSummary{}, faultErr
		}
		results, err = e.runFallback(ctx, hooks, payload)
		if err != nil {
			return models.RunSummary{}, fmt.Errorf("sequential fallback failed after orchestration fault (%v): %w", faultErr, err)
		}
		debugLog("[engine] sequential fallback recovered the run")
	}

	summary := Aggregate(results)
	summary.RunID = uuid.NewString()

	if e.opts.Verbose {
		debugLog("[engine] run %s: %d result(s), blocked=%v, efficiency=%.2f",
			summary.RunID, len(summary.Results), summary.Blocked, summary.ParallelEfficiency)
	}
	return summary, nil
}

// runConcurrent drives the tiered concurrent path, converting any panic in
// the scheduling machinery into an orchestration fault. Hook failures are
// already data by the time they reach this layer, so a recovered panic here
// always means a bug in the bookkeeping, not a failing validator.
func (e *Engine) runConcurrent(ctx context.Context, hooks []models.Hook, payload []byte) (results []models.ExecutionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("orchestration fault: %v", r)
		}
	}()

	scheduler := NewTierScheduler(e.inv, e.opts.MaxParallel)
	return scheduler.Run(ctx, hooks, payload), nil
}

// runFallback drives the sequential path with the same panic containment.
// If this path faults as well, the error propagates to the caller.
func (e *Engine) runFallback(ctx context.Context, hooks []models.Hook, payload []byte) (results []models.ExecutionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("fallback fault: %v", r)
		}
	}()

	fallback := NewSequentialFallback(e.inv)
	return fallback.Run(ctx, hooks, payload), nil
}
