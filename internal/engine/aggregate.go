package engine

import "github.com/hookgate/hookgate/pkg/models"

// Aggregate folds settled results into a run summary. It is a pure
// function: no side effects, no I/O. The summary's shape is identical
// whether the results came from the concurrent or the sequential path.
func Aggregate(results []models.ExecutionResult) models.RunSummary {
	summary := models.RunSummary{
		Success: true,
		Results: results,
		ByTier:  make(map[models.Tier]models.TierStats),
	}

	for _, r := range results {
		summary.TotalDurationMs += r.DurationMs
		if r.DurationMs > summary.MaxDurationMs {
			summary.MaxDurationMs = r.DurationMs
		}

		stats := summary.ByTier[r.Tier]
		switch r.Outcome {
		case models.OutcomeAllow:
			stats.Allow++
		case models.OutcomeBlock:
			stats.Block++
			summary.Success = false
			summary.Blocked = true
		case models.OutcomeFail:
			stats.Fail++
		case models.OutcomeTimeout:
			stats.Timeout++
		}
		summary.ByTier[r.Tier] = stats
	}

	// Efficiency is total over max: >= 1 for any non-empty run, and how
	// much above 1 says how much concurrency was captured. Defined as 1
	// when there is nothing to measure.
	if summary.MaxDurationMs > 0 {
		summary.ParallelEfficiency = float64(summary.TotalDurationMs) / float64(summary.MaxDurationMs)
	} else {
		summary.ParallelEfficiency = 1
	}

	return summary
}
