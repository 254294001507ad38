package engine

import (
	"fmt"

	"github.com/hookgate/hookgate/pkg/models"
)

// tierGroup is an ordered bucket of hooks sharing one tier.
type tierGroup struct {
	tier  models.Tier
	hooks []models.Hook
}

// partitionTiers buckets hooks by tier in fixed precedence order,
// preserving each hook's relative position within its tier. Empty tiers
// are omitted. A hook with an unrecognized tier is an orchestration bug:
// classification guarantees normalized tiers, so partitioning panics
// rather than silently dropping a verdict. The panic is recovered at the
// engine boundary and routed to the sequential fallback.
func partitionTiers(hooks []models.Hook) []tierGroup {
	buckets := make(map[models.Tier][]models.Hook, len(models.TierOrder))
	for _, h := range hooks {
		if !h.Tier.Valid() {
			panic(fmt.Sprintf("hook %q has unrecognized tier %q", h.ID, h.Tier))
		}
		buckets[h.Tier] = append(buckets[h.Tier], h)
	}

	groups := make([]tierGroup, 0, len(buckets))
	for _, tier := range models.TierOrder {
		if len(buckets[tier]) == 0 {
			continue
		}
		groups = append(groups, tierGroup{tier: tier, hooks: buckets[tier]})
	}
	return groups
}

// flattenTiers returns all hooks in one ordered list: tier precedence
// first, original order within tier second. Unlike partitionTiers it
// tolerates malformed descriptors, normalizing unknown tiers to medium,
// because the fallback path must succeed where the concurrent path faulted.
func flattenTiers(hooks []models.Hook) []models.Hook {
	buckets := make(map[models.Tier][]models.Hook, len(models.TierOrder))
	for _, h := range hooks {
		if !h.Tier.Valid() {
			h.Tier = models.NormalizeTier(string(h.Tier))
		}
		buckets[h.Tier] = append(buckets[h.Tier], h)
	}

	flat := make([]models.Hook, 0, len(hooks))
	for _, tier := range models.TierOrder {
		flat = append(flat, buckets[tier]...)
	}
	return flat
}
