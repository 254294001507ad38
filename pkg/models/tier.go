package models

// Tier represents the priority tier of a hook, controlling execution order.
type Tier string

const (
	// TierCritical runs first; a block here halts everything after it.
	TierCritical Tier = "critical"
	// TierHigh runs after critical; also gating.
	TierHigh Tier = "high"
	// TierMedium is the default tier for hooks with no recognized tier.
	TierMedium Tier = "medium"
	// TierLow runs after medium; advisory only.
	TierLow Tier = "low"
	// TierBackground runs last; advisory only.
	TierBackground Tier = "background"
)

// TierOrder is the fixed precedence in which tiers execute.
var TierOrder = []Tier{TierCritical, TierHigh, TierMedium, TierLow, TierBackground}

// Valid returns true if the tier is a known value.
func (t Tier) Valid() bool {
	switch t {
	case TierCritical, TierHigh, TierMedium, TierLow, TierBackground:
		return true
	default:
		return false
	}
}

// Gating returns true if a block outcome in this tier halts all
// not-yet-started tiers. Only critical and high gate.
func (t Tier) Gating() bool {
	return t == TierCritical || t == TierHigh
}

// NormalizeTier maps a raw tier string to a valid Tier.
// Unknown or empty input normalizes to TierMedium.
func NormalizeTier(s string) Tier {
	t := Tier(s)
	if t.Valid() {
		return t
	}
	return TierMedium
}
