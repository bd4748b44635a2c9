package valueobjects

import "fmt"

type PriorityTier string

const (
	TierLow      PriorityTier = "Low"
	TierMedium   PriorityTier = "Medium"
	TierHigh     PriorityTier = "High"
	TierCritical PriorityTier = "Critical"
)

var tierRanks = map[PriorityTier]int{
	TierLow:      0,
	TierMedium:   1,
	TierHigh:     2,
	TierCritical: 3,
}

func (p PriorityTier) String() string {
	return string(p)
}

func (p PriorityTier) IsValid() bool {
	_, ok := tierRanks[p]
	return ok
}

// Rank orders tiers from Low (0) to Critical (3).
func (p PriorityTier) Rank() int {
	return tierRanks[p]
}

func NewPriorityTier(s string) (PriorityTier, error) {
	p := PriorityTier(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority tier: %s", s)
	}
	return p, nil
}

// AllTiers lists tiers in ascending order.
func AllTiers() []PriorityTier {
	return []PriorityTier{TierLow, TierMedium, TierHigh, TierCritical}
}
