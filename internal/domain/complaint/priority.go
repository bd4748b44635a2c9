package complaint

import (
	"fmt"
	"math"

	vo "campusvoice/internal/domain/complaint/valueobjects"
)

// PriorityPolicy turns vote counts into a score and a tier. The score of a
// complaint depends only on its base tier and its net vote count, so
// removing a vote restores the previous score exactly.
type PriorityPolicy struct {
	multiplier float64
	baseScores map[vo.PriorityTier]float64
	// lower bounds of Medium, High and Critical
	thresholds [3]float64
}

// NewPriorityPolicy validates the parameters. Thresholds must be strictly
// ascending and each tier's base score must fall inside that tier.
func NewPriorityPolicy(multiplier float64, baseScores map[vo.PriorityTier]float64, medium, high, critical float64) (*PriorityPolicy, error) {
	if multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return nil, fmt.Errorf("vote multiplier must be a positive number")
	}
	if !(0 < medium && medium < high && high < critical) {
		return nil, fmt.Errorf("tier thresholds must be ascending and positive: %v < %v < %v", medium, high, critical)
	}

	p := &PriorityPolicy{
		multiplier: multiplier,
		baseScores: make(map[vo.PriorityTier]float64, len(baseScores)),
		thresholds: [3]float64{medium, high, critical},
	}
	for _, tier := range vo.AllTiers() {
		score, ok := baseScores[tier]
		if !ok {
			return nil, fmt.Errorf("missing base score for tier %s", tier)
		}
		if score < 0 {
			return nil, fmt.Errorf("base score for tier %s must not be negative", tier)
		}
		if got := p.TierFor(score); got != tier {
			return nil, fmt.Errorf("base score %v of tier %s falls in tier %s", score, tier, got)
		}
		p.baseScores[tier] = score
	}
	return p, nil
}

// DefaultPriorityPolicy uses a multiplier of 2.0.
func DefaultPriorityPolicy() *PriorityPolicy {
	p, err := NewPriorityPolicy(2.0, map[vo.PriorityTier]float64{
		vo.TierLow:      10,
		vo.TierMedium:   30,
		vo.TierHigh:     60,
		vo.TierCritical: 100,
	}, 25, 50, 90)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *PriorityPolicy) Multiplier() float64 {
	return p.multiplier
}

func (p *PriorityPolicy) BaseScore(tier vo.PriorityTier) float64 {
	return p.baseScores[tier]
}

// Score computes max(0, base + multiplier*net).
func (p *PriorityPolicy) Score(base vo.PriorityTier, net int) float64 {
	score := p.baseScores[base] + p.multiplier*float64(net)
	if score < 0 {
		return 0
	}
	return score
}

// TierFor maps a score onto the highest tier whose threshold it reaches.
func (p *PriorityPolicy) TierFor(score float64) vo.PriorityTier {
	switch {
	case score >= p.thresholds[2]:
		return vo.TierCritical
	case score >= p.thresholds[1]:
		return vo.TierHigh
	case score >= p.thresholds[0]:
		return vo.TierMedium
	default:
		return vo.TierLow
	}
}
