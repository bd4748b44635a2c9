package config

import (
	"fmt"

	"campusvoice/internal/domain/complaint"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/domain/routing"
)

// PriorityPolicy builds the scoring policy from the priority section.
func (c *Config) PriorityPolicy() (*complaint.PriorityPolicy, error) {
	p := c.Priority
	policy, err := complaint.NewPriorityPolicy(p.VoteMultiplier, map[vo.PriorityTier]float64{
		vo.TierLow:      p.BaseScores.Low,
		vo.TierMedium:   p.BaseScores.Medium,
		vo.TierHigh:     p.BaseScores.High,
		vo.TierCritical: p.BaseScores.Critical,
	}, p.Thresholds.Medium, p.Thresholds.High, p.Thresholds.Critical)
	if err != nil {
		return nil, fmt.Errorf("invalid priority configuration: %w", err)
	}
	return policy, nil
}

// DepartmentFallback maps the routing section onto the resolver option.
func (c *Config) DepartmentFallback() routing.DepartmentFallback {
	if c.Routing.RejectsUncodedDepartment() {
		return routing.FallbackReject
	}
	return routing.FallbackSubmitter
}
