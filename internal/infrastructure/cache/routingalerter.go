package cache

import (
	"context"
	"time"

	"campusvoice/internal/shared/logger"
)

// AlertNotifier delivers an alert outside the process, e.g. by email.
type AlertNotifier interface {
	NotifyNoAuthority(ctx context.Context, slot string, cause error) error
}

// RoutingAlerter reports slots nobody can be assigned to. Repeated alerts
// for one slot are suppressed for the cooldown period.
type RoutingAlerter struct {
	dedup    *AlertDeduplicator
	notifier AlertNotifier
	cooldown time.Duration
	logger   logger.Interface
}

// NewRoutingAlerter builds an alerter. A nil dedup logs every occurrence.
func NewRoutingAlerter(dedup *AlertDeduplicator, cooldown time.Duration, log logger.Interface) *RoutingAlerter {
	if cooldown <= 0 {
		cooldown = DefaultAlertCooldown
	}
	return &RoutingAlerter{
		dedup:    dedup,
		cooldown: cooldown,
		logger:   log,
	}
}

// WithNotifier forwards every alert that passes deduplication to n.
func (a *RoutingAlerter) WithNotifier(n AlertNotifier) *RoutingAlerter {
	a.notifier = n
	return a
}

// AlertNoAuthority raises the operational alert for slot. It never fails;
// a Redis outage degrades to alerting without deduplication.
func (a *RoutingAlerter) AlertNoAuthority(ctx context.Context, slot string, cause error) bool {
	if a.dedup != nil {
		acquired, err := a.dedup.TryAcquire(ctx, AlertTypeNoAuthority, slot, a.cooldown)
		if err != nil {
			a.logger.Warnw("alert deduplication unavailable",
				"slot", slot,
				"error", err,
			)
		} else if !acquired {
			a.logger.Debugw("routing alert suppressed during cooldown", "slot", slot)
			return false
		}
	}

	a.logger.Errorw("no active authority available",
		"slot", slot,
		"cause", cause,
		"cooldown", a.cooldown,
	)
	if a.notifier != nil {
		if err := a.notifier.NotifyNoAuthority(ctx, slot, cause); err != nil {
			a.logger.Warnw("failed to deliver routing alert",
				"slot", slot,
				"error", err,
			)
		}
	}
	return true
}
