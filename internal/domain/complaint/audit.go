package complaint

import (
	"fmt"
	"math"

	vo "campusvoice/internal/domain/complaint/valueobjects"
)

// ViolationKind names the consistency rule a complaint breaks.
type ViolationKind string

const (
	ViolationStatusHistory ViolationKind = "status_history"
	ViolationEscalation    ViolationKind = "escalation_chain"
	ViolationVoteTally     ViolationKind = "vote_tally"
	ViolationPriority      ViolationKind = "priority"
	ViolationAssignee      ViolationKind = "assignee"
)

// Violation is a detected breach of a complaint invariant. Violations are
// reported, never repaired.
type Violation struct {
	ComplaintID string
	Kind        ViolationKind
	Detail      string
}

const scoreTolerance = 1e-9

// Audit checks c against its stored history, escalation chain and live vote
// tally. history must be in insertion order.
func Audit(c *Complaint, history []*StatusUpdate, chain []*EscalationRecord, upTally, downTally int, policy *PriorityPolicy) []Violation {
	var out []Violation
	add := func(kind ViolationKind, format string, args ...any) {
		out = append(out, Violation{ComplaintID: c.id, Kind: kind, Detail: fmt.Sprintf(format, args...)})
	}

	expected := vo.StatusRaised
	for i, row := range history {
		if row.OldStatus() != expected {
			add(ViolationStatusHistory, "row %d starts at %s, expected %s", i, row.OldStatus(), expected)
		}
		expected = row.NewStatus()
	}
	if c.status != expected {
		add(ViolationStatusHistory, "status %s differs from history %s", c.status, expected)
	}

	current := 0
	for i, rec := range chain {
		if rec.Level() != i {
			add(ViolationEscalation, "record %d has level %d", i, rec.Level())
		}
		if !rec.IsCurrent() {
			continue
		}
		current++
		if rec.AuthorityID() != c.assignedAuthorityID {
			add(ViolationEscalation, "current record names authority %d, complaint is assigned to %d", rec.AuthorityID(), c.assignedAuthorityID)
		}
	}
	if current != 1 {
		add(ViolationEscalation, "%d current records", current)
	}

	if upTally != c.upvotes || downTally != c.downvotes {
		add(ViolationVoteTally, "counters %d/%d, live votes %d/%d", c.upvotes, c.downvotes, upTally, downTally)
	}

	if want := policy.Score(c.baseTier, c.NetVotes()); math.Abs(want-c.priorityScore) > scoreTolerance {
		add(ViolationPriority, "score %v, expected %v", c.priorityScore, want)
	}
	if want := policy.TierFor(c.priorityScore); want != c.priorityTier {
		add(ViolationPriority, "tier %s disagrees with score %v (%s)", c.priorityTier, c.priorityScore, want)
	}
	return out
}
