package complaint

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"campusvoice/internal/domain/authority"
	vo "campusvoice/internal/domain/complaint/valueobjects"
)

func TestPriorityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	policy := DefaultPriorityPolicy()

	properties.Property("tier is monotonic in score", prop.ForAll(
		func(a, b float64) bool {
			if a > b {
				a, b = b, a
			}
			return policy.TierFor(a).Rank() <= policy.TierFor(b).Rank()
		},
		gen.Float64Range(0, 500),
		gen.Float64Range(0, 500),
	))

	properties.Property("tier is a pure function of score", prop.ForAll(
		func(score float64) bool {
			return policy.TierFor(score) == policy.TierFor(score)
		},
		gen.Float64Range(0, 500),
	))

	properties.Property("score is never negative", prop.ForAll(
		func(tierIdx, net int) bool {
			return policy.Score(vo.AllTiers()[tierIdx], net) >= 0
		},
		gen.IntRange(0, 3),
		gen.IntRange(-1000, 1000),
	))

	properties.TestingRun(t)
}

// voteStep is one student's action: 0 upvote, 1 downvote, 2 remove.
type voteStep struct {
	student int
	action  int
}

func genVoteSteps() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 5*3-1).Map(func(v int) voteStep {
		return voteStep{student: v / 3, action: v % 3}
	}))
}

func TestVoteProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	policy := DefaultPriorityPolicy()

	replay := func(t *testing.T, tierIdx int, steps []voteStep) (*Complaint, map[string]*Vote) {
		officer := testAuthority(t, 3, authority.TypeAdminOfficer, true)
		c, _ := newTestComplaint(t, officer, withBaseTier(vo.AllTiers()[tierIdx]))
		votes := make(map[string]*Vote)
		for _, s := range steps {
			roll := fmt.Sprintf("V%d", s.student)
			existing := votes[roll]
			switch s.action {
			case 2:
				if RemoveVote(c, existing, policy) == nil {
					delete(votes, roll)
				}
			default:
				vt := vo.VoteUp
				if s.action == 1 {
					vt = vo.VoteDown
				}
				if v, _, err := CastVote(c, testStudent(t, roll, maleDayScholar), existing, vt, policy); err == nil {
					votes[roll] = v
				}
			}
		}
		return c, votes
	}

	properties.Property("counters match live votes and tier matches score", prop.ForAll(
		func(tierIdx int, steps []voteStep) bool {
			c, votes := replay(t, tierIdx, steps)
			up, down := 0, 0
			for _, v := range votes {
				if v.VoteType() == vo.VoteUp {
					up++
				} else {
					down++
				}
			}
			return c.Upvotes() == up && c.Downvotes() == down &&
				len(Audit(c, nil, nil, up, down, policy)) == 1 // only the missing escalation chain
		},
		gen.IntRange(0, 3),
		genVoteSteps(),
	))

	properties.Property("upvote then removal restores counters and score", prop.ForAll(
		func(tierIdx int, steps []voteStep) bool {
			c, _ := replay(t, tierIdx, steps)
			up, down, score, tier := c.Upvotes(), c.Downvotes(), c.PriorityScore(), c.PriorityTier()

			fresh := testStudent(t, "NEW", maleDayScholar)
			v, _, err := CastVote(c, fresh, nil, vo.VoteUp, policy)
			if err != nil {
				return false
			}
			if err := RemoveVote(c, v, policy); err != nil {
				return false
			}
			return c.Upvotes() == up && c.Downvotes() == down &&
				c.PriorityScore() == score && c.PriorityTier() == tier
		},
		gen.IntRange(0, 3),
		genVoteSteps(),
	))

	properties.TestingRun(t)
}
