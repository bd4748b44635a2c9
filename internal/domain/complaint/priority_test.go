package complaint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "campusvoice/internal/domain/complaint/valueobjects"
)

func TestPriorityPolicy_TierFor(t *testing.T) {
	p := DefaultPriorityPolicy()

	tests := []struct {
		score float64
		want  vo.PriorityTier
	}{
		{0, vo.TierLow},
		{24.99, vo.TierLow},
		{25, vo.TierMedium},
		{49.5, vo.TierMedium},
		{50, vo.TierHigh},
		{89, vo.TierHigh},
		{90, vo.TierCritical},
		{1e6, vo.TierCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.TierFor(tt.score), "score %v", tt.score)
	}
}

func TestPriorityPolicy_Score(t *testing.T) {
	p := DefaultPriorityPolicy()

	assert.Equal(t, 10.0, p.Score(vo.TierLow, 0))
	assert.Equal(t, 16.0, p.Score(vo.TierLow, 3))
	assert.Equal(t, 0.0, p.Score(vo.TierLow, -20))
	assert.Equal(t, 104.0, p.Score(vo.TierCritical, 2))
}

func TestNewPriorityPolicy_Validation(t *testing.T) {
	base := map[vo.PriorityTier]float64{
		vo.TierLow: 0, vo.TierMedium: 20, vo.TierHigh: 40, vo.TierCritical: 80,
	}

	_, err := NewPriorityPolicy(2, base, 10, 30, 60)
	require.NoError(t, err)

	_, err = NewPriorityPolicy(0, base, 10, 30, 60)
	assert.Error(t, err, "non-positive multiplier")

	_, err = NewPriorityPolicy(2, base, 30, 30, 60)
	assert.Error(t, err, "thresholds not strictly ascending")

	_, err = NewPriorityPolicy(2, base, 10, 50, 60)
	assert.Error(t, err, "high base score falls in medium tier")

	delete(base, vo.TierHigh)
	_, err = NewPriorityPolicy(2, base, 10, 30, 60)
	assert.Error(t, err, "missing tier")
}
