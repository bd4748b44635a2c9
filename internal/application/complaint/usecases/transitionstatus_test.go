package usecases

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvoice/internal/domain/complaint"
	vo "campusvoice/internal/domain/complaint/valueobjects"
)

func TestTransitionStatus_RecordsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.submit(t, "S1", vo.CategoryGeneral, vo.VisibilityPublic)
	uc := env.transitionUseCase()

	result, err := uc.Execute(ctx, TransitionStatusCommand{
		ComplaintID: id,
		AuthorityID: env.officer.ID(),
		NewStatus:   vo.StatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInProgress.String(), result.Status)
	assert.NotNil(t, result.AcknowledgedAt)

	_, err = uc.Execute(ctx, TransitionStatusCommand{
		ComplaintID: id,
		AuthorityID: env.officer.ID(),
		NewStatus:   vo.StatusResolved,
	})
	require.NoError(t, err)

	history, err := env.statusUpdates.ListByComplaint(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, vo.StatusRaised, history[0].OldStatus())
	assert.Equal(t, vo.StatusInProgress, history[0].NewStatus())
	assert.Equal(t, vo.StatusResolved, history[1].NewStatus())

	stored, err := env.complaints.GetByID(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, stored.ResolvedAt())
	assert.Equal(t, 3, stored.Version())

	assert.Equal(t, []string{
		complaint.EventTypeSubmitted,
		complaint.EventTypeStatusChanged,
		complaint.EventTypeAcknowledged,
		complaint.EventTypeStatusChanged,
	}, env.publisher.types())
}

func TestTransitionStatus_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.submit(t, "S1", vo.CategoryGeneral, vo.VisibilityPublic)
	uc := env.transitionUseCase()

	tests := []struct {
		name    string
		cmd     TransitionStatusCommand
		wantErr error
	}{
		{"other authority", TransitionStatusCommand{ComplaintID: id, AuthorityID: env.wardenMen.ID(), NewStatus: vo.StatusInProgress}, complaint.ErrNotAssignedAuthority},
		{"illegal move", TransitionStatusCommand{ComplaintID: id, AuthorityID: env.officer.ID(), NewStatus: vo.StatusResolved}, complaint.ErrInvalidTransition},
		{"closing needs a reason", TransitionStatusCommand{ComplaintID: id, AuthorityID: env.officer.ID(), NewStatus: vo.StatusClosed, Reason: "  "}, complaint.ErrReasonRequired},
		{"unknown complaint", TransitionStatusCommand{ComplaintID: "missing", AuthorityID: env.officer.ID(), NewStatus: vo.StatusInProgress}, complaint.ErrComplaintNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.cmd)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	history, err := env.statusUpdates.ListByComplaint(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTransitionStatus_AdminOverrides(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.submit(t, "S1", vo.CategoryGeneral, vo.VisibilityPublic)

	result, err := env.transitionUseCase().Execute(ctx, TransitionStatusCommand{
		ComplaintID: id,
		AuthorityID: env.admin.ID(),
		NewStatus:   vo.StatusSpam,
		Reason:      "advertisement",
	})
	require.NoError(t, err)
	assert.True(t, result.IsMarkedAsSpam)
	assert.Equal(t, env.officer.ID(), result.AssignedAuthorityID)
}

func TestTransitionStatus_RetriesVersionConflicts(t *testing.T) {
	t.Run("recovers", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		id := env.submit(t, "S1", vo.CategoryGeneral, vo.VisibilityPublic)
		flaky := &conflictingComplaints{Repository: env.complaints, n: 2}

		uc := NewTransitionStatusUseCase(flaky, env.statusUpdates, env.authorities, env.txm, env.publisher, env.retry, env.log)
		_, err := uc.Execute(ctx, TransitionStatusCommand{ComplaintID: id, AuthorityID: env.officer.ID(), NewStatus: vo.StatusInProgress})
		require.NoError(t, err)
		assert.Equal(t, 3, flaky.updates)

		history, err := env.statusUpdates.ListByComplaint(ctx, id)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("gives up", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		id := env.submit(t, "S1", vo.CategoryGeneral, vo.VisibilityPublic)
		flaky := &conflictingComplaints{Repository: env.complaints, n: 10}

		uc := NewTransitionStatusUseCase(flaky, env.statusUpdates, env.authorities, env.txm, env.publisher, env.retry, env.log)
		_, err := uc.Execute(ctx, TransitionStatusCommand{ComplaintID: id, AuthorityID: env.officer.ID(), NewStatus: vo.StatusInProgress})
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, complaint.ErrConcurrentModification))
		assert.Equal(t, int(env.retry.MaxAttempts), flaky.updates)

		stored, err := env.complaints.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, vo.StatusRaised, stored.Status())
	})
}
