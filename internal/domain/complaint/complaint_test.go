package complaint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvoice/internal/domain/authority"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	apperrors "campusvoice/internal/shared/errors"
)

func TestNewComplaint(t *testing.T) {
	officer := testAuthority(t, 3, authority.TypeAdminOfficer, true)

	c, rec, err := NewComplaint(Submission{
		Category:      vo.CategoryGeneral,
		OriginalText:  "  Canteen food is stale  ",
		RephrasedText: "Stale food served at the canteen",
		Visibility:    vo.VisibilityPublic,
		BaseTier:      vo.TierMedium,
		SubmitterID:   "S1",
		Submitter:     maleHosteller,
	}, Placement{Authority: officer}, DefaultPriorityPolicy())
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID())
	assert.Equal(t, vo.StatusRaised, c.Status())
	assert.Equal(t, "Canteen food is stale", c.OriginalText())
	assert.Equal(t, uint(3), c.AssignedAuthorityID())
	assert.Equal(t, 30.0, c.PriorityScore())
	assert.Equal(t, vo.TierMedium, c.PriorityTier())
	assert.Equal(t, 1, c.Version())

	assert.Equal(t, 0, rec.Level())
	assert.True(t, rec.IsCurrent())
	assert.Equal(t, uint(3), rec.AuthorityID())
	assert.Equal(t, c.ID(), rec.ComplaintID())

	evts := c.PullEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, EventTypeSubmitted, evts[0].GetEventType())
	assert.Empty(t, c.PullEvents())
}

func TestNewComplaint_RejectsInactivePlacement(t *testing.T) {
	retired := testAuthority(t, 3, authority.TypeAdminOfficer, false)

	_, _, err := NewComplaint(Submission{
		Category:     vo.CategoryGeneral,
		OriginalText: "text",
		Visibility:   vo.VisibilityPublic,
		SubmitterID:  "S1",
	}, Placement{Authority: retired}, DefaultPriorityPolicy())
	assert.Error(t, err)
}

func TestComplaint_UpdateStatus(t *testing.T) {
	assignee := testAuthority(t, 10, authority.TypeAdminOfficer, true)
	other := testAuthority(t, 11, authority.TypeAdminOfficer, true)
	admin := testAuthority(t, 1, authority.TypeAdmin, true)
	retiredAdmin := testAuthority(t, 2, authority.TypeAdmin, false)

	tests := []struct {
		name    string
		path    []vo.Status
		to      vo.Status
		actor   *authority.Authority
		reason  string
		wantErr error
	}{
		{name: "assignee starts work", to: vo.StatusInProgress, actor: assignee},
		{name: "admin resolves", path: []vo.Status{vo.StatusInProgress}, to: vo.StatusResolved, actor: admin},
		{name: "closed is terminal", path: []vo.Status{vo.StatusClosed}, to: vo.StatusInProgress, actor: admin, wantErr: ErrInvalidTransition},
		{name: "spam without reason", to: vo.StatusSpam, actor: assignee, wantErr: ErrReasonRequired},
		{name: "close with blank reason", to: vo.StatusClosed, actor: assignee, reason: "   ", wantErr: ErrReasonRequired},
		{name: "raised cannot resolve directly", to: vo.StatusResolved, actor: assignee, wantErr: ErrInvalidTransition},
		{name: "illegal move reported before missing reason", path: []vo.Status{vo.StatusInProgress}, to: vo.StatusSpam, actor: other, wantErr: ErrInvalidTransition},
		{name: "missing reason reported before authorization", to: vo.StatusSpam, actor: other, wantErr: ErrReasonRequired},
		{name: "other authority", to: vo.StatusInProgress, actor: other, wantErr: ErrNotAssignedAuthority},
		{name: "inactive admin", to: vo.StatusInProgress, actor: retiredAdmin, wantErr: ErrNotAssignedAuthority},
		{name: "unknown status", to: vo.Status("Archived"), actor: admin, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestComplaint(t, assignee)
			for _, s := range tt.path {
				_, err := c.UpdateStatus(s, admin, "setup")
				require.NoError(t, err)
			}
			before := c.Status()

			update, err := c.UpdateStatus(tt.to, tt.actor, tt.reason)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Equal(t, before, c.Status())
				assert.Nil(t, update)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, c.Status())
			assert.Equal(t, before, update.OldStatus())
			assert.Equal(t, tt.to, update.NewStatus())
			assert.Equal(t, tt.actor.ID(), *update.ActorID())
		})
	}
}

func TestComplaint_UpdateStatus_ErrorTaxonomy(t *testing.T) {
	assignee := testAuthority(t, 10, authority.TypeAdminOfficer, true)
	c, _ := newTestComplaint(t, assignee)

	_, err := c.UpdateStatus(vo.StatusResolved, assignee, "")
	assert.True(t, apperrors.IsValidationError(err))
	assert.Equal(t, "invalid_transition", apperrors.ReasonOf(err))

	_, err = c.UpdateStatus(vo.StatusInProgress, nil, "")
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestComplaint_UpdateStatus_Timestamps(t *testing.T) {
	assignee := testAuthority(t, 10, authority.TypeWardenMen, true)
	c, _ := newTestComplaint(t, assignee)

	_, err := c.UpdateStatus(vo.StatusInProgress, assignee, "")
	require.NoError(t, err)
	require.NotNil(t, c.AcknowledgedAt())
	ack := *c.AcknowledgedAt()

	evts := c.PullEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, EventTypeStatusChanged, evts[0].GetEventType())
	assert.Equal(t, EventTypeAcknowledged, evts[1].GetEventType())

	_, err = c.UpdateStatus(vo.StatusResolved, assignee, "")
	require.NoError(t, err)
	assert.NotNil(t, c.ResolvedAt())

	_, err = c.UpdateStatus(vo.StatusRaised, assignee, "student reports it again")
	require.NoError(t, err)
	assert.Nil(t, c.ResolvedAt())

	_, err = c.UpdateStatus(vo.StatusInProgress, assignee, "")
	require.NoError(t, err)
	assert.Equal(t, ack, *c.AcknowledgedAt())

	for _, e := range c.PullEvents() {
		assert.NotEqual(t, EventTypeAcknowledged, e.GetEventType())
	}
}

func TestComplaint_UpdateStatus_MarksSpam(t *testing.T) {
	assignee := testAuthority(t, 10, authority.TypeAdminOfficer, true)
	c, _ := newTestComplaint(t, assignee)

	_, err := c.UpdateStatus(vo.StatusSpam, assignee, "abusive content")
	require.NoError(t, err)
	assert.True(t, c.IsMarkedAsSpam())

	_, err = c.UpdateStatus(vo.StatusClosed, assignee, "spam confirmed")
	require.NoError(t, err)
	assert.True(t, c.IsMarkedAsSpam())
}
