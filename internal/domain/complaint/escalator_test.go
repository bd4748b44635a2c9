package complaint

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvoice/internal/domain/authority"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	apperrors "campusvoice/internal/shared/errors"
)

func TestEscalator_WalksHostelChain(t *testing.T) {
	ctx := context.Background()
	warden := testAuthority(t, 10, authority.TypeWardenMen, true)
	deputy := testAuthority(t, 11, authority.TypeDeputyWardenMen, true)
	senior := testAuthority(t, 12, authority.TypeSeniorDeputyWarden, true)
	admin := testAuthority(t, 1, authority.TypeAdmin, true)
	dir := newFakeDirectory(warden, deputy, senior, admin)
	esc := NewEscalator(dir)

	c, current := newTestComplaint(t, warden, withCategory(vo.CategoryMensHostel))
	chain := []*EscalationRecord{current}

	for _, want := range []*authority.Authority{deputy, senior, admin} {
		requester, err := dir.GetByID(ctx, c.AssignedAuthorityID())
		require.NoError(t, err)

		next, err := esc.Escalate(ctx, c, current, requester, "no response in 48 hours")
		require.NoError(t, err)

		assert.False(t, current.IsCurrent())
		assert.True(t, next.IsCurrent())
		assert.Equal(t, current.Level()+1, next.Level())
		assert.Equal(t, want.ID(), next.AuthorityID())
		assert.Equal(t, want.Type(), next.AuthorityType())
		assert.Equal(t, want.ID(), c.AssignedAuthorityID())
		assert.Equal(t, requester.ID(), *next.EscalatedBy())

		current = next
		chain = append(chain, next)
	}

	_, err := esc.Escalate(ctx, c, current, admin, "still unresolved")
	assert.True(t, errors.Is(err, ErrNoHigherLevel))

	assert.Empty(t, Audit(c, nil, chain, 0, 0, DefaultPriorityPolicy()))
}

func TestEscalator_Checks(t *testing.T) {
	ctx := context.Background()
	hod := testAuthority(t, 20, authority.TypeHOD, true)
	otherHod := testAuthority(t, 21, authority.TypeHOD, true)
	admin := testAuthority(t, 1, authority.TypeAdmin, true)
	retiredAdmin := testAuthority(t, 2, authority.TypeAdmin, false)
	dc := testAuthority(t, 30, authority.TypeDisciplinaryCommittee, true)

	t.Run("other authority", func(t *testing.T) {
		c, rec := newTestComplaint(t, hod, withCategory(vo.CategoryDepartment))
		_, err := NewEscalator(newFakeDirectory(hod, otherHod, admin)).Escalate(ctx, c, rec, otherHod, "reason")
		assert.True(t, errors.Is(err, ErrNotCurrentAuthority))
	})

	t.Run("authorization checked before reason", func(t *testing.T) {
		c, rec := newTestComplaint(t, hod, withCategory(vo.CategoryDepartment))
		_, err := NewEscalator(newFakeDirectory(hod, otherHod, admin)).Escalate(ctx, c, rec, otherHod, "")
		assert.True(t, errors.Is(err, ErrNotCurrentAuthority))
	})

	t.Run("missing reason", func(t *testing.T) {
		c, rec := newTestComplaint(t, hod, withCategory(vo.CategoryDepartment))
		_, err := NewEscalator(newFakeDirectory(hod, admin)).Escalate(ctx, c, rec, hod, " ")
		assert.True(t, errors.Is(err, ErrReasonRequired))
		assert.True(t, rec.IsCurrent())
	})

	t.Run("admin may escalate on behalf of assignee", func(t *testing.T) {
		c, rec := newTestComplaint(t, dc, withCategory(vo.CategoryDisciplinaryCommittee))
		next, err := NewEscalator(newFakeDirectory(dc, admin)).Escalate(ctx, c, rec, admin, "conflict of interest")
		require.NoError(t, err)
		assert.Equal(t, admin.ID(), next.AuthorityID())
	})

	t.Run("inactive admin", func(t *testing.T) {
		c, rec := newTestComplaint(t, hod, withCategory(vo.CategoryDepartment))
		_, err := NewEscalator(newFakeDirectory(hod, admin, retiredAdmin)).Escalate(ctx, c, rec, retiredAdmin, "reason")
		assert.True(t, errors.Is(err, ErrNotCurrentAuthority))
	})

	t.Run("closed complaint", func(t *testing.T) {
		c, rec := newTestComplaint(t, hod, withCategory(vo.CategoryDepartment))
		_, err := c.UpdateStatus(vo.StatusClosed, hod, "fixed")
		require.NoError(t, err)
		_, err = NewEscalator(newFakeDirectory(hod, admin)).Escalate(ctx, c, rec, hod, "reopen please")
		assert.True(t, errors.Is(err, ErrComplaintClosed))
	})

	t.Run("no active successor", func(t *testing.T) {
		c, rec := newTestComplaint(t, hod, withCategory(vo.CategoryDepartment))
		_, err := NewEscalator(newFakeDirectory(hod, retiredAdmin)).Escalate(ctx, c, rec, hod, "reason")
		assert.True(t, errors.Is(err, authority.ErrNoAuthorityAvailable))
		assert.True(t, apperrors.IsOperationalError(err))
		assert.True(t, rec.IsCurrent())
		assert.Equal(t, hod.ID(), c.AssignedAuthorityID())
	})
}
