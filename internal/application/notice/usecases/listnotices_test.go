package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/domain/notice"
	vo "campusvoice/internal/domain/notice/valueobjects"
	apperrors "campusvoice/internal/shared/errors"
	"campusvoice/internal/shared/logger"
)

func TestListNoticesUseCase_Execute(t *testing.T) {
	now := time.Now().UTC()
	mk := func(id uint, targets notice.Targets) *notice.Notice {
		n, err := notice.ReconstructNotice(id, 1, "n", "c", "c", vo.CategoryGeneral, vo.PriorityLow, targets, true, nil, now, now)
		require.NoError(t, err)
		return n
	}
	everyone := mk(1, notice.Targets{})
	women := mk(2, notice.Targets{Genders: []campus.Gender{campus.GenderFemale}, StayTypes: []campus.StayType{campus.StayHostel}})
	dept2 := mk(3, notice.Targets{Departments: []uint{2}})

	repo := &mockNoticeRepository{
		ListActiveFunc: func(context.Context, time.Time) ([]*notice.Notice, error) {
			return []*notice.Notice{everyone, women, dept2}, nil
		},
	}
	students := &mockStudentRepository{
		GetByRollNoFunc: func(_ context.Context, rollNo string) (*campus.Student, error) {
			switch rollNo {
			case "F1":
				return campus.ReconstructStudent("F1", "F", "", campus.Profile{Gender: campus.GenderFemale, StayType: campus.StayHostel, DepartmentID: 1}, true)
			case "M2":
				return campus.ReconstructStudent("M2", "M", "", campus.Profile{Gender: campus.GenderMale, StayType: campus.StayDayScholar, DepartmentID: 2}, true)
			case "X":
				return campus.ReconstructStudent("X", "X", "", campus.Profile{Gender: campus.GenderMale, StayType: campus.StayHostel, DepartmentID: 1}, false)
			}
			return nil, campus.ErrStudentNotFound
		},
	}
	warden := testAuthority(t, 9, authority.TypeWardenMen, nil)
	uc := NewListNoticesUseCase(repo, students, authoritiesOf(warden), logger.NewDiscard())
	ctx := context.Background()

	ids := func(q ListNoticesQuery) []uint {
		t.Helper()
		list, err := uc.Execute(ctx, q)
		require.NoError(t, err)
		out := make([]uint, len(list))
		for i, n := range list {
			out[i] = n.ID
		}
		return out
	}

	assert.Equal(t, []uint{1, 2}, ids(ListNoticesQuery{StudentID: "F1"}))
	assert.Equal(t, []uint{1, 3}, ids(ListNoticesQuery{StudentID: "M2"}))
	assert.Equal(t, []uint{1, 2, 3}, ids(ListNoticesQuery{AuthorityID: warden.ID()}))

	_, err := uc.Execute(ctx, ListNoticesQuery{StudentID: "X"})
	assert.True(t, errors.Is(err, apperrors.ErrInactiveAccount))

	_, err = uc.Execute(ctx, ListNoticesQuery{})
	assert.True(t, errors.Is(err, apperrors.ErrMissingIdentity))
}
