package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/infrastructure/persistence/models"
	"campusvoice/internal/shared/errors"
)

func TestAuthorityRepository_FindActive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAuthorityRepository(db)

	dept1, dept2 := uint(1), uint(2)
	first := createAuthority(t, repo, authority.TypeAdminOfficer, nil)
	createAuthority(t, repo, authority.TypeAdminOfficer, nil)
	hod2 := createAuthority(t, repo, authority.TypeHOD, &dept2)

	found, err := repo.FindActive(ctx, authority.TypeAdminOfficer, nil)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID(), found.ID())

	found, err = repo.FindActive(ctx, authority.TypeHOD, &dept2)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, hod2.ID(), found.ID())
	require.NotNil(t, found.DepartmentID())
	assert.Equal(t, dept2, *found.DepartmentID())

	found, err = repo.FindActive(ctx, authority.TypeHOD, &dept1)
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, db.Model(&models.AuthorityModel{}).Where("id = ?", first.ID()).Update("is_active", false).Error)
	found, err = repo.FindActive(ctx, authority.TypeAdminOfficer, nil)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.NotEqual(t, first.ID(), found.ID())

	inactive, err := repo.GetByID(ctx, first.ID())
	require.NoError(t, err)
	assert.False(t, inactive.IsActive())

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, authority.ErrAuthorityNotFound)
}

func TestDepartmentRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewDepartmentRepository(db)

	cse := &campus.Department{Code: "cse ", Name: "Computer Science"}
	require.NoError(t, repo.Create(ctx, cse))
	assert.NotZero(t, cse.ID)
	assert.Equal(t, "CSE", cse.Code)

	byCode, err := repo.GetByCode(ctx, "Cse")
	require.NoError(t, err)
	assert.Equal(t, cse.ID, byCode.ID)

	byID, err := repo.GetByID(ctx, cse.ID)
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", byID.Name)

	err = repo.Create(ctx, &campus.Department{Code: "CSE", Name: "Again"})
	assert.True(t, errors.IsConflictError(err))

	_, err = repo.GetByCode(ctx, "MECH")
	assert.ErrorIs(t, err, campus.ErrDepartmentNotFound)
	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, campus.ErrDepartmentNotFound)
}

func TestStudentRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewStudentRepository(db)

	profile := campus.Profile{Gender: campus.GenderFemale, StayType: campus.StayHostel, DepartmentID: 3}
	s, err := campus.ReconstructStudent("21CS001", "Asha", "asha@campus.edu", profile, true)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, s))

	found, err := repo.GetByRollNo(ctx, "21CS001")
	require.NoError(t, err)
	assert.Equal(t, profile, found.Profile())
	assert.Equal(t, "Asha", found.Name())

	moved := campus.Profile{Gender: campus.GenderFemale, StayType: campus.StayDayScholar, DepartmentID: 3}
	s, err = campus.ReconstructStudent("21CS001", "Asha", "asha@campus.edu", moved, true)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, s))

	found, err = repo.GetByRollNo(ctx, "21CS001")
	require.NoError(t, err)
	assert.Equal(t, campus.StayDayScholar, found.Profile().StayType)

	_, err = repo.GetByRollNo(ctx, "nobody")
	assert.ErrorIs(t, err, campus.ErrStudentNotFound)
}

func TestAuthorityRepository_FindByEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAuthorityRepository(db)

	a, err := authority.NewAuthority("Warden", "warden@campus.edu", authority.TypeWardenMen, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, a))

	found, err := repo.FindByEmail(ctx, " warden@campus.edu ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, a.ID(), found.ID())

	found, err = repo.FindByEmail(ctx, "nobody@campus.edu")
	require.NoError(t, err)
	assert.Nil(t, found)
}
