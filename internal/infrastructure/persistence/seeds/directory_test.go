package seeds

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campusvoice/internal/domain/authority"
	"campusvoice/internal/domain/campus"
	"campusvoice/internal/infrastructure/migration"
	"campusvoice/internal/infrastructure/persistence/models"
	"campusvoice/internal/infrastructure/repository"
	"campusvoice/internal/shared/logger"
)

const sampleDirectory = `
departments:
  - code: cse
    name: Computer Science
  - code: ECE
    name: Electronics
authorities:
  - name: Men's Warden
    email: Warden.Men@campus.edu
    type: Warden-Men
  - name: CSE Head
    email: hod.cse@campus.edu
    type: HOD
    department: CSE
  - name: Retired Head
    email: old.hod@campus.edu
    type: HOD
    department: ECE
    active: false
students:
  - roll_no: 21CS001
    name: Asha
    email: asha@campus.edu
    gender: Female
    stay_type: Hostel
    department: CSE
  - roll_no: 21EC002
    name: Ravi
    email: ravi@campus.edu
    gender: Male
    stay_type: Day Scholar
    department: ece
    active: false
`

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.NewMigrator(db, "sqlite", logger.NewDiscard())
	require.NoError(t, err)
	require.NoError(t, m.Up(context.Background()))
	return db
}

func TestLoadDirectory(t *testing.T) {
	d, err := LoadDirectory(strings.NewReader(sampleDirectory))
	require.NoError(t, err)
	assert.Len(t, d.Departments, 2)
	assert.Len(t, d.Authorities, 3)
	require.Len(t, d.Students, 2)
	require.NotNil(t, d.Students[1].Active)
	assert.False(t, *d.Students[1].Active)

	empty, err := LoadDirectory(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Students)

	_, err = LoadDirectory(strings.NewReader("faculty:\n  - name: x\n"))
	assert.Error(t, err)
}

func TestSeedDirectory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	d, err := LoadDirectory(strings.NewReader(sampleDirectory))
	require.NoError(t, err)

	res, err := SeedDirectory(ctx, db, d)
	require.NoError(t, err)
	assert.Equal(t, Result{DepartmentsCreated: 2, AuthoritiesCreated: 3, StudentsSaved: 2}, res)

	cse, err := repository.NewDepartmentRepository(db).GetByCode(ctx, "CSE")
	require.NoError(t, err)

	hod, err := repository.NewAuthorityRepository(db).FindActive(ctx, authority.TypeHOD, &cse.ID)
	require.NoError(t, err)
	require.NotNil(t, hod)
	assert.Equal(t, "hod.cse@campus.edu", hod.Email())

	warden, err := repository.NewAuthorityRepository(db).FindByEmail(ctx, "warden.men@campus.edu")
	require.NoError(t, err)
	require.NotNil(t, warden)

	ece, err := repository.NewDepartmentRepository(db).GetByCode(ctx, "ECE")
	require.NoError(t, err)
	retired, err := repository.NewAuthorityRepository(db).FindActive(ctx, authority.TypeHOD, &ece.ID)
	require.NoError(t, err)
	assert.Nil(t, retired)

	asha, err := repository.NewStudentRepository(db).GetByRollNo(ctx, "21CS001")
	require.NoError(t, err)
	assert.Equal(t, campus.Profile{Gender: campus.GenderFemale, StayType: campus.StayHostel, DepartmentID: cse.ID}, asha.Profile())
	assert.True(t, asha.IsActive())

	ravi, err := repository.NewStudentRepository(db).GetByRollNo(ctx, "21EC002")
	require.NoError(t, err)
	assert.False(t, ravi.IsActive())

	// A second run changes nothing but the students.
	res, err = SeedDirectory(ctx, db, d)
	require.NoError(t, err)
	assert.Equal(t, Result{AuthoritiesSkipped: 3, StudentsSaved: 2}, res)

	var count int64
	require.NoError(t, db.Model(&models.AuthorityModel{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestSeedDirectory_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	d := &Directory{
		Departments: []DepartmentEntry{{Code: "CSE", Name: "Computer Science"}},
		Students: []StudentEntry{{
			RollNo: "X1", Name: "X", Gender: "Male", StayType: "Hostel", Department: "MECH",
		}},
	}
	_, err := SeedDirectory(ctx, db, d)
	require.Error(t, err)

	_, err = repository.NewDepartmentRepository(db).GetByCode(ctx, "CSE")
	assert.ErrorIs(t, err, campus.ErrDepartmentNotFound)
}
