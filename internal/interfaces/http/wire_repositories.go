package http

import (
	"gorm.io/gorm"

	"campusvoice/internal/infrastructure/repository"
	"campusvoice/internal/shared/db"
)

// repositories holds all repository instances used by the server.
type repositories struct {
	departments   *repository.DepartmentRepository
	authorities   *repository.AuthorityRepository
	students      *repository.StudentRepository
	complaints    *repository.ComplaintRepository
	statusUpdates *repository.StatusUpdateRepository
	escalations   *repository.EscalationRepository
	votes         *repository.VoteRepository
	notices       *repository.NoticeRepository
	txm           *db.TransactionManager
}

func newRepositories(gdb *gorm.DB) *repositories {
	return &repositories{
		departments:   repository.NewDepartmentRepository(gdb),
		authorities:   repository.NewAuthorityRepository(gdb),
		students:      repository.NewStudentRepository(gdb),
		complaints:    repository.NewComplaintRepository(gdb),
		statusUpdates: repository.NewStatusUpdateRepository(gdb),
		escalations:   repository.NewEscalationRepository(gdb),
		votes:         repository.NewVoteRepository(gdb),
		notices:       repository.NewNoticeRepository(gdb),
		txm:           db.NewTransactionManager(gdb),
	}
}
