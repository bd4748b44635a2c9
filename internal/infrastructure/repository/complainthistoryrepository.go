package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"campusvoice/internal/domain/complaint"
	vo "campusvoice/internal/domain/complaint/valueobjects"
	"campusvoice/internal/infrastructure/persistence/mappers"
	"campusvoice/internal/infrastructure/persistence/models"
	"campusvoice/internal/shared/db"
	"campusvoice/internal/shared/errors"
)

type StatusUpdateRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewStatusUpdateRepository(db *gorm.DB) *StatusUpdateRepository {
	return &StatusUpdateRepository{
		db:     db,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *StatusUpdateRepository) Append(ctx context.Context, u *complaint.StatusUpdate) error {
	model := r.mapper.StatusUpdateToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append status update: %w", err)
	}
	return u.SetID(model.ID)
}

// ListByComplaint returns the history in insertion order.
func (r *StatusUpdateRepository) ListByComplaint(ctx context.Context, complaintID string) ([]*complaint.StatusUpdate, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.StatusUpdateModel
	if err := tx.
		Where("complaint_id = ?", complaintID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list status updates: %w", err)
	}

	updates := make([]*complaint.StatusUpdate, len(rows))
	for i := range rows {
		u, err := r.mapper.StatusUpdateToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		updates[i] = u
	}
	return updates, nil
}

type EscalationRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewEscalationRepository(db *gorm.DB) *EscalationRepository {
	return &EscalationRepository{
		db:     db,
		mapper: mappers.NewComplaintMapper(),
	}
}

// Create stores r. A second current record for the same complaint violates
// the current_key index and is reported as a concurrent modification.
func (r *EscalationRepository) Create(ctx context.Context, rec *complaint.EscalationRecord) error {
	model := r.mapper.EscalationToModel(rec)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return complaint.ErrConcurrentModification.WithDetails("escalation of complaint %s", rec.ComplaintID())
		}
		return fmt.Errorf("failed to create escalation record: %w", err)
	}
	return rec.SetID(model.ID)
}

func (r *EscalationRepository) Retire(ctx context.Context, rec *complaint.EscalationRecord) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.EscalationRecordModel{}).
		Where("id = ? AND is_current = ?", rec.ID(), true).
		Updates(map[string]any{
			"is_current":  false,
			"current_key": nil,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to retire escalation record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return complaint.ErrConcurrentModification.WithDetails("escalation record %d is no longer current", rec.ID())
	}
	return nil
}

func (r *EscalationRepository) GetCurrent(ctx context.Context, complaintID string) (*complaint.EscalationRecord, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.EscalationRecordModel
	if err := tx.
		Where("complaint_id = ? AND is_current = ?", complaintID, true).
		First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewInternalError("complaint has no current escalation record", complaintID)
		}
		return nil, fmt.Errorf("failed to get current escalation record: %w", err)
	}
	return r.mapper.EscalationToDomain(&model)
}

// ListByComplaint returns the chain ordered by level.
func (r *EscalationRepository) ListByComplaint(ctx context.Context, complaintID string) ([]*complaint.EscalationRecord, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.EscalationRecordModel
	if err := tx.
		Where("complaint_id = ?", complaintID).
		Order("level ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list escalation records: %w", err)
	}

	records := make([]*complaint.EscalationRecord, len(rows))
	for i := range rows {
		rec, err := r.mapper.EscalationToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}

type VoteRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{
		db:     db,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *VoteRepository) Find(ctx context.Context, complaintID, studentID string) (*complaint.Vote, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.VoteModel
	if err := tx.
		Where("complaint_id = ? AND student_id = ?", complaintID, studentID).
		First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}
	return r.mapper.VoteToDomain(&model)
}

func (r *VoteRepository) Create(ctx context.Context, v *complaint.Vote) error {
	model := r.mapper.VoteToModel(v)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return complaint.ErrDuplicateVote
		}
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return v.SetID(model.ID)
}

func (r *VoteRepository) Update(ctx context.Context, v *complaint.Vote) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.VoteModel{}).
		Where("id = ?", v.ID()).
		Updates(map[string]any{
			"vote_type":  v.VoteType().String(),
			"updated_at": v.UpdatedAt().UnixMilli(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update vote: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return complaint.ErrVoteNotFound
	}
	return nil
}

func (r *VoteRepository) Delete(ctx context.Context, v *complaint.Vote) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.VoteModel{}, v.ID())
	if result.Error != nil {
		return fmt.Errorf("failed to delete vote: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return complaint.ErrVoteNotFound
	}
	return nil
}

func (r *VoteRepository) Tally(ctx context.Context, complaintID string) (int, int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		VoteType string
		Total    int
	}
	if err := tx.
		Model(&models.VoteModel{}).
		Select("vote_type, COUNT(*) AS total").
		Where("complaint_id = ?", complaintID).
		Group("vote_type").
		Scan(&rows).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to tally votes: %w", err)
	}

	var up, down int
	for _, row := range rows {
		switch vo.VoteType(row.VoteType) {
		case vo.VoteUp:
			up = row.Total
		case vo.VoteDown:
			down = row.Total
		}
	}
	return up, down, nil
}
