package repository

import (
	"cmp"
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"time"

	"gorm.io/gorm"

	"campusvoice/internal/domain/notice"
	"campusvoice/internal/infrastructure/persistence/mappers"
	"campusvoice/internal/infrastructure/persistence/models"
	"campusvoice/internal/shared/db"
)

type NoticeRepository struct {
	db     *gorm.DB
	mapper mappers.NoticeMapper
}

func NewNoticeRepository(db *gorm.DB) *NoticeRepository {
	return &NoticeRepository{
		db:     db,
		mapper: mappers.NewNoticeMapper(),
	}
}

func (r *NoticeRepository) Create(ctx context.Context, n *notice.Notice) error {
	model, err := r.mapper.ToModel(n)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notice: %w", err)
	}
	return n.SetID(model.ID)
}

func (r *NoticeRepository) GetByID(ctx context.Context, id uint) (*notice.Notice, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.NoticeModel
	if err := tx.First(&model, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notice.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("failed to find notice: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// Update persists the mutable state of a notice.
func (r *NoticeRepository) Update(ctx context.Context, n *notice.Notice) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.NoticeModel{}).
		Where("id = ?", n.ID()).
		Updates(map[string]any{
			"is_active":  n.IsActive(),
			"updated_at": n.UpdatedAt().UnixMilli(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update notice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notice.ErrNoticeNotFound
	}
	return nil
}

func (r *NoticeRepository) ListActive(ctx context.Context, now time.Time) ([]*notice.Notice, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.NoticeModel
	if err := tx.
		Scopes(db.ActiveOnly()).
		Where("expires_at IS NULL OR expires_at > ?", now.UnixMilli()).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}

	notices := make([]*notice.Notice, 0, len(rows))
	for i := range rows {
		n, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}

	slices.SortStableFunc(notices, func(a, b *notice.Notice) int {
		return cmp.Compare(b.Priority().Rank(), a.Priority().Rank())
	})
	return notices, nil
}
