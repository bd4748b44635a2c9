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
)

var hostelCategories = []vo.Category{vo.CategoryMensHostel, vo.CategoryWomensHostel}

type ComplaintRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{
		db:     db,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *ComplaintRepository) Create(ctx context.Context, c *complaint.Complaint) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id string) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, complaint.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("failed to find complaint: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// Update performs a compare-and-swap on the version column and advances
// the aggregate's version on success.
func (r *ComplaintRepository) Update(ctx context.Context, c *complaint.Complaint) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)
	next := c.Version() + 1

	result := tx.
		Model(&models.ComplaintModel{}).
		Where("id = ? AND version = ?", model.ID, c.Version()).
		Updates(map[string]any{
			"status":                model.Status,
			"priority_tier":         model.PriorityTier,
			"priority_score":        model.PriorityScore,
			"upvotes":               model.Upvotes,
			"downvotes":             model.Downvotes,
			"is_marked_as_spam":     model.IsMarkedAsSpam,
			"assigned_authority_id": model.AssignedAuthorityID,
			"updated_at":            model.UpdatedAt,
			"resolved_at":           model.ResolvedAt,
			"acknowledged_at":       model.AcknowledgedAt,
			"version":               next,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update complaint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return complaint.ErrConcurrentModification.WithDetails("complaint %s at version %d", model.ID, c.Version())
	}

	c.SetVersion(next)
	return nil
}

// ListFeed translates the student feed rules into SQL. It must stay in
// step with Complaint.IsVisibleTo.
func (r *ComplaintRepository) ListFeed(ctx context.Context, q complaint.FeedQuery) ([]*complaint.Complaint, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ComplaintModel{})

	if !q.IncludeClosed {
		query = query.Where("status <> ?", vo.StatusClosed.String())
	}
	query = query.Where(r.visibleToViewer(tx, q.Viewer))

	if q.Category != nil {
		query = query.Where("category = ?", q.Category.String())
	}
	if q.Status != nil {
		query = query.Where("status = ?", q.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	var complaintModels []models.ComplaintModel
	if err := query.
		Order("priority_score DESC").
		Order("submitted_at DESC").
		Order("id ASC").
		Scopes(db.Paginate(q.Page, q.PageSize)).
		Find(&complaintModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list complaints: %w", err)
	}

	complaints, err := r.toDomainList(complaintModels)
	if err != nil {
		return nil, 0, err
	}
	return complaints, total, nil
}

func (r *ComplaintRepository) visibleToViewer(tx *gorm.DB, v complaint.Viewer) *gorm.DB {
	hostelAllowed := "" // no hostel category admits the viewer
	if v.Profile.IsHosteller() {
		for _, c := range hostelCategories {
			if g, _ := c.HostelGender(); g == v.Profile.Gender {
				hostelAllowed = c.String()
			}
		}
	}

	hostelRule := tx.Session(&gorm.Session{NewDB: true}).
		Where("category NOT IN ?", categoryNames(hostelCategories)).
		Or("category = ?", hostelAllowed)

	departmentLocal := "(visibility = ? OR (category = ? AND is_cross_department = ?))"
	departmentRule := tx.Session(&gorm.Session{NewDB: true}).
		Not(departmentLocal, vo.VisibilityDepartment.String(), vo.CategoryDepartment.String(), false).
		Or("COALESCE(department_id, submitter_department_id) = ?", v.Profile.DepartmentID)

	shared := tx.Session(&gorm.Session{NewDB: true}).
		Where("visibility <> ?", vo.VisibilityPrivate.String()).
		Where(hostelRule).
		Where(departmentRule)

	return tx.Session(&gorm.Session{NewDB: true}).
		Where("submitter_id = ?", v.StudentID).
		Or(shared)
}

func (r *ComplaintRepository) ListAfter(ctx context.Context, afterID string, limit int) ([]*complaint.Complaint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var complaintModels []models.ComplaintModel
	if err := tx.
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&complaintModels).Error; err != nil {
		return nil, fmt.Errorf("failed to page complaints: %w", err)
	}
	return r.toDomainList(complaintModels)
}

func (r *ComplaintRepository) toDomainList(rows []models.ComplaintModel) ([]*complaint.Complaint, error) {
	complaints := make([]*complaint.Complaint, len(rows))
	for i := range rows {
		c, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		complaints[i] = c
	}
	return complaints, nil
}

func categoryNames(categories []vo.Category) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()
	}
	return names
}
