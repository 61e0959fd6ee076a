package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/gharzo/engine/internal/domain/complaint"
	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/gharzo/engine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormComplaintRepository implements complaint.Repository using GORM
type GormComplaintRepository struct {
	db *gorm.DB
}

// NewGormComplaintRepository creates a new GormComplaintRepository
func NewGormComplaintRepository(db *gorm.DB) *GormComplaintRepository {
	return &GormComplaintRepository{db: db}
}

// FindByID finds a complaint by its internal ID
func (r *GormComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a complaint by its human-readable number
func (r *GormComplaintRepository) FindByNumber(ctx context.Context, number string) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	if err := r.db.WithContext(ctx).First(&model, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists complaints matching the filter, newest first
func (r *GormComplaintRepository) FindAll(ctx context.Context, filter complaint.Filter) ([]complaint.Complaint, error) {
	query := r.db.WithContext(ctx).Model(&models.ComplaintModel{})
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", string(*filter.Priority))
	}

	var list []models.ComplaintModel
	if err := query.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}

	complaints := make([]complaint.Complaint, 0, len(list))
	for i := range list {
		complaints = append(complaints, *list[i].ToDomain())
	}
	return complaints, nil
}

// Save creates or updates a complaint
func (r *GormComplaintRepository) Save(ctx context.Context, c *complaint.Complaint) error {
	model := models.ComplaintModelFromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with an optimistic version check. The aggregate has
// already incremented its version; the row must still hold the previous one.
func (r *GormComplaintRepository) SaveWithLock(ctx context.Context, c *complaint.Complaint) error {
	model := models.ComplaintModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&models.ComplaintModel{}).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Select("*").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// NextNumber generates the next human-readable complaint number
func (r *GormComplaintRepository) NextNumber(ctx context.Context) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ComplaintModel{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("COMP-%03d", count+1), nil
}

var _ complaint.Repository = (*GormComplaintRepository)(nil)
