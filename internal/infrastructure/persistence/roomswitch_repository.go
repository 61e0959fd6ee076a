package persistence

import (
	"context"
	"errors"

	"github.com/gharzo/engine/internal/domain/roomswitch"
	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/gharzo/engine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRoomSwitchRepository implements roomswitch.Repository using GORM
type GormRoomSwitchRepository struct {
	db *gorm.DB
}

// NewGormRoomSwitchRepository creates a new GormRoomSwitchRepository
func NewGormRoomSwitchRepository(db *gorm.DB) *GormRoomSwitchRepository {
	return &GormRoomSwitchRepository{db: db}
}

// FindByID finds a request by ID
func (r *GormRoomSwitchRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomswitch.RoomSwitchRequest, error) {
	var model models.RoomSwitchRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists requests matching the filter, newest first
func (r *GormRoomSwitchRepository) FindAll(ctx context.Context, filter roomswitch.Filter) ([]roomswitch.RoomSwitchRequest, error) {
	query := r.db.WithContext(ctx).Model(&models.RoomSwitchRequestModel{})
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.From != nil {
		query = query.Where("request_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("request_date < ?", *filter.To)
	}

	var list []models.RoomSwitchRequestModel
	if err := query.Order("request_date DESC").Find(&list).Error; err != nil {
		return nil, err
	}

	requests := make([]roomswitch.RoomSwitchRequest, 0, len(list))
	for i := range list {
		requests = append(requests, *list[i].ToDomain())
	}
	return requests, nil
}

// ExistsPendingForTarget reports whether the tenant already has a pending
// request for the given bed
func (r *GormRoomSwitchRepository) ExistsPendingForTarget(ctx context.Context, tenantID uuid.UUID, roomID, bedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RoomSwitchRequestModel{}).
		Where("tenant_id = ? AND requested_room_id = ? AND requested_bed_id = ? AND status = ?",
			tenantID, roomID, bedID, string(roomswitch.StatusPending)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Summary returns the per-status request counts
func (r *GormRoomSwitchRepository) Summary(ctx context.Context) (*roomswitch.StatusSummary, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.RoomSwitchRequestModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &roomswitch.StatusSummary{}
	for _, row := range rows {
		switch roomswitch.Status(row.Status) {
		case roomswitch.StatusPending:
			summary.Pending = row.Count
		case roomswitch.StatusApproved:
			summary.Approved = row.Count
		case roomswitch.StatusRejected:
			summary.Rejected = row.Count
		}
	}
	return summary, nil
}

// Save creates or updates a request
func (r *GormRoomSwitchRepository) Save(ctx context.Context, req *roomswitch.RoomSwitchRequest) error {
	model := models.RoomSwitchRequestModelFromDomain(req)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with an optimistic version check
func (r *GormRoomSwitchRepository) SaveWithLock(ctx context.Context, req *roomswitch.RoomSwitchRequest) error {
	model := models.RoomSwitchRequestModelFromDomain(req)
	result := r.db.WithContext(ctx).
		Model(&models.RoomSwitchRequestModel{}).
		Where("id = ? AND version = ?", req.ID, req.Version-1).
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

var _ roomswitch.Repository = (*GormRoomSwitchRepository)(nil)
