package persistence

import (
	"context"
	"time"

	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/gharzo/engine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOccupancyService adapts the tenants table to the room switch
// occupancy port. Reassignment moves the tenant to the new bed in one
// update; the old bed frees up implicitly because occupancy is derived
// from the tenant rows.
type GormOccupancyService struct {
	db *gorm.DB
}

// NewGormOccupancyService creates a new GormOccupancyService
func NewGormOccupancyService(db *gorm.DB) *GormOccupancyService {
	return &GormOccupancyService{db: db}
}

// IsBedOccupied reports whether any tenant other than excludeTenant
// occupies the given bed
func (s *GormOccupancyService) IsBedOccupied(ctx context.Context, propertyID uuid.UUID, roomID, bedID string, excludeTenant uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.TenantModel{}).
		Where("property_id = ? AND room_id = ? AND bed_id = ? AND id <> ?",
			propertyID, roomID, bedID, excludeTenant).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Reassign moves the tenant's accommodation to the requested bed. The bed
// must still be free at commit time; a concurrent occupant fails the move.
func (s *GormOccupancyService) Reassign(ctx context.Context, tenantID, propertyID uuid.UUID, roomID, bedID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var occupants int64
		err := tx.Model(&models.TenantModel{}).
			Where("property_id = ? AND room_id = ? AND bed_id = ? AND id <> ?",
				propertyID, roomID, bedID, tenantID).
			Count(&occupants).Error
		if err != nil {
			return err
		}
		if occupants > 0 {
			return shared.NewDomainError("INVALID_TARGET", "Requested bed is already occupied")
		}

		result := tx.Model(&models.TenantModel{}).
			Where("id = ? AND property_id IS NOT NULL", tenantID).
			Updates(map[string]any{
				"property_id": propertyID,
				"room_id":     roomID,
				"bed_id":      bedID,
				"updated_at":  time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
