package persistence

import (
	"context"
	"errors"

	"github.com/gharzo/engine/internal/domain/ledger"
	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/gharzo/engine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTenantRepository implements ledger.TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	tenant := model.ToDomain()
	return &tenant, nil
}

// FindByLandlord finds all tenants under a landlord's properties
func (r *GormTenantRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]ledger.Tenant, error) {
	var list []models.TenantModel
	err := r.db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return toDomainTenants(list), nil
}

// FindByProperty finds all tenants actively accommodated at a property
func (r *GormTenantRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]ledger.Tenant, error) {
	var list []models.TenantModel
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return toDomainTenants(list), nil
}

// FindActiveByBed finds the tenant actively occupying the given bed
func (r *GormTenantRepository) FindActiveByBed(ctx context.Context, propertyID uuid.UUID, roomID, bedID string) (*ledger.Tenant, error) {
	var model models.TenantModel
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND room_id = ? AND bed_id = ?", propertyID, roomID, bedID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	tenant := model.ToDomain()
	return &tenant, nil
}

func toDomainTenants(list []models.TenantModel) []ledger.Tenant {
	tenants := make([]ledger.Tenant, 0, len(list))
	for i := range list {
		tenants = append(tenants, list[i].ToDomain())
	}
	return tenants
}

var _ ledger.TenantRepository = (*GormTenantRepository)(nil)
