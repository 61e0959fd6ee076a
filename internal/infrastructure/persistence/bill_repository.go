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

// GormBillRepository implements ledger.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	bill := model.ToDomain()
	return &bill, nil
}

// FindByTenant finds all bills for a tenant
func (r *GormBillRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.Bill, error) {
	var list []models.BillModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("due_date ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return toDomainBills(list), nil
}

// FindByLandlord finds all bills across a landlord's properties
func (r *GormBillRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter ledger.BillFilter) ([]ledger.Bill, error) {
	query := r.db.WithContext(ctx).Where("landlord_id = ?", landlordID)
	query = applyBillFilter(query, filter)

	var list []models.BillModel
	if err := query.Order("due_date ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return toDomainBills(list), nil
}

// FindByProperty finds all bills for a property
func (r *GormBillRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]ledger.Bill, error) {
	var list []models.BillModel
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("due_date ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return toDomainBills(list), nil
}

// Save creates or updates a bill
func (r *GormBillRepository) Save(ctx context.Context, bill *ledger.Bill) error {
	model := models.BillModelFromDomain(bill)
	return r.db.WithContext(ctx).Save(model).Error
}

func applyBillFilter(query *gorm.DB, filter ledger.BillFilter) *gorm.DB {
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date < ?", *filter.DueTo)
	}
	return query
}

func toDomainBills(list []models.BillModel) []ledger.Bill {
	bills := make([]ledger.Bill, 0, len(list))
	for i := range list {
		bills = append(bills, list[i].ToDomain())
	}
	return bills
}

var _ ledger.BillRepository = (*GormBillRepository)(nil)
