package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gharzo/engine/internal/domain/ledger"
	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/gharzo/engine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements ledger.PaymentRepository using GORM.
// Payments are append-only; there is no update path.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	payment := model.ToDomain()
	return &payment, nil
}

// FindByLandlord finds payments collected across a landlord's properties
// within [from, to)
func (r *GormPaymentRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID, from, to time.Time) ([]ledger.Payment, error) {
	var list []models.PaymentModel
	err := r.db.WithContext(ctx).
		Where("landlord_id = ? AND received_at >= ? AND received_at < ?", landlordID, from, to).
		Order("received_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayments(list), nil
}

// FindByProperty finds payments for a property within [from, to)
func (r *GormPaymentRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]ledger.Payment, error) {
	var list []models.PaymentModel
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND received_at >= ? AND received_at < ?", propertyID, from, to).
		Order("received_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayments(list), nil
}

// Record appends a payment
func (r *GormPaymentRepository) Record(ctx context.Context, payment *ledger.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Create(model).Error
}

func toDomainPayments(list []models.PaymentModel) []ledger.Payment {
	payments := make([]ledger.Payment, 0, len(list))
	for i := range list {
		payments = append(payments, list[i].ToDomain())
	}
	return payments
}

var _ ledger.PaymentRepository = (*GormPaymentRepository)(nil)
