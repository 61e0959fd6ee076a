package models

import (
	"time"

	"github.com/gharzo/engine/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for ledger.Bill
type BillModel struct {
	AggregateModel
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	PropertyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LandlordID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category   string          `gorm:"type:varchar(20);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate    time.Time       `gorm:"not null;index"`
	Status     string          `gorm:"type:varchar(10);not null;index"`
	PaymentID  *uuid.UUID      `gorm:"type:uuid"`
	PaidAt     *time.Time
}

// TableName specifies the table name
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the model to a domain Bill
func (m *BillModel) ToDomain() ledger.Bill {
	return ledger.Bill{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TenantID:          m.TenantID,
		PropertyID:        m.PropertyID,
		LandlordID:        m.LandlordID,
		Category:          ledger.BillCategory(m.Category),
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		Status:            ledger.BillStatus(m.Status),
		PaymentID:         m.PaymentID,
		PaidAt:            m.PaidAt,
	}
}

// BillModelFromDomain creates a model from a domain Bill
func BillModelFromDomain(b *ledger.Bill) *BillModel {
	m := &BillModel{
		TenantID:   b.TenantID,
		PropertyID: b.PropertyID,
		LandlordID: b.LandlordID,
		Category:   string(b.Category),
		Amount:     b.Amount,
		DueDate:    b.DueDate,
		Status:     string(b.Status),
		PaymentID:  b.PaymentID,
		PaidAt:     b.PaidAt,
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}

// PaymentModel is the persistence model for ledger.Payment
type PaymentModel struct {
	BaseModel
	BillID     *uuid.UUID      `gorm:"type:uuid;index"`
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	PropertyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LandlordID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Source     string          `gorm:"type:varchar(10);not null"`
	ReceivedAt time.Time       `gorm:"not null;index"`
}

// TableName specifies the table name
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the model to a domain Payment
func (m *PaymentModel) ToDomain() ledger.Payment {
	return ledger.Payment{
		BaseEntity: m.BaseModel.ToDomain(),
		BillID:     m.BillID,
		TenantID:   m.TenantID,
		PropertyID: m.PropertyID,
		LandlordID: m.LandlordID,
		Amount:     m.Amount,
		Source:     ledger.PaymentSource(m.Source),
		ReceivedAt: m.ReceivedAt,
	}
}

// PaymentModelFromDomain creates a model from a domain Payment
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{
		BillID:     p.BillID,
		TenantID:   p.TenantID,
		PropertyID: p.PropertyID,
		LandlordID: p.LandlordID,
		Amount:     p.Amount,
		Source:     string(p.Source),
		ReceivedAt: p.ReceivedAt,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// TenantModel is the persistence model for ledger.Tenant. The landlord link
// survives move-out; the accommodation columns are nullable and all-null
// means the tenant no longer occupies a bed.
type TenantModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Contact      string    `gorm:"type:varchar(64)"`
	LandlordID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PropertyID   *uuid.UUID
	PropertyName *string          `gorm:"type:varchar(255)"`
	RoomID       *string          `gorm:"type:varchar(32)"`
	BedID        *string          `gorm:"type:varchar(32)"`
	RentAmount   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MoveInDate   *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain Tenant
func (m *TenantModel) ToDomain() ledger.Tenant {
	t := ledger.Tenant{
		ID:      m.ID,
		Name:    m.Name,
		Contact: m.Contact,
	}
	if m.PropertyID != nil && m.RoomID != nil && m.BedID != nil {
		acc := &ledger.Accommodation{
			PropertyID: *m.PropertyID,
			RoomID:     *m.RoomID,
			BedID:      *m.BedID,
			LandlordID: m.LandlordID,
		}
		if m.PropertyName != nil {
			acc.PropertyName = *m.PropertyName
		}
		if m.RentAmount != nil {
			acc.RentAmount = *m.RentAmount
		}
		if m.MoveInDate != nil {
			acc.MoveInDate = *m.MoveInDate
		}
		t.Accommodation = acc
	}
	return t
}
