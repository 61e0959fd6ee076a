package ledger

import (
	"time"

	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/gharzo/engine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentSource identifies how a payment was collected
type PaymentSource string

const (
	PaymentSourceCash    PaymentSource = "CASH"
	PaymentSourceGateway PaymentSource = "GATEWAY"
)

// IsValid checks if the source is a valid PaymentSource
func (s PaymentSource) IsValid() bool {
	return s == PaymentSourceCash || s == PaymentSourceGateway
}

// Payment is an append-only record of money collected from a tenant.
// Once recorded it is immutable; the type deliberately has no mutators.
type Payment struct {
	shared.BaseEntity
	BillID     *uuid.UUID      `json:"bill_id,omitempty"` // nil for unallocated payments
	TenantID   uuid.UUID       `json:"tenant_id"`
	PropertyID uuid.UUID       `json:"property_id"`
	LandlordID uuid.UUID       `json:"landlord_id"`
	Amount     decimal.Decimal `json:"amount"`
	Source     PaymentSource   `json:"source"`
	ReceivedAt time.Time       `json:"received_at"`
}

// NewPayment records a collected payment
func NewPayment(
	billID *uuid.UUID,
	tenantID, propertyID, landlordID uuid.UUID,
	amount valueobject.Money,
	source PaymentSource,
	receivedAt time.Time,
) (*Payment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Property ID cannot be empty")
	}
	if landlordID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Landlord ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment source is not valid")
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		BillID:     billID,
		TenantID:   tenantID,
		PropertyID: propertyID,
		LandlordID: landlordID,
		Amount:     amount.Amount(),
		Source:     source,
		ReceivedAt: receivedAt,
	}, nil
}

// ReceivedInMonth reports whether the payment landed in the month of the
// given reference time
func (p *Payment) ReceivedInMonth(month time.Time) bool {
	return p.ReceivedAt.Year() == month.Year() && p.ReceivedAt.Month() == month.Month()
}
