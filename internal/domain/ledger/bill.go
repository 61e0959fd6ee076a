package ledger

import (
	"time"

	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/gharzo/engine/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillCategory classifies what a bill charges for
type BillCategory string

const (
	BillCategoryRent        BillCategory = "rent"
	BillCategoryMaintenance BillCategory = "maintenance"
	BillCategoryElectricity BillCategory = "electricity"
	BillCategoryWater       BillCategory = "water"
	BillCategoryOther       BillCategory = "other"
)

// IsValid checks if the category is a known BillCategory
func (c BillCategory) IsValid() bool {
	switch c {
	case BillCategoryRent, BillCategoryMaintenance, BillCategoryElectricity,
		BillCategoryWater, BillCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of BillCategory
func (c BillCategory) String() string {
	return string(c)
}

// BillStatus represents the payment status of a bill
type BillStatus string

const (
	BillStatusPending BillStatus = "PENDING"
	BillStatusPaid    BillStatus = "PAID"
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	return s == BillStatusPending || s == BillStatusPaid
}

// Bill is a single billable charge owed by a tenant (a "due").
// Bills are created by the billing collaborator, flip to PAID only through a
// linked payment, and are never deleted - only superseded.
type Bill struct {
	shared.BaseAggregateRoot
	TenantID   uuid.UUID       `json:"tenant_id"`
	PropertyID uuid.UUID       `json:"property_id"`
	LandlordID uuid.UUID       `json:"landlord_id"`
	Category   BillCategory    `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"due_date"`
	Status     BillStatus      `json:"status"`
	PaymentID  *uuid.UUID      `json:"payment_id,omitempty"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
}

// NewBill creates a pending bill
func NewBill(
	tenantID, propertyID, landlordID uuid.UUID,
	category BillCategory,
	amount valueobject.Money,
	dueDate time.Time,
) (*Bill, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Property ID cannot be empty")
	}
	if landlordID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Landlord ID cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bill category is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bill amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bill due date is required")
	}

	b := &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		PropertyID:        propertyID,
		LandlordID:        landlordID,
		Category:          category,
		Amount:            amount.Amount(),
		DueDate:           dueDate,
		Status:            BillStatusPending,
	}

	b.AddDomainEvent(NewBillCreatedEvent(b))

	return b, nil
}

// MarkPaid links a payment to the bill and flips it to PAID.
// The amount is immutable from this point on.
func (b *Bill) MarkPaid(paymentID uuid.UUID, paidAt time.Time) error {
	if b.Status == BillStatusPaid {
		return shared.NewDomainError("INVALID_TRANSITION", "Bill is already paid")
	}
	if paymentID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment ID cannot be empty")
	}

	b.Status = BillStatusPaid
	b.PaymentID = &paymentID
	b.PaidAt = &paidAt
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBillPaidEvent(b))

	return nil
}

// IsPending returns true if the bill has not been paid
func (b *Bill) IsPending() bool {
	return b.Status == BillStatusPending
}

// IsOverdue reports whether the bill is unpaid and past due at the given
// reference instant. The instant is passed in explicitly so aggregation stays
// deterministic.
func (b *Bill) IsOverdue(now time.Time) bool {
	return b.Status == BillStatusPending && b.DueDate.Before(now)
}

// GetAmountMoney returns the bill amount as Money
func (b *Bill) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(b.Amount)
}

// DueInMonth reports whether the bill's due date falls in the month of the
// given reference time
func (b *Bill) DueInMonth(month time.Time) bool {
	return b.DueDate.Year() == month.Year() && b.DueDate.Month() == month.Month()
}
