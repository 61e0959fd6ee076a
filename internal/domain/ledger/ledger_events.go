package ledger

import (
	"time"

	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillCreatedEvent is raised when a new bill is recorded in the ledger
type BillCreatedEvent struct {
	shared.BaseDomainEvent
	BillID     uuid.UUID       `json:"bill_id"`
	TenantID   uuid.UUID       `json:"tenant_id"`
	PropertyID uuid.UUID       `json:"property_id"`
	Category   BillCategory    `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"due_date"`
}

// EventType returns the event type name
func (e *BillCreatedEvent) EventType() string {
	return "BillCreated"
}

// NewBillCreatedEvent creates a new BillCreatedEvent
func NewBillCreatedEvent(b *Bill) *BillCreatedEvent {
	return &BillCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillCreated", "Bill", b.ID),
		BillID:          b.ID,
		TenantID:        b.TenantID,
		PropertyID:      b.PropertyID,
		Category:        b.Category,
		Amount:          b.Amount,
		DueDate:         b.DueDate,
	}
}

// BillPaidEvent is raised when a payment is linked to a bill
type BillPaidEvent struct {
	shared.BaseDomainEvent
	BillID    uuid.UUID       `json:"bill_id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	PaymentID uuid.UUID       `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
}

// EventType returns the event type name
func (e *BillPaidEvent) EventType() string {
	return "BillPaid"
}

// NewBillPaidEvent creates a new BillPaidEvent
func NewBillPaidEvent(b *Bill) *BillPaidEvent {
	paidAt := time.Now()
	if b.PaidAt != nil {
		paidAt = *b.PaidAt
	}
	var paymentID uuid.UUID
	if b.PaymentID != nil {
		paymentID = *b.PaymentID
	}
	return &BillPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("BillPaid", "Bill", b.ID),
		BillID:          b.ID,
		TenantID:        b.TenantID,
		PaymentID:       paymentID,
		Amount:          b.Amount,
		PaidAt:          paidAt,
	}
}
