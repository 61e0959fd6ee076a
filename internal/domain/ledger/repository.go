package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BillFilter defines filtering options for bill queries
type BillFilter struct {
	TenantID   *uuid.UUID
	PropertyID *uuid.UUID
	Category   *BillCategory
	Status     *BillStatus
	DueFrom    *time.Time
	DueTo      *time.Time
}

// BillRepository defines the persistence port for bills
type BillRepository interface {
	// FindByID finds a bill by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)

	// FindByTenant finds all bills for a tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]Bill, error)

	// FindByLandlord finds all bills across a landlord's properties,
	// optionally filtered
	FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter BillFilter) ([]Bill, error)

	// FindByProperty finds all bills for a property
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]Bill, error)

	// Save creates or updates a bill
	Save(ctx context.Context, bill *Bill) error
}

// PaymentRepository defines the persistence port for payments.
// Payments are append-only: there is no update or delete.
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByLandlord finds all payments collected across a landlord's
	// properties within the given window
	FindByLandlord(ctx context.Context, landlordID uuid.UUID, from, to time.Time) ([]Payment, error)

	// FindByProperty finds all payments for a property within the window
	FindByProperty(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]Payment, error)

	// Record appends a payment
	Record(ctx context.Context, payment *Payment) error
}

// TenantRepository is the read-only port onto tenant/accommodation data owned
// by the onboarding collaborator
type TenantRepository interface {
	// FindByID finds a tenant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByLandlord finds all tenants under a landlord's properties,
	// including those without an active accommodation
	FindByLandlord(ctx context.Context, landlordID uuid.UUID) ([]Tenant, error)

	// FindByProperty finds all tenants actively accommodated at a property
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]Tenant, error)

	// FindActiveByBed finds the tenant actively occupying the given bed, or
	// returns shared.ErrNotFound
	FindActiveByBed(ctx context.Context, propertyID uuid.UUID, roomID, bedID string) (*Tenant, error)
}
