package complaint

import (
	"context"

	"github.com/google/uuid"
)

// Filter defines filtering options for complaint queries
type Filter struct {
	TenantID   *uuid.UUID
	PropertyID *uuid.UUID
	Status     *Status
	Priority   *Priority
	AssigneeID *uuid.UUID // worker the complaint's property is assigned to
}

// Repository defines the persistence port for complaints
type Repository interface {
	// FindByID finds a complaint by its internal ID
	FindByID(ctx context.Context, id uuid.UUID) (*Complaint, error)

	// FindByNumber finds a complaint by its human-readable number
	FindByNumber(ctx context.Context, number string) (*Complaint, error)

	// FindAll lists complaints matching the filter, newest first
	FindAll(ctx context.Context, filter Filter) ([]Complaint, error)

	// Save creates or updates a complaint
	Save(ctx context.Context, c *Complaint) error

	// SaveWithLock saves with an optimistic version check; returns
	// shared.ErrConcurrencyConflict when the stored version moved
	SaveWithLock(ctx context.Context, c *Complaint) error

	// NextNumber generates the next human-readable complaint number
	// (e.g. COMP-042)
	NextNumber(ctx context.Context) (string, error)
}
