package roomswitch

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter defines filtering options for room switch queries.
// Filtering is a pure, order-preserving predicate over the stored collection.
type Filter struct {
	TenantID   *uuid.UUID
	PropertyID *uuid.UUID
	Status     *Status
	From       *time.Time // requestDate range start, inclusive
	To         *time.Time // requestDate range end, exclusive
}

// StatusSummary holds per-status request counts for summary display
type StatusSummary struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// Repository defines the persistence port for room switch requests
type Repository interface {
	// FindByID finds a request by ID
	FindByID(ctx context.Context, id uuid.UUID) (*RoomSwitchRequest, error)

	// FindAll lists requests matching the filter, newest first
	FindAll(ctx context.Context, filter Filter) ([]RoomSwitchRequest, error)

	// ExistsPendingForTarget reports whether the tenant already has a pending
	// request for the same target bed (duplicate submit guard)
	ExistsPendingForTarget(ctx context.Context, tenantID uuid.UUID, requestedRoomID, requestedBedID string) (bool, error)

	// Summary counts requests per status
	Summary(ctx context.Context) (*StatusSummary, error)

	// Save creates or updates a request
	Save(ctx context.Context, r *RoomSwitchRequest) error

	// SaveWithLock saves with an optimistic version check; returns
	// shared.ErrConcurrencyConflict when the stored version moved
	SaveWithLock(ctx context.Context, r *RoomSwitchRequest) error
}
