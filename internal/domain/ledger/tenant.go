package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Accommodation links a tenant to the bed they currently occupy.
// It is owned by the onboarding/move-out collaborator; this engine only
// reads it for occupancy checks, dues grouping and rent expectations.
type Accommodation struct {
	PropertyID   uuid.UUID       `json:"property_id"`
	PropertyName string          `json:"property_name"`
	RoomID       string          `json:"room_id"`
	BedID        string          `json:"bed_id"`
	LandlordID   uuid.UUID       `json:"landlord_id"`
	RentAmount   decimal.Decimal `json:"rent_amount"`
	MoveInDate   time.Time       `json:"move_in_date"`
}

// Tenant is a renter known to the ledger. Lifecycle (onboarding, move-out)
// is external; the engine treats tenants as read-only reference data.
type Tenant struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Contact       string         `json:"contact"`
	Accommodation *Accommodation `json:"accommodation,omitempty"` // nil after move-out
}

// IsActive reports whether the tenant currently occupies a bed
func (t *Tenant) IsActive() bool {
	return t.Accommodation != nil
}

// OccupiesBed reports whether the tenant's active accommodation matches the
// given property/room/bed triple
func (t *Tenant) OccupiesBed(propertyID uuid.UUID, roomID, bedID string) bool {
	if t.Accommodation == nil {
		return false
	}
	a := t.Accommodation
	return a.PropertyID == propertyID && a.RoomID == roomID && a.BedID == bedID
}
