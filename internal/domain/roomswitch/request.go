package roomswitch

import (
	"fmt"
	"time"

	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the lifecycle state of a room switch request
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// RoomSwitchRequest is a tenant's request to move to another bed or room.
// Approval coordinates an external accommodation reassignment; the two are
// committed as one logical operation with compensation on failure.
type RoomSwitchRequest struct {
	shared.BaseAggregateRoot
	TenantID        uuid.UUID  `json:"tenant_id"`
	PropertyID      uuid.UUID  `json:"property_id"`
	CurrentRoomID   string     `json:"current_room_id"`
	CurrentBedID    string     `json:"current_bed_id"`
	RequestedRoomID string     `json:"requested_room_id"`
	RequestedBedID  string     `json:"requested_bed_id"`
	Status          Status     `json:"status"`
	RequestDate     time.Time  `json:"request_date"`
	ResponseDate    *time.Time `json:"response_date,omitempty"` // set iff status != pending
	RespondedBy     *uuid.UUID `json:"responded_by,omitempty"`
	Reason          string     `json:"reason,omitempty"` // rejection reason
}

// NewRoomSwitchRequest creates a pending request. Requesting the bed the
// tenant already occupies is an invalid target; occupancy of the requested
// bed is checked by the caller against the occupancy collaborator.
func NewRoomSwitchRequest(
	tenantID, propertyID uuid.UUID,
	currentRoomID, currentBedID, requestedRoomID, requestedBedID string,
) (*RoomSwitchRequest, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Property ID cannot be empty")
	}
	if currentRoomID == "" || currentBedID == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Current room and bed are required")
	}
	if requestedRoomID == "" || requestedBedID == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Requested room and bed are required")
	}
	if currentRoomID == requestedRoomID && currentBedID == requestedBedID {
		return nil, shared.NewDomainError("INVALID_TARGET", "Requested bed is the tenant's current bed")
	}

	r := &RoomSwitchRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		PropertyID:        propertyID,
		CurrentRoomID:     currentRoomID,
		CurrentBedID:      currentBedID,
		RequestedRoomID:   requestedRoomID,
		RequestedBedID:    requestedBedID,
		Status:            StatusPending,
		RequestDate:       time.Now(),
	}

	r.AddDomainEvent(NewRoomSwitchSubmittedEvent(r))

	return r, nil
}

// Approve transitions pending -> approved, stamping the response
func (r *RoomSwitchRequest) Approve(actor uuid.UUID) error {
	if r.Status != StatusPending {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot approve request in %s status", r.Status))
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Actor is required")
	}

	now := time.Now()
	from := r.Status
	r.Status = StatusApproved
	r.ResponseDate = &now
	r.RespondedBy = &actor
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewRoomSwitchApprovedEvent(r, from, actor))

	return nil
}

// RevertApproval compensates a failed reassignment by returning the request
// to pending, as if the approval never committed
func (r *RoomSwitchRequest) RevertApproval() error {
	if r.Status != StatusApproved {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot revert request in %s status", r.Status))
	}

	r.Status = StatusPending
	r.ResponseDate = nil
	r.RespondedBy = nil
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Reject transitions pending -> rejected with a required reason
func (r *RoomSwitchRequest) Reject(actor uuid.UUID, reason string) error {
	if r.Status != StatusPending {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot reject request in %s status", r.Status))
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Actor is required")
	}
	if reason == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Rejection reason cannot be empty")
	}

	now := time.Now()
	from := r.Status
	r.Status = StatusRejected
	r.ResponseDate = &now
	r.RespondedBy = &actor
	r.Reason = reason
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewRoomSwitchRejectedEvent(r, from, actor))

	return nil
}

// IsPending returns true while the request awaits a decision
func (r *RoomSwitchRequest) IsPending() bool {
	return r.Status == StatusPending
}

// TargetsSameBed reports whether the request targets the given bed
func (r *RoomSwitchRequest) TargetsSameBed(roomID, bedID string) bool {
	return r.RequestedRoomID == roomID && r.RequestedBedID == bedID
}
