package roomswitch

import (
	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/google/uuid"
)

// RoomSwitchSubmittedEvent is raised when a tenant files a switch request
type RoomSwitchSubmittedEvent struct {
	shared.BaseDomainEvent
	RequestID       uuid.UUID `json:"request_id"`
	TenantID        uuid.UUID `json:"tenant_id"`
	PropertyID      uuid.UUID `json:"property_id"`
	RequestedRoomID string    `json:"requested_room_id"`
	RequestedBedID  string    `json:"requested_bed_id"`
}

// EventType returns the event type name
func (e *RoomSwitchSubmittedEvent) EventType() string {
	return "RoomSwitchSubmitted"
}

// NewRoomSwitchSubmittedEvent creates a new RoomSwitchSubmittedEvent
func NewRoomSwitchSubmittedEvent(r *RoomSwitchRequest) *RoomSwitchSubmittedEvent {
	return &RoomSwitchSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RoomSwitchSubmitted", "RoomSwitchRequest", r.ID),
		RequestID:       r.ID,
		TenantID:        r.TenantID,
		PropertyID:      r.PropertyID,
		RequestedRoomID: r.RequestedRoomID,
		RequestedBedID:  r.RequestedBedID,
	}
}

// RoomSwitchApprovedEvent is raised when a request is approved
type RoomSwitchApprovedEvent struct {
	shared.BaseDomainEvent
	RequestID  uuid.UUID `json:"request_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	FromStatus Status    `json:"from_status"`
	ToStatus   Status    `json:"to_status"`
	Actor      uuid.UUID `json:"actor"`
}

// EventType returns the event type name
func (e *RoomSwitchApprovedEvent) EventType() string {
	return "RoomSwitchApproved"
}

// NewRoomSwitchApprovedEvent creates a new RoomSwitchApprovedEvent
func NewRoomSwitchApprovedEvent(r *RoomSwitchRequest, from Status, actor uuid.UUID) *RoomSwitchApprovedEvent {
	return &RoomSwitchApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RoomSwitchApproved", "RoomSwitchRequest", r.ID),
		RequestID:       r.ID,
		TenantID:        r.TenantID,
		FromStatus:      from,
		ToStatus:        r.Status,
		Actor:           actor,
	}
}

// RoomSwitchRejectedEvent is raised when a request is rejected
type RoomSwitchRejectedEvent struct {
	shared.BaseDomainEvent
	RequestID  uuid.UUID `json:"request_id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	FromStatus Status    `json:"from_status"`
	ToStatus   Status    `json:"to_status"`
	Actor      uuid.UUID `json:"actor"`
	Reason     string    `json:"reason"`
}

// EventType returns the event type name
func (e *RoomSwitchRejectedEvent) EventType() string {
	return "RoomSwitchRejected"
}

// NewRoomSwitchRejectedEvent creates a new RoomSwitchRejectedEvent
func NewRoomSwitchRejectedEvent(r *RoomSwitchRequest, from Status, actor uuid.UUID) *RoomSwitchRejectedEvent {
	return &RoomSwitchRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("RoomSwitchRejected", "RoomSwitchRequest", r.ID),
		RequestID:       r.ID,
		TenantID:        r.TenantID,
		FromStatus:      from,
		ToStatus:        r.Status,
		Actor:           actor,
		Reason:          r.Reason,
	}
}
