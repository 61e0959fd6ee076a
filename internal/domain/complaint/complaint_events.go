package complaint

import (
	"time"

	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/google/uuid"
)

// ComplaintFiledEvent is raised when a new complaint enters the system
type ComplaintFiledEvent struct {
	shared.BaseDomainEvent
	ComplaintID uuid.UUID `json:"complaint_id"`
	Number      string    `json:"number"`
	TenantID    uuid.UUID `json:"tenant_id"`
	PropertyID  uuid.UUID `json:"property_id"`
	Subject     string    `json:"subject"`
	Priority    Priority  `json:"priority"`
}

// EventType returns the event type name
func (e *ComplaintFiledEvent) EventType() string {
	return "ComplaintFiled"
}

// NewComplaintFiledEvent creates a new ComplaintFiledEvent
func NewComplaintFiledEvent(c *Complaint) *ComplaintFiledEvent {
	return &ComplaintFiledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ComplaintFiled", "Complaint", c.ID),
		ComplaintID:     c.ID,
		Number:          c.Number,
		TenantID:        c.TenantID,
		PropertyID:      c.PropertyID,
		Subject:         c.Subject,
		Priority:        c.Priority,
	}
}

// ComplaintAcceptedEvent is raised when a complaint transitions to Accepted
type ComplaintAcceptedEvent struct {
	shared.BaseDomainEvent
	ComplaintID uuid.UUID `json:"complaint_id"`
	Number      string    `json:"number"`
	FromStatus  Status    `json:"from_status"`
	ToStatus    Status    `json:"to_status"`
	Actor       uuid.UUID `json:"actor"`
}

// EventType returns the event type name
func (e *ComplaintAcceptedEvent) EventType() string {
	return "ComplaintAccepted"
}

// NewComplaintAcceptedEvent creates a new ComplaintAcceptedEvent
func NewComplaintAcceptedEvent(c *Complaint, from Status, actor uuid.UUID) *ComplaintAcceptedEvent {
	return &ComplaintAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ComplaintAccepted", "Complaint", c.ID),
		ComplaintID:     c.ID,
		Number:          c.Number,
		FromStatus:      from,
		ToStatus:        c.Status,
		Actor:           actor,
	}
}

// ComplaintRejectedEvent is raised when a complaint is rejected
type ComplaintRejectedEvent struct {
	shared.BaseDomainEvent
	ComplaintID uuid.UUID `json:"complaint_id"`
	Number      string    `json:"number"`
	FromStatus  Status    `json:"from_status"`
	ToStatus    Status    `json:"to_status"`
	Actor       uuid.UUID `json:"actor"`
	Reason      string    `json:"reason"`
}

// EventType returns the event type name
func (e *ComplaintRejectedEvent) EventType() string {
	return "ComplaintRejected"
}

// NewComplaintRejectedEvent creates a new ComplaintRejectedEvent
func NewComplaintRejectedEvent(c *Complaint, from Status, actor uuid.UUID) *ComplaintRejectedEvent {
	return &ComplaintRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ComplaintRejected", "Complaint", c.ID),
		ComplaintID:     c.ID,
		Number:          c.Number,
		FromStatus:      from,
		ToStatus:        c.Status,
		Actor:           actor,
		Reason:          c.Reason,
	}
}

// ResolutionChallengeIssuedEvent is raised when a one-time code is generated.
// The notification collaborator consumes it to deliver the code to the
// tenant; the code itself is deliberately not part of the event payload.
type ResolutionChallengeIssuedEvent struct {
	shared.BaseDomainEvent
	ComplaintID uuid.UUID `json:"complaint_id"`
	Number      string    `json:"number"`
	TenantID    uuid.UUID `json:"tenant_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// EventType returns the event type name
func (e *ResolutionChallengeIssuedEvent) EventType() string {
	return "ResolutionChallengeIssued"
}

// NewResolutionChallengeIssuedEvent creates a new ResolutionChallengeIssuedEvent
func NewResolutionChallengeIssuedEvent(c *Complaint) *ResolutionChallengeIssuedEvent {
	return &ResolutionChallengeIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ResolutionChallengeIssued", "Complaint", c.ID),
		ComplaintID:     c.ID,
		Number:          c.Number,
		TenantID:        c.TenantID,
		ExpiresAt:       c.OTP.ExpiresAt,
	}
}

// ComplaintResolvedEvent is raised when a complaint reaches Resolved
type ComplaintResolvedEvent struct {
	shared.BaseDomainEvent
	ComplaintID uuid.UUID `json:"complaint_id"`
	Number      string    `json:"number"`
	FromStatus  Status    `json:"from_status"`
	ToStatus    Status    `json:"to_status"`
	TenantID    uuid.UUID `json:"tenant_id"`
	ResolvedAt  time.Time `json:"resolved_at"`
}

// EventType returns the event type name
func (e *ComplaintResolvedEvent) EventType() string {
	return "ComplaintResolved"
}

// NewComplaintResolvedEvent creates a new ComplaintResolvedEvent
func NewComplaintResolvedEvent(c *Complaint, from Status) *ComplaintResolvedEvent {
	resolvedAt := time.Now()
	if c.ResolvedAt != nil {
		resolvedAt = *c.ResolvedAt
	}
	return &ComplaintResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ComplaintResolved", "Complaint", c.ID),
		ComplaintID:     c.ID,
		Number:          c.Number,
		FromStatus:      from,
		ToStatus:        c.Status,
		TenantID:        c.TenantID,
		ResolvedAt:      resolvedAt,
	}
}
