package complaint

import (
	"crypto/rand"
	"crypto/subtle"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gharzo/engine/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the lifecycle state of a maintenance complaint
type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusResolved Status = "Resolved"
	StatusRejected Status = "Rejected"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusResolved, StatusRejected:
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
	return s == StatusResolved || s == StatusRejected
}

// Priority classifies how urgent a complaint is
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) String() string {
	return string(p)
}

// IsValid checks if the priority is a known Priority
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ResolutionCode is the one-time code gating complaint resolution.
// It is a value object within the Complaint aggregate, stored as JSONB.
type ResolutionCode struct {
	Code       string     `json:"code"`
	IssuedAt   time.Time  `json:"issued_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	Attempts   int        `json:"attempts"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// Value implements driver.Valuer interface for GORM to store as JSONB
func (r ResolutionCode) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (r *ResolutionCode) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ResolutionCode: unsupported type")
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, r)
}

// Matches compares a submitted code in constant time
func (r *ResolutionCode) Matches(submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(r.Code), []byte(submitted)) == 1
}

// Expired reports whether the code is past its expiry window at the given
// instant
func (r *ResolutionCode) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// GenerateResolutionCode produces a 6-digit numeric one-time code using
// crypto/rand. Leading zeros are preserved.
func GenerateResolutionCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate resolution code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Complaint is a maintenance complaint aggregate root. Resolution is gated by
// a one-time code so it cannot be closed without the tenant confirming the
// work was done.
type Complaint struct {
	shared.BaseAggregateRoot
	Number      string          `json:"number"` // human-readable, e.g. COMP-042
	TenantID    uuid.UUID       `json:"tenant_id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	RoomID      string          `json:"room_id"`
	BedID       string          `json:"bed_id"`
	Subject     string          `json:"subject"`
	Description string          `json:"description"`
	Priority    Priority        `json:"priority"`
	Status      Status          `json:"status"`
	OTP         *ResolutionCode `json:"otp,omitempty"`
	AcceptedBy  *uuid.UUID      `json:"accepted_by,omitempty"`
	AcceptedAt  *time.Time      `json:"accepted_at,omitempty"`
	RejectedBy  *uuid.UUID      `json:"rejected_by,omitempty"`
	Reason      string          `json:"reason,omitempty"` // rejection reason
	ResolvedAt  *time.Time      `json:"resolved_at,omitempty"`
}

// NewComplaint files a new complaint in Pending status
func NewComplaint(
	number string,
	tenantID, propertyID uuid.UUID,
	roomID, bedID string,
	subject, description string,
	priority Priority,
) (*Complaint, error) {
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Complaint number cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Property ID cannot be empty")
	}
	if subject == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Complaint subject cannot be empty")
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Complaint priority is not valid")
	}

	c := &Complaint{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		TenantID:          tenantID,
		PropertyID:        propertyID,
		RoomID:            roomID,
		BedID:             bedID,
		Subject:           subject,
		Description:       description,
		Priority:          priority,
		Status:            StatusPending,
	}

	c.AddDomainEvent(NewComplaintFiledEvent(c))

	return c, nil
}

// Accept moves the complaint from Pending to Accepted, recording the actor
func (c *Complaint) Accept(actor uuid.UUID) error {
	if c.Status != StatusPending {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot accept complaint in %s status", c.Status))
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Actor is required")
	}

	now := time.Now()
	from := c.Status
	c.Status = StatusAccepted
	c.AcceptedBy = &actor
	c.AcceptedAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewComplaintAcceptedEvent(c, from, actor))

	return nil
}

// Reject terminates the complaint from Pending or Accepted with a reason
func (c *Complaint) Reject(actor uuid.UUID, reason string) error {
	if c.Status != StatusPending && c.Status != StatusAccepted {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot reject complaint in %s status", c.Status))
	}
	if reason == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Rejection reason cannot be empty")
	}

	now := time.Now()
	from := c.Status
	c.Status = StatusRejected
	c.RejectedBy = &actor
	c.Reason = reason
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewComplaintRejectedEvent(c, from, actor))

	return nil
}

// IssueResolutionCode stores a fresh one-time code bound to the complaint.
// Valid only while Accepted. Reissuing replaces any outstanding code and
// resets the attempt counter. Delivering the code to the tenant is the
// notification collaborator's concern.
func (c *Complaint) IssueResolutionCode(code string, now time.Time, ttl time.Duration) error {
	if c.Status != StatusAccepted {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot issue resolution code for complaint in %s status", c.Status))
	}
	if len(code) != 6 {
		return shared.NewDomainError("VALIDATION_ERROR", "Resolution code must be 6 digits")
	}
	if ttl <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Resolution code expiry must be positive")
	}

	c.OTP = &ResolutionCode{
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewResolutionChallengeIssuedEvent(c))

	return nil
}

// VerifyAndResolve compares the submitted code against the outstanding one
// and, on match, transitions Accepted -> Resolved. A mismatch counts an
// attempt; once maxAttempts consecutive attempts have failed, every further
// attempt fails with TOO_MANY_ATTEMPTS even if the code is correct.
func (c *Complaint) VerifyAndResolve(submitted string, now time.Time, maxAttempts int) error {
	if c.Status != StatusAccepted {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot resolve complaint in %s status", c.Status))
	}
	if c.OTP == nil {
		return shared.NewDomainError("INVALID_TRANSITION", "No outstanding resolution code")
	}
	if c.OTP.Attempts >= maxAttempts {
		return shared.ErrTooManyAttempts
	}
	if c.OTP.Expired(now) {
		return shared.ErrCodeExpired
	}

	if !c.OTP.Matches(submitted) {
		c.OTP.Attempts++
		c.UpdatedAt = now
		c.IncrementVersion()
		return shared.NewDomainError("INVALID_CODE", "Resolution code does not match")
	}

	from := c.Status
	c.OTP.Verified = true
	c.OTP.VerifiedAt = &now
	c.Status = StatusResolved
	c.ResolvedAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	c.AddDomainEvent(NewComplaintResolvedEvent(c, from))

	return nil
}

// IsResolved returns true if the complaint is resolved
func (c *Complaint) IsResolved() bool {
	return c.Status == StatusResolved
}

// HasOutstandingCode reports whether an unverified, unexpired code exists at
// the given instant
func (c *Complaint) HasOutstandingCode(now time.Time) bool {
	return c.OTP != nil && !c.OTP.Verified && !c.OTP.Expired(now)
}
