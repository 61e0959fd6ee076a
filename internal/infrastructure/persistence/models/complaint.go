package models

import (
	"time"

	"github.com/gharzo/engine/internal/domain/complaint"
	"github.com/google/uuid"
)

// ComplaintModel is the persistence model for complaint.Complaint.
// The resolution code is stored as a JSONB document so the attempt counter
// and verification flag survive restarts.
type ComplaintModel struct {
	AggregateModel
	Number      string                    `gorm:"type:varchar(20);not null;uniqueIndex"`
	TenantID    uuid.UUID                 `gorm:"type:uuid;not null;index"`
	PropertyID  uuid.UUID                 `gorm:"type:uuid;not null;index"`
	RoomID      string                    `gorm:"type:varchar(32)"`
	BedID       string                    `gorm:"type:varchar(32)"`
	Subject     string                    `gorm:"type:varchar(255);not null"`
	Description string                    `gorm:"type:text"`
	Priority    string                    `gorm:"type:varchar(10);not null;index"`
	Status      string                    `gorm:"type:varchar(10);not null;index"`
	OTP         *complaint.ResolutionCode `gorm:"type:jsonb"`
	AcceptedBy  *uuid.UUID                `gorm:"type:uuid"`
	AcceptedAt  *time.Time
	RejectedBy  *uuid.UUID `gorm:"type:uuid"`
	Reason      string     `gorm:"type:text"`
	ResolvedAt  *time.Time
}

// TableName specifies the table name
func (ComplaintModel) TableName() string {
	return "complaints"
}

// ToDomain converts the model to a domain Complaint
func (m *ComplaintModel) ToDomain() *complaint.Complaint {
	return &complaint.Complaint{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		TenantID:          m.TenantID,
		PropertyID:        m.PropertyID,
		RoomID:            m.RoomID,
		BedID:             m.BedID,
		Subject:           m.Subject,
		Description:       m.Description,
		Priority:          complaint.Priority(m.Priority),
		Status:            complaint.Status(m.Status),
		OTP:               m.OTP,
		AcceptedBy:        m.AcceptedBy,
		AcceptedAt:        m.AcceptedAt,
		RejectedBy:        m.RejectedBy,
		Reason:            m.Reason,
		ResolvedAt:        m.ResolvedAt,
	}
}

// ComplaintModelFromDomain creates a model from a domain Complaint
func ComplaintModelFromDomain(c *complaint.Complaint) *ComplaintModel {
	m := &ComplaintModel{
		Number:      c.Number,
		TenantID:    c.TenantID,
		PropertyID:  c.PropertyID,
		RoomID:      c.RoomID,
		BedID:       c.BedID,
		Subject:     c.Subject,
		Description: c.Description,
		Priority:    string(c.Priority),
		Status:      string(c.Status),
		OTP:         c.OTP,
		AcceptedBy:  c.AcceptedBy,
		AcceptedAt:  c.AcceptedAt,
		RejectedBy:  c.RejectedBy,
		Reason:      c.Reason,
		ResolvedAt:  c.ResolvedAt,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}
