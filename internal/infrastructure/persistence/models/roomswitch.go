package models

import (
	"time"

	"github.com/gharzo/engine/internal/domain/roomswitch"
	"github.com/google/uuid"
)

// RoomSwitchRequestModel is the persistence model for
// roomswitch.RoomSwitchRequest
type RoomSwitchRequestModel struct {
	AggregateModel
	TenantID        uuid.UUID `gorm:"type:uuid;not null;index"`
	PropertyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CurrentRoomID   string    `gorm:"type:varchar(32);not null"`
	CurrentBedID    string    `gorm:"type:varchar(32);not null"`
	RequestedRoomID string    `gorm:"type:varchar(32);not null"`
	RequestedBedID  string    `gorm:"type:varchar(32);not null"`
	Status          string    `gorm:"type:varchar(10);not null;index"`
	RequestDate     time.Time `gorm:"not null;index"`
	ResponseDate    *time.Time
	RespondedBy     *uuid.UUID `gorm:"type:uuid"`
	Reason          string     `gorm:"type:text"`
}

// TableName specifies the table name
func (RoomSwitchRequestModel) TableName() string {
	return "room_switch_requests"
}

// ToDomain converts the model to a domain RoomSwitchRequest
func (m *RoomSwitchRequestModel) ToDomain() *roomswitch.RoomSwitchRequest {
	return &roomswitch.RoomSwitchRequest{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TenantID:          m.TenantID,
		PropertyID:        m.PropertyID,
		CurrentRoomID:     m.CurrentRoomID,
		CurrentBedID:      m.CurrentBedID,
		RequestedRoomID:   m.RequestedRoomID,
		RequestedBedID:    m.RequestedBedID,
		Status:            roomswitch.Status(m.Status),
		RequestDate:       m.RequestDate,
		ResponseDate:      m.ResponseDate,
		RespondedBy:       m.RespondedBy,
		Reason:            m.Reason,
	}
}

// RoomSwitchRequestModelFromDomain creates a model from a domain request
func RoomSwitchRequestModelFromDomain(r *roomswitch.RoomSwitchRequest) *RoomSwitchRequestModel {
	m := &RoomSwitchRequestModel{
		TenantID:        r.TenantID,
		PropertyID:      r.PropertyID,
		CurrentRoomID:   r.CurrentRoomID,
		CurrentBedID:    r.CurrentBedID,
		RequestedRoomID: r.RequestedRoomID,
		RequestedBedID:  r.RequestedBedID,
		Status:          string(r.Status),
		RequestDate:     r.RequestDate,
		ResponseDate:    r.ResponseDate,
		RespondedBy:     r.RespondedBy,
		Reason:          r.Reason,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}
