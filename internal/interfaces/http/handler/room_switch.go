package handler

import (
	"time"

	applswitch "github.com/gharzo/engine/internal/application/roomswitch"
	"github.com/gharzo/engine/internal/domain/roomswitch"
	"github.com/gharzo/engine/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoomSwitchHandler exposes the room switch workflow over HTTP
type RoomSwitchHandler struct {
	BaseHandler
	service *applswitch.Service
}

// NewRoomSwitchHandler creates a new RoomSwitchHandler
func NewRoomSwitchHandler(service *applswitch.Service) *RoomSwitchHandler {
	return &RoomSwitchHandler{service: service}
}

// RegisterRoutes registers room switch routes
func (h *RoomSwitchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/room-switch")
	{
		requests.POST("", h.Submit)
		requests.GET("", h.List)
		requests.GET("/summary", h.Summary)
		requests.PUT("/:id/approve", h.Approve)
		requests.PUT("/:id/reject", h.Reject)
	}
}

// RoomSwitchResponse is the wire shape of a room switch request
type RoomSwitchResponse struct {
	ID              uuid.UUID  `json:"id"`
	TenantID        uuid.UUID  `json:"tenant_id"`
	PropertyID      uuid.UUID  `json:"property_id"`
	CurrentRoomID   string     `json:"current_room_id"`
	CurrentBedID    string     `json:"current_bed_id"`
	RequestedRoomID string     `json:"requested_room_id"`
	RequestedBedID  string     `json:"requested_bed_id"`
	Status          string     `json:"status"`
	RequestDate     time.Time  `json:"request_date"`
	ResponseDate    *time.Time `json:"response_date,omitempty"`
	RespondedBy     *uuid.UUID `json:"responded_by,omitempty"`
	Reason          string     `json:"reason,omitempty"`
}

func toRoomSwitchResponse(r *roomswitch.RoomSwitchRequest) RoomSwitchResponse {
	return RoomSwitchResponse{
		ID:              r.ID,
		TenantID:        r.TenantID,
		PropertyID:      r.PropertyID,
		CurrentRoomID:   r.CurrentRoomID,
		CurrentBedID:    r.CurrentBedID,
		RequestedRoomID: r.RequestedRoomID,
		RequestedBedID:  r.RequestedBedID,
		Status:          r.Status.String(),
		RequestDate:     r.RequestDate,
		ResponseDate:    r.ResponseDate,
		RespondedBy:     r.RespondedBy,
		Reason:          r.Reason,
	}
}

// SubmitRoomSwitchRequest is the request body for submitting a room switch
type SubmitRoomSwitchRequest struct {
	TenantID        uuid.UUID `json:"tenant_id" binding:"required"`
	PropertyID      uuid.UUID `json:"property_id" binding:"required"`
	CurrentRoomID   string    `json:"current_room_id" binding:"required"`
	CurrentBedID    string    `json:"current_bed_id" binding:"required"`
	RequestedRoomID string    `json:"requested_room_id" binding:"required"`
	RequestedBedID  string    `json:"requested_bed_id" binding:"required"`
}

// Submit handles POST /room-switch
func (h *RoomSwitchHandler) Submit(c *gin.Context) {
	var req SubmitRoomSwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	submitted, err := h.service.Submit(c.Request.Context(), applswitch.SubmitRequest{
		TenantID:        req.TenantID,
		PropertyID:      req.PropertyID,
		CurrentRoomID:   req.CurrentRoomID,
		CurrentBedID:    req.CurrentBedID,
		RequestedRoomID: req.RequestedRoomID,
		RequestedBedID:  req.RequestedBedID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toRoomSwitchResponse(submitted))
}

// List handles GET /room-switch
func (h *RoomSwitchHandler) List(c *gin.Context) {
	filter := roomswitch.Filter{}
	if v := c.Query("tenant_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid tenant_id")
			return
		}
		filter.TenantID = &id
	}
	if v := c.Query("property_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid property_id")
			return
		}
		filter.PropertyID = &id
	}
	if v := c.Query("status"); v != "" {
		status := roomswitch.Status(v)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status")
			return
		}
		filter.Status = &status
	}
	if v := c.Query("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.BadRequest(c, "Invalid from, expected RFC3339")
			return
		}
		filter.From = &ts
	}
	if v := c.Query("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			h.BadRequest(c, "Invalid to, expected RFC3339")
			return
		}
		filter.To = &ts
	}

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]RoomSwitchResponse, 0, len(list))
	for i := range list {
		out = append(out, toRoomSwitchResponse(&list[i]))
	}
	h.Success(c, out)
}

// Summary handles GET /room-switch/summary
func (h *RoomSwitchHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Approve handles PUT /room-switch/:id/approve
func (h *RoomSwitchHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	approved, err := h.service.Approve(c.Request.Context(), id, middleware.GetActorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRoomSwitchResponse(approved))
}

// RejectRoomSwitchRequest is the request body for rejecting a room switch
type RejectRoomSwitchRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject handles PUT /room-switch/:id/reject
func (h *RoomSwitchHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	var req RejectRoomSwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Rejection reason is required")
		return
	}

	rejected, err := h.service.Reject(c.Request.Context(), id, middleware.GetActorID(c), req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRoomSwitchResponse(rejected))
}
