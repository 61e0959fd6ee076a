package handler

import (
	"time"

	applcomplaint "github.com/gharzo/engine/internal/application/complaint"
	"github.com/gharzo/engine/internal/domain/complaint"
	"github.com/gharzo/engine/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ComplaintHandler exposes the complaint lifecycle over HTTP
type ComplaintHandler struct {
	BaseHandler
	service *applcomplaint.Service
}

// NewComplaintHandler creates a new ComplaintHandler
func NewComplaintHandler(service *applcomplaint.Service) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

// RegisterRoutes registers complaint routes
func (h *ComplaintHandler) RegisterRoutes(rg *gin.RouterGroup) {
	complaints := rg.Group("/complaints")
	{
		complaints.POST("", h.File)
		complaints.GET("/assigned", h.ListAssigned)
		complaints.GET("/:id", h.Get)
		complaints.POST("/:id/accept", h.Accept)
		complaints.POST("/:id/reject", h.Reject)
		complaints.POST("/:id/challenge", h.IssueChallenge)
		complaints.POST("/verify-otp", h.VerifyAndResolve)
	}
}

// ComplaintResponse is the wire shape of a complaint. The resolution code
// never appears here; it travels to the tenant out of band.
type ComplaintResponse struct {
	ID           uuid.UUID  `json:"id"`
	Number       string     `json:"number"`
	TenantID     uuid.UUID  `json:"tenant_id"`
	PropertyID   uuid.UUID  `json:"property_id"`
	RoomID       string     `json:"room_id,omitempty"`
	BedID        string     `json:"bed_id,omitempty"`
	Subject      string     `json:"subject"`
	Description  string     `json:"description,omitempty"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	HasChallenge bool       `json:"has_challenge"`
	AcceptedBy   *uuid.UUID `json:"accepted_by,omitempty"`
	AcceptedAt   *time.Time `json:"accepted_at,omitempty"`
	RejectedBy   *uuid.UUID `json:"rejected_by,omitempty"`
	Reason       string     `json:"reason,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toComplaintResponse(c *complaint.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:           c.ID,
		Number:       c.Number,
		TenantID:     c.TenantID,
		PropertyID:   c.PropertyID,
		RoomID:       c.RoomID,
		BedID:        c.BedID,
		Subject:      c.Subject,
		Description:  c.Description,
		Priority:     c.Priority.String(),
		Status:       c.Status.String(),
		HasChallenge: c.OTP != nil,
		AcceptedBy:   c.AcceptedBy,
		AcceptedAt:   c.AcceptedAt,
		RejectedBy:   c.RejectedBy,
		Reason:       c.Reason,
		ResolvedAt:   c.ResolvedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toComplaintResponses(list []complaint.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(list))
	for i := range list {
		out = append(out, toComplaintResponse(&list[i]))
	}
	return out
}

// FileComplaintRequest is the request body for filing a complaint
type FileComplaintRequest struct {
	TenantID    uuid.UUID `json:"tenant_id" binding:"required"`
	PropertyID  uuid.UUID `json:"property_id" binding:"required"`
	RoomID      string    `json:"room_id"`
	BedID       string    `json:"bed_id"`
	Subject     string    `json:"subject" binding:"required"`
	Description string    `json:"description"`
	Priority    string    `json:"priority" binding:"required"`
}

// File handles POST /complaints
func (h *ComplaintHandler) File(c *gin.Context) {
	var req FileComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	filed, err := h.service.File(c.Request.Context(), applcomplaint.FileComplaintRequest{
		TenantID:    req.TenantID,
		PropertyID:  req.PropertyID,
		RoomID:      req.RoomID,
		BedID:       req.BedID,
		Subject:     req.Subject,
		Description: req.Description,
		Priority:    complaint.Priority(req.Priority),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toComplaintResponse(filed))
}

// ListAssigned handles GET /complaints/assigned
func (h *ComplaintHandler) ListAssigned(c *gin.Context) {
	filter := complaint.Filter{}
	if v := c.Query("property_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			h.BadRequest(c, "Invalid property_id")
			return
		}
		filter.PropertyID = &id
	}
	if v := c.Query("status"); v != "" {
		status := complaint.Status(v)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status")
			return
		}
		filter.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := complaint.Priority(v)
		if !priority.IsValid() {
			h.BadRequest(c, "Invalid priority")
			return
		}
		filter.Priority = &priority
	}

	list, err := h.service.ListAssigned(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toComplaintResponses(list))
}

// Get handles GET /complaints/:id
func (h *ComplaintHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toComplaintResponse(found))
}

// Accept handles POST /complaints/:id/accept
func (h *ComplaintHandler) Accept(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	accepted, err := h.service.Accept(c.Request.Context(), id, middleware.GetActorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toComplaintResponse(accepted))
}

// RejectComplaintRequest is the request body for rejecting a complaint
type RejectComplaintRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject handles POST /complaints/:id/reject
func (h *ComplaintHandler) Reject(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req RejectComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Rejection reason is required")
		return
	}

	rejected, err := h.service.Reject(c.Request.Context(), id, middleware.GetActorID(c), req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toComplaintResponse(rejected))
}

// ChallengeResponse reports challenge metadata. The code is delivered to the
// tenant out of band, never over this API.
type ChallengeResponse struct {
	ComplaintID uuid.UUID `json:"complaint_id"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IssueChallenge handles POST /complaints/:id/challenge
func (h *ComplaintHandler) IssueChallenge(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.service.IssueChallenge(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ChallengeResponse{
		ComplaintID: result.ComplaintID,
		IssuedAt:    result.IssuedAt,
		ExpiresAt:   result.ExpiresAt,
	})
}

// VerifyOTPRequest is the request body for resolving a complaint with a code
type VerifyOTPRequest struct {
	ComplaintID uuid.UUID `json:"complaint_id" binding:"required"`
	OTP         string    `json:"otp" binding:"required"`
}

// VerifyAndResolve handles POST /complaints/verify-otp
func (h *ComplaintHandler) VerifyAndResolve(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resolved, err := h.service.VerifyAndResolve(c.Request.Context(), req.ComplaintID, req.OTP)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toComplaintResponse(resolved))
}

func (h *ComplaintHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid complaint ID")
		return uuid.Nil, false
	}
	return id, true
}
