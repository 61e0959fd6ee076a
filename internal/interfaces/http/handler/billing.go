package handler

import (
	"time"

	"github.com/gharzo/engine/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BillingHandler exposes dues and collections reporting over HTTP
type BillingHandler struct {
	BaseHandler
	dues     *billing.DuesService
	forecast *billing.ForecastService
	clock    func() time.Time
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(dues *billing.DuesService, forecast *billing.ForecastService) *BillingHandler {
	return &BillingHandler{
		dues:     dues,
		forecast: forecast,
		clock:    time.Now,
	}
}

// RegisterRoutes registers billing routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dues/:landlordId", h.LandlordDues)
	rg.GET("/dues/tenant/:tenantId", h.TenantDues)

	collections := rg.Group("/collections")
	{
		collections.GET("/summary", h.Summary)
		collections.GET("/forecast", h.Forecast)
		collections.GET("/report/:propertyId", h.Report)
	}
}

// LandlordDues handles GET /dues/:landlordId
func (h *BillingHandler) LandlordDues(c *gin.Context) {
	landlordID, err := uuid.Parse(c.Param("landlordId"))
	if err != nil {
		h.BadRequest(c, "Invalid landlord ID")
		return
	}

	dues, err := h.dues.OutstandingForLandlord(c.Request.Context(), landlordID, h.clock())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dues)
}

// TenantDues handles GET /dues/tenant/:tenantId
func (h *BillingHandler) TenantDues(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	dues, err := h.dues.OutstandingForTenant(c.Request.Context(), tenantID, h.clock())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dues)
}

// Summary handles GET /collections/summary?landlord_id=...
func (h *BillingHandler) Summary(c *gin.Context) {
	landlordID, ok := h.queryLandlordID(c)
	if !ok {
		return
	}

	summary, err := h.forecast.Summary(c.Request.Context(), landlordID, h.clock())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Forecast handles GET /collections/forecast?landlord_id=...
func (h *BillingHandler) Forecast(c *gin.Context) {
	landlordID, ok := h.queryLandlordID(c)
	if !ok {
		return
	}

	snapshot, err := h.forecast.Forecast(c.Request.Context(), landlordID, h.clock())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, snapshot)
}

// Report handles GET /collections/report/:propertyId
func (h *BillingHandler) Report(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("propertyId"))
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	report, err := h.forecast.Report(c.Request.Context(), propertyID, h.clock())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

func (h *BillingHandler) queryLandlordID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("landlord_id")
	if raw == "" {
		h.BadRequest(c, "landlord_id query parameter is required")
		return uuid.Nil, false
	}
	landlordID, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid landlord_id")
		return uuid.Nil, false
	}
	return landlordID, true
}
