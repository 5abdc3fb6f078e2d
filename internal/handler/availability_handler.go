package handler

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/handler/response"
	"github.com/gin-gonic/gin"
)

// AvailabilityAPI answers availability questions for authenticated callers.
type AvailabilityAPI interface {
	CheckRoomAvailability(ctx context.Context, q application.AvailabilityQuery) (*application.AvailabilityResult, error)
	CheckPropertyAvailability(ctx context.Context, q application.AvailabilityQuery) (*application.PropertyAvailabilityDTO, error)
}

// AvailabilityHandler handles HTTP requests for availability checks.
type AvailabilityHandler struct {
	service AvailabilityAPI
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(service AvailabilityAPI) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// RegisterRoutes registers the availability routes.
func (h *AvailabilityHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	availability := r.Group("/api/v1/availability")
	availability.Use(authMW)
	{
		availability.GET("/rooms/:id", h.CheckRoom)
		availability.GET("/properties/:id", h.CheckProperty)
	}
}

// CheckRoom handles GET /api/v1/availability/rooms/:id?check_in=&check_out=.
func (h *AvailabilityHandler) CheckRoom(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id", "room")
	if !ok {
		return
	}
	checkIn, checkOut, ok := parseStayQuery(c)
	if !ok {
		return
	}

	result, err := h.service.CheckRoomAvailability(c.Request.Context(), application.AvailabilityQuery{
		ID: roomID, CheckIn: checkIn, CheckOut: checkOut,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CheckProperty handles GET /api/v1/availability/properties/:id?check_in=&check_out=.
func (h *AvailabilityHandler) CheckProperty(c *gin.Context) {
	propertyID, ok := parseUUIDParam(c, "id", "property")
	if !ok {
		return
	}
	checkIn, checkOut, ok := parseStayQuery(c)
	if !ok {
		return
	}

	result, err := h.service.CheckPropertyAvailability(c.Request.Context(), application.AvailabilityQuery{
		ID: propertyID, CheckIn: checkIn, CheckOut: checkOut,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
