package handler

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/handler/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InventoryAPI manages properties, room types and rooms, already authorized.
type InventoryAPI interface {
	CreateProperty(ctx context.Context, req application.CreatePropertyRequest) (*application.PropertyDTO, error)
	UpdateProperty(ctx context.Context, propertyID uuid.UUID, req application.UpdatePropertyRequest) (*application.PropertyDTO, error)
	DeleteProperty(ctx context.Context, propertyID uuid.UUID) error
	GetProperty(ctx context.Context, propertyID uuid.UUID) (*application.PropertyDTO, error)
	ListProperties(ctx context.Context, q application.ListPropertiesQuery) (*domain.PaginatedResult[application.PropertyDTO], error)

	CreateRoomType(ctx context.Context, propertyID uuid.UUID, req application.CreateRoomTypeRequest) (*application.RoomTypeDTO, error)
	UpdateRoomType(ctx context.Context, roomTypeID uuid.UUID, req application.UpdateRoomTypeRequest) (*application.RoomTypeDTO, error)
	DeleteRoomType(ctx context.Context, roomTypeID uuid.UUID) error
	ListRoomTypes(ctx context.Context, propertyID uuid.UUID) ([]application.RoomTypeDTO, error)

	CreateRoom(ctx context.Context, roomTypeID uuid.UUID, req application.CreateRoomRequest) (*application.RoomDTO, error)
	UpdateRoom(ctx context.Context, roomID uuid.UUID, req application.UpdateRoomRequest) (*application.RoomDTO, error)
	RetireRoom(ctx context.Context, roomID uuid.UUID) (*application.RoomDTO, error)
	ScheduleMaintenance(ctx context.Context, roomID uuid.UUID, req application.MaintenanceRequest) (*application.RoomDTO, error)
	ClearMaintenance(ctx context.Context, roomID uuid.UUID) (*application.RoomDTO, error)
	GetRoom(ctx context.Context, roomID uuid.UUID) (*application.RoomDTO, error)
	ListRooms(ctx context.Context, roomTypeID uuid.UUID) ([]application.RoomDTO, error)
}

// InventoryHandler handles HTTP requests for the lodging inventory.
type InventoryHandler struct {
	service InventoryAPI
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service InventoryAPI) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *InventoryHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	v1 := r.Group("/api/v1")
	v1.Use(authMW)

	properties := v1.Group("/properties")
	{
		properties.POST("", h.CreateProperty)
		properties.GET("", h.ListProperties)
		properties.GET("/:id", h.GetProperty)
		properties.PUT("/:id", h.UpdateProperty)
		properties.DELETE("/:id", h.DeleteProperty)
		properties.POST("/:id/room-types", h.CreateRoomType)
		properties.GET("/:id/room-types", h.ListRoomTypes)
	}

	roomTypes := v1.Group("/room-types")
	{
		roomTypes.PUT("/:id", h.UpdateRoomType)
		roomTypes.DELETE("/:id", h.DeleteRoomType)
		roomTypes.POST("/:id/rooms", h.CreateRoom)
		roomTypes.GET("/:id/rooms", h.ListRooms)
	}

	rooms := v1.Group("/rooms")
	{
		rooms.GET("/:id", h.GetRoom)
		rooms.PUT("/:id", h.UpdateRoom)
		rooms.DELETE("/:id", h.RetireRoom)
		rooms.PUT("/:id/maintenance", h.ScheduleMaintenance)
		rooms.DELETE("/:id/maintenance", h.ClearMaintenance)
	}
}

// --- Properties ---

// CreateProperty handles POST /api/v1/properties.
func (h *InventoryHandler) CreateProperty(c *gin.Context) {
	var req application.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateProperty(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListProperties handles GET /api/v1/properties.
func (h *InventoryHandler) ListProperties(c *gin.Context) {
	ownerID, ok := parseOptionalUUIDQuery(c, "owner_id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListProperties(c.Request.Context(), application.ListPropertiesQuery{
		OwnerID: ownerID, Page: page, Limit: limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetProperty handles GET /api/v1/properties/:id.
func (h *InventoryHandler) GetProperty(c *gin.Context) {
	propertyID, ok := parseUUIDParam(c, "id", "property")
	if !ok {
		return
	}

	result, err := h.service.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateProperty handles PUT /api/v1/properties/:id.
func (h *InventoryHandler) UpdateProperty(c *gin.Context) {
	propertyID, ok := parseUUIDParam(c, "id", "property")
	if !ok {
		return
	}
	var req application.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateProperty(c.Request.Context(), propertyID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteProperty handles DELETE /api/v1/properties/:id.
func (h *InventoryHandler) DeleteProperty(c *gin.Context) {
	propertyID, ok := parseUUIDParam(c, "id", "property")
	if !ok {
		return
	}

	if err := h.service.DeleteProperty(c.Request.Context(), propertyID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// --- Room types ---

// CreateRoomType handles POST /api/v1/properties/:id/room-types.
func (h *InventoryHandler) CreateRoomType(c *gin.Context) {
	propertyID, ok := parseUUIDParam(c, "id", "property")
	if !ok {
		return
	}
	var req application.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRoomType(c.Request.Context(), propertyID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListRoomTypes handles GET /api/v1/properties/:id/room-types.
func (h *InventoryHandler) ListRoomTypes(c *gin.Context) {
	propertyID, ok := parseUUIDParam(c, "id", "property")
	if !ok {
		return
	}

	result, err := h.service.ListRoomTypes(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateRoomType handles PUT /api/v1/room-types/:id.
func (h *InventoryHandler) UpdateRoomType(c *gin.Context) {
	roomTypeID, ok := parseUUIDParam(c, "id", "room type")
	if !ok {
		return
	}
	var req application.UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateRoomType(c.Request.Context(), roomTypeID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteRoomType handles DELETE /api/v1/room-types/:id.
func (h *InventoryHandler) DeleteRoomType(c *gin.Context) {
	roomTypeID, ok := parseUUIDParam(c, "id", "room type")
	if !ok {
		return
	}

	if err := h.service.DeleteRoomType(c.Request.Context(), roomTypeID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// --- Rooms ---

// CreateRoom handles POST /api/v1/room-types/:id/rooms.
func (h *InventoryHandler) CreateRoom(c *gin.Context) {
	roomTypeID, ok := parseUUIDParam(c, "id", "room type")
	if !ok {
		return
	}
	var req application.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRoom(c.Request.Context(), roomTypeID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListRooms handles GET /api/v1/room-types/:id/rooms.
func (h *InventoryHandler) ListRooms(c *gin.Context) {
	roomTypeID, ok := parseUUIDParam(c, "id", "room type")
	if !ok {
		return
	}

	result, err := h.service.ListRooms(c.Request.Context(), roomTypeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetRoom handles GET /api/v1/rooms/:id.
func (h *InventoryHandler) GetRoom(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id", "room")
	if !ok {
		return
	}

	result, err := h.service.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateRoom handles PUT /api/v1/rooms/:id.
func (h *InventoryHandler) UpdateRoom(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id", "room")
	if !ok {
		return
	}
	var req application.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateRoom(c.Request.Context(), roomID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RetireRoom handles DELETE /api/v1/rooms/:id. Rooms are retired rather
// than deleted so their booking history stays intact.
func (h *InventoryHandler) RetireRoom(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id", "room")
	if !ok {
		return
	}

	result, err := h.service.RetireRoom(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

type maintenanceBody struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// ScheduleMaintenance handles PUT /api/v1/rooms/:id/maintenance.
func (h *InventoryHandler) ScheduleMaintenance(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id", "room")
	if !ok {
		return
	}
	var body maintenanceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	start, err := parseDate("start", body.Start)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	end, err := parseDate("end", body.End)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ScheduleMaintenance(c.Request.Context(), roomID, application.MaintenanceRequest{Start: start, End: end})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ClearMaintenance handles DELETE /api/v1/rooms/:id/maintenance.
func (h *InventoryHandler) ClearMaintenance(c *gin.Context) {
	roomID, ok := parseUUIDParam(c, "id", "room")
	if !ok {
		return
	}

	result, err := h.service.ClearMaintenance(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
