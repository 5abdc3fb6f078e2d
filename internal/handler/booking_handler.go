package handler

import (
	"context"
	"strconv"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/handler/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingAPI is the caller-facing booking surface, already authorized.
type BookingAPI interface {
	CreateBooking(ctx context.Context, req application.CreateBookingRequest) (*application.BookingDTO, error)
	UpdateBooking(ctx context.Context, req application.UpdateBookingRequest) (*application.BookingDTO, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) (*application.BookingDTO, error)
	RefundBooking(ctx context.Context, bookingID uuid.UUID) (*application.BookingDTO, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*application.BookingDTO, error)
	GetBookingByNumber(ctx context.Context, number string) (*application.BookingDTO, error)
	ListBookings(ctx context.Context, q application.ListBookingsQuery) (*domain.PaginatedResult[application.BookingDTO], error)
	GetBookingStatistics(ctx context.Context, q application.StatisticsQuery) (*application.BookingStatisticsDTO, error)
}

// BookingPayer confirms payment on behalf of the billing service.
type BookingPayer interface {
	PayBooking(ctx context.Context, bookingID uuid.UUID) (*application.BookingDTO, error)
}

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service BookingAPI
	payer   BookingPayer
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service BookingAPI, payer BookingPayer) *BookingHandler {
	return &BookingHandler{service: service, payer: payer}
}

// RegisterRoutes registers all booking routes on the given router group.
// Payment confirmation is the one route authenticated by service key
// instead of a user token.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, authMW, serviceKeyMW gin.HandlerFunc) {
	bookings := r.Group("/api/v1/bookings")
	bookings.Use(authMW)
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/statistics", h.GetStatistics)
		bookings.GET("/number/:number", h.GetBookingByNumber)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/refund", h.RefundBooking)
	}

	machine := r.Group("/api/v1/bookings")
	machine.Use(serviceKeyMW)
	machine.POST("/:id/pay", h.PayBooking)
}

type createBookingBody struct {
	RoomID    uuid.UUID                      `json:"room_id" binding:"required"`
	CheckIn   string                         `json:"check_in" binding:"required"`
	CheckOut  string                         `json:"check_out" binding:"required"`
	Capacity  int                            `json:"capacity" binding:"required,gt=0"`
	Breakfast bool                           `json:"breakfast"`
	Customer  application.CustomerContactDTO `json:"customer" binding:"required"`
}

type updateBookingBody struct {
	RoomID   *uuid.UUID `json:"room_id"`
	CheckIn  *string    `json:"check_in"`
	CheckOut *string    `json:"check_out"`
	Capacity *int       `json:"capacity" binding:"omitempty,gt=0"`
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var body createBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	checkIn, err := parseDate("check_in", body.CheckIn)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	checkOut, err := parseDate("check_out", body.CheckOut)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), application.CreateBookingRequest{
		RoomID:    body.RoomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Capacity:  body.Capacity,
		Breakfast: body.Breakfast,
		Customer:  body.Customer,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListBookings handles GET /api/v1/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	customerID, ok := parseOptionalUUIDQuery(c, "customer_id")
	if !ok {
		return
	}
	roomID, ok := parseOptionalUUIDQuery(c, "room_id")
	if !ok {
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListBookings(c.Request.Context(), application.ListBookingsQuery{
		CustomerID: customerID,
		RoomID:     roomID,
		Status:     c.Query("status"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, ok := parseUUIDParam(c, "id", "booking")
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBookingByNumber handles GET /api/v1/bookings/number/:number.
func (h *BookingHandler) GetBookingByNumber(c *gin.Context) {
	result, err := h.service.GetBookingByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBooking handles PATCH /api/v1/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, ok := parseUUIDParam(c, "id", "booking")
	if !ok {
		return
	}

	var body updateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	checkIn, err := parseOptionalDate("check_in", body.CheckIn)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	checkOut, err := parseOptionalDate("check_out", body.CheckOut)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), application.UpdateBookingRequest{
		BookingID: bookingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		RoomID:    body.RoomID,
		Capacity:  body.Capacity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.service.CancelBooking)
}

// RefundBooking handles POST /api/v1/bookings/:id/refund.
func (h *BookingHandler) RefundBooking(c *gin.Context) {
	h.transition(c, h.service.RefundBooking)
}

// PayBooking handles POST /api/v1/bookings/:id/pay.
func (h *BookingHandler) PayBooking(c *gin.Context) {
	h.transition(c, h.payer.PayBooking)
}

func (h *BookingHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID) (*application.BookingDTO, error)) {
	bookingID, ok := parseUUIDParam(c, "id", "booking")
	if !ok {
		return
	}

	result, err := apply(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetStatistics handles GET /api/v1/bookings/statistics?month=&year=.
func (h *BookingHandler) GetStatistics(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		response.BadRequest(c, "month must be a number between 1 and 12")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.BadRequest(c, "year must be a number")
		return
	}
	ownerID, ok := parseOptionalUUIDQuery(c, "owner_id")
	if !ok {
		return
	}

	result, err := h.service.GetBookingStatistics(c.Request.Context(), application.StatisticsQuery{
		Month:   month,
		Year:    year,
		OwnerID: ownerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
