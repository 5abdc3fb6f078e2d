package application

import (
	"context"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/authz"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/google/uuid"
)

// AvailabilityQuery asks about one room or one property for a stay.
type AvailabilityQuery struct {
	ID       uuid.UUID
	CheckIn  time.Time
	CheckOut time.Time
}

// GuardedBookingService exposes the booking and availability operations to
// human callers, each behind its authorization policy. PayBooking is not
// exposed here: it is driven by machine credentials only.
type GuardedBookingService struct {
	create     authz.Operation[CreateBookingRequest, *BookingDTO]
	update     authz.Operation[UpdateBookingRequest, *BookingDTO]
	cancel     authz.Operation[uuid.UUID, *BookingDTO]
	refund     authz.Operation[uuid.UUID, *BookingDTO]
	get        authz.Operation[uuid.UUID, *BookingDTO]
	getNumber  authz.Operation[string, *BookingDTO]
	list       authz.Operation[ListBookingsQuery, *domain.PaginatedResult[BookingDTO]]
	statistics authz.Operation[StatisticsQuery, *BookingStatisticsDTO]
	checkRoom  authz.Operation[AvailabilityQuery, *AvailabilityResult]
	checkProp  authz.Operation[AvailabilityQuery, *PropertyAvailabilityDTO]
}

// NewGuardedBookingService wraps the booking and availability services.
func NewGuardedBookingService(bookings *BookingService, availability *AvailabilityService) *GuardedBookingService {
	return &GuardedBookingService{
		create: authz.Authorize("create booking", authz.CreateBookingPolicy, nil,
			func(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
				caller, _ := authz.CallerFrom(ctx)
				return bookings.CreateBooking(ctx, caller.UserID, req)
			}),
		// Role check only: the booking's customer is not compared to the caller.
		update: authz.Authorize("update booking", authz.UpdateBookingPolicy, nil, bookings.UpdateBooking),
		cancel: authz.Authorize("cancel booking", authz.CancelBookingPolicy, nil, bookings.CancelBooking),
		refund: authz.Authorize("refund booking", authz.RefundBookingPolicy, nil, bookings.RefundBooking),
		get:    authz.Authorize("read booking", authz.ReadBookingPolicy, nil, bookings.GetBooking),
		list:   authz.Authorize("list bookings", authz.ReadBookingPolicy, nil, bookings.ListBookings),
		getNumber: authz.Authorize("read booking", authz.ReadBookingPolicy, nil,
			bookings.GetBookingByNumber),
		statistics: authz.Authorize("read booking statistics", authz.StatisticsPolicy, nil,
			func(ctx context.Context, q StatisticsQuery) (*BookingStatisticsDTO, error) {
				caller, _ := authz.CallerFrom(ctx)
				if caller.Role == authz.RoleAccommodationOwner {
					ownerID := caller.UserID
					q.OwnerID = &ownerID
				}
				return bookings.GetBookingStatistics(ctx, q)
			}),
		checkRoom: authz.Authorize("check availability", authz.CheckAvailabilityPolicy, nil,
			func(ctx context.Context, q AvailabilityQuery) (*AvailabilityResult, error) {
				stay, err := domain.NewDateRange(q.CheckIn, q.CheckOut)
				if err != nil {
					return nil, err
				}
				return availability.CheckAvailability(ctx, q.ID, stay, uuid.Nil)
			}),
		checkProp: authz.Authorize("check availability", authz.CheckAvailabilityPolicy, nil,
			func(ctx context.Context, q AvailabilityQuery) (*PropertyAvailabilityDTO, error) {
				stay, err := domain.NewDateRange(q.CheckIn, q.CheckOut)
				if err != nil {
					return nil, err
				}
				return availability.PropertyAvailability(ctx, q.ID, stay)
			}),
	}
}

// CreateBooking creates a booking for the calling customer. See
// BookingService.CreateBooking for the billing notification contract.
func (g *GuardedBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	return g.create(ctx, req)
}

// UpdateBooking changes an unpaid booking.
func (g *GuardedBookingService) UpdateBooking(ctx context.Context, req UpdateBookingRequest) (*BookingDTO, error) {
	return g.update(ctx, req)
}

// CancelBooking cancels a booking before check-in.
func (g *GuardedBookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	return g.cancel(ctx, bookingID)
}

// RefundBooking requests a refund of a paid booking.
func (g *GuardedBookingService) RefundBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	return g.refund(ctx, bookingID)
}

// GetBooking retrieves a booking.
func (g *GuardedBookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	return g.get(ctx, bookingID)
}

// GetBookingByNumber retrieves a booking by its booking number.
func (g *GuardedBookingService) GetBookingByNumber(ctx context.Context, number string) (*BookingDTO, error) {
	return g.getNumber(ctx, number)
}

// ListBookings lists bookings, narrowed only by the query's filters.
func (g *GuardedBookingService) ListBookings(ctx context.Context, q ListBookingsQuery) (*domain.PaginatedResult[BookingDTO], error) {
	return g.list(ctx, q)
}

// GetBookingStatistics reports completed bookings of a month. Accommodation
// owners only see their own properties.
func (g *GuardedBookingService) GetBookingStatistics(ctx context.Context, q StatisticsQuery) (*BookingStatisticsDTO, error) {
	return g.statistics(ctx, q)
}

// CheckRoomAvailability checks one room for a stay.
func (g *GuardedBookingService) CheckRoomAvailability(ctx context.Context, q AvailabilityQuery) (*AvailabilityResult, error) {
	return g.checkRoom(ctx, q)
}

// CheckPropertyAvailability lists the booked and available rooms of a property.
func (g *GuardedBookingService) CheckPropertyAvailability(ctx context.Context, q AvailabilityQuery) (*PropertyAvailabilityDTO, error) {
	return g.checkProp(ctx, q)
}
