package booking

import (
	"context"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/google/uuid"
)

// ListFilter narrows booking listings. Zero values mean "any".
type ListFilter struct {
	CustomerID *uuid.UUID
	RoomID     *uuid.UUID
	Status     *BookingStatus
}

// RoomCompletion aggregates done bookings of one room.
type RoomCompletion struct {
	RoomID       uuid.UUID
	Count        int64
	RevenueCents int64
}

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByNumber retrieves a booking by its human-readable booking number.
	FindByNumber(ctx context.Context, number string) (*Booking, error)

	// List retrieves bookings matching the filter with pagination.
	List(ctx context.Context, filter ListFilter, page, limit int) ([]*Booking, int64, error)

	// FindOverlapping returns bookings on roomID that hold the room and whose
	// stay overlaps the given range.
	FindOverlapping(ctx context.Context, roomID uuid.UUID, stay domain.DateRange) ([]*Booking, error)

	// FindHoldingRooms returns bookings on any of roomIDs that hold their room
	// and overlap the given range.
	FindHoldingRooms(ctx context.Context, roomIDs []uuid.UUID, stay domain.DateRange) ([]*Booking, error)

	// FindDueForTransition returns up to limit bookings whose time-driven
	// transition is due at now.
	FindDueForTransition(ctx context.Context, now time.Time, limit int) ([]*Booking, error)

	// CountCompletedByRoom aggregates done bookings whose check-out falls in period.
	CountCompletedByRoom(ctx context.Context, period domain.DateRange) ([]RoomCompletion, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}

// UnitOfWork runs fn inside one transaction holding exclusive locks on the
// given rooms, so the availability check and the write that depends on it are
// atomic with respect to other bookings of the same rooms. Repository calls
// made with the ctx passed to fn join the transaction.
type UnitOfWork interface {
	WithinRoomLock(ctx context.Context, roomIDs []uuid.UUID, fn func(ctx context.Context) error) error
}
