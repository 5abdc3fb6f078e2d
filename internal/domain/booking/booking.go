package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/google/uuid"
)

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CustomerSnapshot is the customer's contact data copied at booking time.
type CustomerSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Booking is the aggregate root for a room reservation.
type Booking struct {
	id            uuid.UUID
	bookingNumber string
	roomID        uuid.UUID
	customerID    uuid.UUID
	customer      CustomerSnapshot
	stay          domain.DateRange

	// Price snapshot taken when the booking was created or last rescheduled.
	totalDays        int
	nightlyRateCents int64
	totalPriceCents  int64
	currency         string

	capacity  int
	breakfast bool
	status    BookingStatus

	paidAt            *time.Time
	cancelledAt       *time.Time
	refundRequestedAt *time.Time
	completedAt       *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBookingParams holds the inputs of NewBooking.
type NewBookingParams struct {
	RoomID           uuid.UUID
	CustomerID       uuid.UUID
	Customer         CustomerSnapshot
	Stay             domain.DateRange
	Capacity         int
	Breakfast        bool
	NightlyRateCents int64
	TotalPriceCents  int64
	Currency         string
	Now              time.Time
}

// generateBookingNumber creates a booking number in the format "BK-XXXXXX".
func generateBookingNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		result[i] = bookingNumberChars[n.Int64()]
	}
	return "BK-" + string(result), nil
}

// NewBooking creates a new Booking aggregate with status=waiting_for_payment.
func NewBooking(p NewBookingParams) (*Booking, error) {
	if p.RoomID == uuid.Nil {
		return nil, domain.NewValidationError("room ID is required")
	}
	if p.CustomerID == uuid.Nil {
		return nil, domain.NewValidationError("customer ID is required")
	}
	if p.Stay.IsZero() || !p.Stay.End.After(p.Stay.Start) {
		return nil, domain.NewValidationError("check-out date must be after check-in date")
	}
	if p.Capacity <= 0 {
		return nil, domain.NewValidationError("capacity must be positive")
	}
	if p.TotalPriceCents <= 0 {
		return nil, domain.NewValidationError("total price must be positive")
	}
	if p.Customer.Name == "" {
		return nil, domain.NewValidationError("customer name is required")
	}

	bookingNumber, err := generateBookingNumber()
	if err != nil {
		return nil, err
	}

	now := p.Now.UTC()
	if p.Now.IsZero() {
		now = time.Now().UTC()
	}
	currency := p.Currency
	if currency == "" {
		currency = domain.CurrencyMYR
	}

	return &Booking{
		id:               uuid.New(),
		bookingNumber:    bookingNumber,
		roomID:           p.RoomID,
		customerID:       p.CustomerID,
		customer:         p.Customer,
		stay:             p.Stay,
		totalDays:        p.Stay.Nights(),
		nightlyRateCents: p.NightlyRateCents,
		totalPriceCents:  p.TotalPriceCents,
		currency:         currency,
		capacity:         p.Capacity,
		breakfast:        p.Breakfast,
		status:           StatusWaitingForPayment,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	bookingNumber string,
	roomID uuid.UUID,
	customerID uuid.UUID,
	customer CustomerSnapshot,
	stay domain.DateRange,
	totalDays int,
	nightlyRateCents int64,
	totalPriceCents int64,
	currency string,
	capacity int,
	breakfast bool,
	status BookingStatus,
	paidAt *time.Time,
	cancelledAt *time.Time,
	refundRequestedAt *time.Time,
	completedAt *time.Time,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                id,
		bookingNumber:     bookingNumber,
		roomID:            roomID,
		customerID:        customerID,
		customer:          customer,
		stay:              stay,
		totalDays:         totalDays,
		nightlyRateCents:  nightlyRateCents,
		totalPriceCents:   totalPriceCents,
		currency:          currency,
		capacity:          capacity,
		breakfast:         breakfast,
		status:            status,
		paidAt:            paidAt,
		cancelledAt:       cancelledAt,
		refundRequestedAt: refundRequestedAt,
		completedAt:       completedAt,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// BookingNumber returns the human-readable booking number.
func (b *Booking) BookingNumber() string { return b.bookingNumber }

// RoomID returns the reserved room.
func (b *Booking) RoomID() uuid.UUID { return b.roomID }

// CustomerID returns the customer's user ID.
func (b *Booking) CustomerID() uuid.UUID { return b.customerID }

// Customer returns the contact snapshot taken at booking time.
func (b *Booking) Customer() CustomerSnapshot { return b.customer }

// Stay returns the reserved [check-in, check-out) range.
func (b *Booking) Stay() domain.DateRange { return b.stay }

// CheckIn returns the check-in date.
func (b *Booking) CheckIn() time.Time { return b.stay.Start }

// CheckOut returns the check-out date.
func (b *Booking) CheckOut() time.Time { return b.stay.End }

// TotalDays returns the number of nights in the snapshot.
func (b *Booking) TotalDays() int { return b.totalDays }

// NightlyRateCents returns the per-night price captured in the snapshot.
func (b *Booking) NightlyRateCents() int64 { return b.nightlyRateCents }

// TotalPriceCents returns the total price captured in the snapshot.
func (b *Booking) TotalPriceCents() int64 { return b.totalPriceCents }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// Capacity returns the requested guest count.
func (b *Booking) Capacity() int { return b.capacity }

// Breakfast reports whether breakfast was requested.
func (b *Booking) Breakfast() bool { return b.breakfast }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// PaidAt returns the time payment was confirmed.
func (b *Booking) PaidAt() *time.Time { return b.paidAt }

// CancelledAt returns the time the booking was cancelled.
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }

// RefundRequestedAt returns the time a refund was requested.
func (b *Booking) RefundRequestedAt() *time.Time { return b.refundRequestedAt }

// CompletedAt returns the time the booking was marked done.
func (b *Booking) CompletedAt() *time.Time { return b.completedAt }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// HoldsRoom reports whether the booking still blocks its room. A booking that
// was ever cancelled has released the room for good, even after a refund
// request moves it out of the cancelled status.
func (b *Booking) HoldsRoom() bool { return b.cancelledAt == nil && b.status.HoldsRoom() }

// WasPaid reports whether payment was ever confirmed for this booking.
func (b *Booking) WasPaid() bool { return b.paidAt != nil }

// --- Behavior ---
//
// Transition methods return changed=false when the call re-applies the state
// the booking is already in; callers skip persistence in that case.

// Pay confirms payment. Paying an already-confirmed booking is a no-op.
func (b *Booking) Pay(now time.Time) (bool, error) {
	if b.status == StatusPaymentConfirmed {
		return false, nil
	}
	if !b.status.CanTransitionTo(StatusPaymentConfirmed) {
		return false, domain.NewInvalidStateError(string(b.status), string(StatusPaymentConfirmed))
	}
	now = now.UTC()
	b.status = StatusPaymentConfirmed
	b.paidAt = &now
	b.updatedAt = now
	return true, nil
}

// Cancel cancels a booking whose check-in date has not yet been reached.
// Cancelling an already-cancelled booking is a no-op.
func (b *Booking) Cancel(now time.Time) (bool, error) {
	if b.status == StatusCancelled {
		return false, nil
	}
	if b.status != StatusWaitingForPayment && b.status != StatusPaymentConfirmed {
		return false, domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	if !now.Before(b.stay.Start) {
		return false, &domain.Error{
			Kind:    domain.KindInvalidState,
			Message: "booking can no longer be cancelled: check-in date has passed",
			From:    string(b.status),
			To:      string(StatusCancelled),
		}
	}
	b.markCancelled(now)
	return true, nil
}

// RequestRefund moves a paid booking into the refund-requested terminal state.
// Allowed from payment_confirmed, or from cancelled when the booking had been
// paid. Requesting a refund twice is a no-op.
func (b *Booking) RequestRefund(now time.Time) (bool, error) {
	if b.status == StatusRequestRefund {
		return false, nil
	}
	if !b.status.CanTransitionTo(StatusRequestRefund) {
		return false, domain.NewInvalidStateError(string(b.status), string(StatusRequestRefund))
	}
	if b.status == StatusCancelled && !b.WasPaid() {
		return false, &domain.Error{
			Kind:    domain.KindInvalidState,
			Message: "cannot refund a booking that was never paid",
			From:    string(b.status),
			To:      string(StatusRequestRefund),
		}
	}
	now = now.UTC()
	b.status = StatusRequestRefund
	b.refundRequestedAt = &now
	b.updatedAt = now
	return true, nil
}

// Reschedule replaces the room, dates, guest count and price snapshot of a
// booking that is still waiting for payment and whose current check-in date
// has not been reached.
func (b *Booking) Reschedule(roomID uuid.UUID, stay domain.DateRange, capacity int, nightlyRateCents, totalPriceCents int64, now time.Time) error {
	if b.status != StatusWaitingForPayment {
		return &domain.Error{
			Kind:    domain.KindInvalidState,
			Message: fmt.Sprintf("only bookings waiting for payment can be changed, booking is %s", b.status),
			From:    string(b.status),
			To:      string(StatusWaitingForPayment),
		}
	}
	if !now.Before(b.stay.Start) {
		return errCheckInReached(b.status)
	}
	if roomID == uuid.Nil {
		return domain.NewValidationError("room ID is required")
	}
	if !stay.End.After(stay.Start) {
		return domain.NewValidationError("check-out date must be after check-in date")
	}
	if capacity <= 0 {
		return domain.NewValidationError("capacity must be positive")
	}
	if totalPriceCents <= 0 {
		return domain.NewValidationError("total price must be positive")
	}
	b.roomID = roomID
	b.stay = stay
	b.totalDays = stay.Nights()
	b.capacity = capacity
	b.nightlyRateCents = nightlyRateCents
	b.totalPriceCents = totalPriceCents
	b.updatedAt = now.UTC()
	return nil
}

// ApplyTimeTransition advances the booking according to NextStatus.
// It returns the new status and whether anything changed.
func (b *Booking) ApplyTimeTransition(now time.Time) (BookingStatus, bool) {
	next, ok := NextStatus(b.status, b.stay.Start, b.stay.End, now)
	if !ok {
		return b.status, false
	}
	switch next {
	case StatusCancelled:
		b.markCancelled(now)
	case StatusDone:
		now = now.UTC()
		b.status = StatusDone
		b.completedAt = &now
		b.updatedAt = now
	default:
		return b.status, false
	}
	return b.status, true
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}

// errCheckInReached rejects changes to a booking whose check-in has passed.
func errCheckInReached(status BookingStatus) error {
	return &domain.Error{
		Kind:    domain.KindInvalidState,
		Message: "booking can no longer be changed: check-in date has passed",
		From:    string(status),
		To:      string(StatusWaitingForPayment),
	}
}

func (b *Booking) markCancelled(now time.Time) {
	now = now.UTC()
	b.status = StatusCancelled
	b.cancelledAt = &now
	b.updatedAt = now
}
