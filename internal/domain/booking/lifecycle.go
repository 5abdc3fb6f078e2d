package booking

import "time"

// The functions in this file are pure: they depend only on their arguments so
// an external scheduler can drive them without the domain owning a clock.

// ShouldAutoCancel reports whether an unpaid booking reached its check-in date.
func ShouldAutoCancel(status BookingStatus, checkIn, now time.Time) bool {
	return status == StatusWaitingForPayment && !now.Before(checkIn)
}

// ShouldAutoComplete reports whether a confirmed booking reached its check-out date.
func ShouldAutoComplete(status BookingStatus, checkOut, now time.Time) bool {
	return status == StatusPaymentConfirmed && !now.Before(checkOut)
}

// IsInStay reports whether a confirmed booking is between check-in and check-out.
func IsInStay(status BookingStatus, checkIn, checkOut, now time.Time) bool {
	return status == StatusPaymentConfirmed && !now.Before(checkIn) && now.Before(checkOut)
}

// NextStatus returns the status a booking should move to at time now, and
// false when no time-driven transition applies. It is total over all statuses
// and idempotent: applying it to its own result yields no further change.
func NextStatus(status BookingStatus, checkIn, checkOut time.Time, now time.Time) (BookingStatus, bool) {
	switch {
	case ShouldAutoCancel(status, checkIn, now):
		return StatusCancelled, true
	case ShouldAutoComplete(status, checkOut, now):
		return StatusDone, true
	default:
		return status, false
	}
}
