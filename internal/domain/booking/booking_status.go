package booking

import "fmt"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusWaitingForPayment BookingStatus = "waiting_for_payment"
	StatusPaymentConfirmed  BookingStatus = "payment_confirmed"
	StatusCancelled         BookingStatus = "cancelled"
	StatusRequestRefund     BookingStatus = "request_refund"
	StatusDone              BookingStatus = "done"
)

// validTransitions defines the state machine for booking status transitions.
// cancelled -> request_refund is further restricted to bookings that were paid.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusWaitingForPayment: {StatusPaymentConfirmed, StatusCancelled},
	StatusPaymentConfirmed:  {StatusCancelled, StatusRequestRefund, StatusDone},
	StatusCancelled:         {StatusRequestRefund},
	StatusRequestRefund:     {},
	StatusDone:              {},
}

// excludedFromConflicts lists statuses that no longer hold the room.
var excludedFromConflicts = []BookingStatus{StatusCancelled, StatusDone}

// ExcludedFromConflicts returns the statuses ignored by overlap detection.
func ExcludedFromConflicts() []BookingStatus {
	out := make([]BookingStatus, len(excludedFromConflicts))
	copy(out, excludedFromConflicts)
	return out
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// HoldsRoom reports whether a booking in this status still blocks its room.
func (s BookingStatus) HoldsRoom() bool {
	for _, ex := range excludedFromConflicts {
		if s == ex {
			return false
		}
	}
	return true
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
