package booking

import (
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/google/uuid"
)

// Conflicts returns the IDs of bookings that still hold the room and overlap
// stay. The booking identified by exclude (uuid.Nil for none) is ignored so a
// booking never conflicts with itself.
func Conflicts(existing []*Booking, stay domain.DateRange, exclude uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	for _, b := range existing {
		if b.ID() == exclude || !b.HoldsRoom() {
			continue
		}
		if b.Stay().Overlaps(stay) {
			ids = append(ids, b.ID())
		}
	}
	return ids
}

// BookedRooms returns the set of room IDs held by bookings overlapping stay.
func BookedRooms(existing []*Booking, stay domain.DateRange) map[uuid.UUID]struct{} {
	booked := make(map[uuid.UUID]struct{})
	for _, b := range existing {
		if b.HoldsRoom() && b.Stay().Overlaps(stay) {
			booked[b.RoomID()] = struct{}{}
		}
	}
	return booked
}
