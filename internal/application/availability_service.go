package application

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	bookingDomain "github.com/Kilat-Pet-Delivery/service-lodging/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain/inventory"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityResult is the outcome of checking one room for one stay.
type AvailabilityResult struct {
	RoomID    uuid.UUID   `json:"room_id"`
	CheckIn   time.Time   `json:"check_in"`
	CheckOut  time.Time   `json:"check_out"`
	Available bool        `json:"available"`
	Conflicts []uuid.UUID `json:"conflicts"`
	Reason    string      `json:"reason,omitempty"`
}

// PropertyAvailabilityDTO lists the rooms of a property for one stay.
type PropertyAvailabilityDTO struct {
	PropertyID     uuid.UUID   `json:"property_id"`
	CheckIn        time.Time   `json:"check_in"`
	CheckOut       time.Time   `json:"check_out"`
	BookedRoomIDs  []uuid.UUID `json:"booked_room_ids"`
	AvailableRooms []RoomDTO   `json:"available_rooms"`
}

// AvailabilityService answers whether rooms can take a stay.
type AvailabilityService struct {
	bookings   bookingDomain.BookingRepository
	rooms      inventory.RoomRepository
	properties inventory.PropertyRepository
	logger     *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(
	bookings bookingDomain.BookingRepository,
	rooms inventory.RoomRepository,
	properties inventory.PropertyRepository,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		bookings:   bookings,
		rooms:      rooms,
		properties: properties,
		logger:     logger,
	}
}

// CheckAvailability reports whether roomID can take stay. excludeBookingID
// (uuid.Nil for none) is left out of the conflict set so a booking being
// changed never conflicts with itself. A vetoed room is reported as
// unavailable with a reason and no conflicts.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, roomID uuid.UUID, stay domain.DateRange, excludeBookingID uuid.UUID) (*AvailabilityResult, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	result := &AvailabilityResult{
		RoomID:    roomID,
		CheckIn:   stay.Start,
		CheckOut:  stay.End,
		Conflicts: []uuid.UUID{},
	}

	if err := room.AcceptsStay(stay); err != nil {
		result.Reason = err.Error()
		return result, nil
	}

	existing, err := s.bookings.FindOverlapping(ctx, roomID, stay)
	if err != nil {
		return nil, fmt.Errorf("failed to load overlapping bookings: %w", err)
	}

	if conflicts := bookingDomain.Conflicts(existing, stay, excludeBookingID); len(conflicts) > 0 {
		result.Conflicts = conflicts
		result.Reason = fmt.Sprintf("room %s is already booked for the requested dates", room.Number())
		return result, nil
	}

	result.Available = true
	return result, nil
}

// ensureAvailable turns an unavailable result into a Conflict error.
func (s *AvailabilityService) ensureAvailable(ctx context.Context, roomID uuid.UUID, stay domain.DateRange, excludeBookingID uuid.UUID) error {
	result, err := s.CheckAvailability(ctx, roomID, stay, excludeBookingID)
	if err != nil {
		return err
	}
	if !result.Available {
		return domain.NewConflictError(result.Reason)
	}
	return nil
}

// BookedRoomIDs returns the rooms of the property held by a booking that
// overlaps stay.
func (s *AvailabilityService) BookedRoomIDs(ctx context.Context, propertyID uuid.UUID, stay domain.DateRange) ([]uuid.UUID, error) {
	rooms, err := s.propertyRooms(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookedSet(ctx, rooms, stay)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(booked))
	for id := range booked {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids, nil
}

// PropertyAvailability returns all rooms of the property minus the booked
// rooms and the rooms that veto the stay.
func (s *AvailabilityService) PropertyAvailability(ctx context.Context, propertyID uuid.UUID, stay domain.DateRange) (*PropertyAvailabilityDTO, error) {
	rooms, err := s.propertyRooms(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookedSet(ctx, rooms, stay)
	if err != nil {
		return nil, err
	}

	result := &PropertyAvailabilityDTO{
		PropertyID:     propertyID,
		CheckIn:        stay.Start,
		CheckOut:       stay.End,
		BookedRoomIDs:  make([]uuid.UUID, 0, len(booked)),
		AvailableRooms: []RoomDTO{},
	}
	for id := range booked {
		result.BookedRoomIDs = append(result.BookedRoomIDs, id)
	}
	sortIDs(result.BookedRoomIDs)

	for _, room := range rooms {
		if _, taken := booked[room.ID()]; taken {
			continue
		}
		if room.AcceptsStay(stay) != nil {
			continue
		}
		result.AvailableRooms = append(result.AvailableRooms, toRoomDTO(room))
	}
	return result, nil
}

// AvailableRoomIDs returns the IDs of PropertyAvailability's available rooms.
func (s *AvailabilityService) AvailableRoomIDs(ctx context.Context, propertyID uuid.UUID, stay domain.DateRange) ([]uuid.UUID, error) {
	avail, err := s.PropertyAvailability(ctx, propertyID, stay)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(avail.AvailableRooms))
	for i, r := range avail.AvailableRooms {
		ids[i] = r.ID
	}
	sortIDs(ids)
	return ids, nil
}

func (s *AvailabilityService) propertyRooms(ctx context.Context, propertyID uuid.UUID) ([]*inventory.Room, error) {
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return nil, err
	}
	rooms, err := s.rooms.FindByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property rooms: %w", err)
	}
	return rooms, nil
}

func (s *AvailabilityService) bookedSet(ctx context.Context, rooms []*inventory.Room, stay domain.DateRange) (map[uuid.UUID]struct{}, error) {
	if len(rooms) == 0 {
		return map[uuid.UUID]struct{}{}, nil
	}
	ids := make([]uuid.UUID, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID()
	}
	existing, err := s.bookings.FindHoldingRooms(ctx, ids, stay)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for rooms: %w", err)
	}
	return bookingDomain.BookedRooms(existing, stay), nil
}

func sortIDs(ids []uuid.UUID) {
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
}
