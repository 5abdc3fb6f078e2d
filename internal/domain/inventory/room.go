package inventory

import (
	"fmt"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/google/uuid"
)

// Availability is the operational flag of a room.
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

// IsValid returns true if the availability flag is recognized.
func (a Availability) IsValid() bool {
	return a == AvailabilityAvailable || a == AvailabilityUnavailable
}

// ActiveState tells whether a room is still part of the inventory.
type ActiveState string

const (
	ActiveStateActive  ActiveState = "active"
	ActiveStateRetired ActiveState = "retired"
)

// IsValid returns true if the active state is recognized.
func (s ActiveState) IsValid() bool {
	return s == ActiveStateActive || s == ActiveStateRetired
}

// Room is a physical bookable unit belonging to one RoomType.
type Room struct {
	id           uuid.UUID
	roomTypeID   uuid.UUID
	number       string
	availability Availability
	active       ActiveState
	maintenance  *domain.DateRange
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// NewRoom creates an available, active room.
func NewRoom(roomTypeID uuid.UUID, number string) (*Room, error) {
	if roomTypeID == uuid.Nil {
		return nil, domain.NewValidationError("room type ID is required")
	}
	if number == "" {
		return nil, domain.NewValidationError("room number is required")
	}

	now := time.Now().UTC()
	return &Room{
		id:           uuid.New(),
		roomTypeID:   roomTypeID,
		number:       number,
		availability: AvailabilityAvailable,
		active:       ActiveStateActive,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructRoom rebuilds a Room from persistence data (no validation).
func ReconstructRoom(
	id, roomTypeID uuid.UUID,
	number string,
	availability Availability,
	active ActiveState,
	maintenance *domain.DateRange,
	version int64,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:           id,
		roomTypeID:   roomTypeID,
		number:       number,
		availability: availability,
		active:       active,
		maintenance:  maintenance,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the room identifier.
func (r *Room) ID() uuid.UUID { return r.id }

// RoomTypeID returns the room type this room belongs to.
func (r *Room) RoomTypeID() uuid.UUID { return r.roomTypeID }

// Number returns the room number shown to guests.
func (r *Room) Number() string { return r.number }

// Availability returns whether the room is offered for booking.
func (r *Room) Availability() Availability { return r.availability }

// Active returns whether the room is active or retired.
func (r *Room) Active() ActiveState { return r.active }

// Maintenance returns the scheduled maintenance window, or nil if none.
func (r *Room) Maintenance() *domain.DateRange { return r.maintenance }

// Version returns the optimistic-locking version.
func (r *Room) Version() int64 { return r.version }

// CreatedAt returns when the room was created.
func (r *Room) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns when the room was last modified.
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }

// IsActive reports whether the room has not been retired.
func (r *Room) IsActive() bool { return r.active == ActiveStateActive }

// AcceptsStay vetoes a stay on an inactive or unavailable room, or one that
// overlaps the maintenance window.
func (r *Room) AcceptsStay(stay domain.DateRange) error {
	if !r.IsActive() {
		return domain.NewConflictError(fmt.Sprintf("room %s is retired", r.number))
	}
	if r.availability != AvailabilityAvailable {
		return domain.NewConflictError(fmt.Sprintf("room %s is unavailable", r.number))
	}
	if r.maintenance != nil && r.maintenance.Overlaps(stay) {
		return domain.NewConflictError(fmt.Sprintf("room %s is under maintenance for the requested dates", r.number))
	}
	return nil
}

// Renumber changes the room's label.
func (r *Room) Renumber(number string) error {
	if number == "" {
		return domain.NewValidationError("room number is required")
	}
	r.number = number
	r.touch()
	return nil
}

// SetAvailability toggles the operational availability flag.
func (r *Room) SetAvailability(a Availability) error {
	if !a.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid availability: %s", a))
	}
	r.availability = a
	r.touch()
	return nil
}

// ScheduleMaintenance sets the maintenance window, replacing any previous one.
func (r *Room) ScheduleMaintenance(window domain.DateRange) error {
	if !r.IsActive() {
		return domain.NewInvalidStateError(string(r.active), "maintenance")
	}
	r.maintenance = &window
	r.touch()
	return nil
}

// ClearMaintenance removes the maintenance window.
func (r *Room) ClearMaintenance() {
	r.maintenance = nil
	r.touch()
}

// Retire removes the room from the bookable inventory. It returns false when
// the room was already retired.
func (r *Room) Retire() bool {
	if r.active == ActiveStateRetired {
		return false
	}
	r.active = ActiveStateRetired
	r.touch()
	return true
}

// IncrementVersion bumps the version for optimistic locking.
func (r *Room) IncrementVersion() {
	r.version++
	r.touch()
}

func (r *Room) touch() {
	r.updatedAt = time.Now().UTC()
}
