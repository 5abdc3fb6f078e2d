package inventory

import (
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/google/uuid"
)

// RoomType groups rooms of a property that share price, capacity and floor.
type RoomType struct {
	id         uuid.UUID
	propertyID uuid.UUID
	name       string
	priceCents int64
	capacity   int
	floor      int
	version    int64
	createdAt  time.Time
	updatedAt  time.Time
}

// NewRoomType creates a room type for the given property.
func NewRoomType(propertyID uuid.UUID, name string, priceCents int64, capacity, floor int) (*RoomType, error) {
	if propertyID == uuid.Nil {
		return nil, domain.NewValidationError("property ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("room type name is required")
	}
	if priceCents <= 0 {
		return nil, domain.NewValidationError("price per night must be positive")
	}
	if capacity <= 0 {
		return nil, domain.NewValidationError("capacity must be positive")
	}

	now := time.Now().UTC()
	return &RoomType{
		id:         uuid.New(),
		propertyID: propertyID,
		name:       name,
		priceCents: priceCents,
		capacity:   capacity,
		floor:      floor,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructRoomType rebuilds a RoomType from persistence data (no validation).
func ReconstructRoomType(
	id, propertyID uuid.UUID,
	name string,
	priceCents int64,
	capacity, floor int,
	version int64,
	createdAt, updatedAt time.Time,
) *RoomType {
	return &RoomType{
		id:         id,
		propertyID: propertyID,
		name:       name,
		priceCents: priceCents,
		capacity:   capacity,
		floor:      floor,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ID returns the room type identifier.
func (t *RoomType) ID() uuid.UUID { return t.id }

// PropertyID returns the property this room type belongs to.
func (t *RoomType) PropertyID() uuid.UUID { return t.propertyID }

// Name returns the room type name.
func (t *RoomType) Name() string { return t.name }

// PriceCents returns the nightly rate in cents.
func (t *RoomType) PriceCents() int64 { return t.priceCents }

// Capacity returns the maximum number of guests.
func (t *RoomType) Capacity() int { return t.capacity }

// Floor returns the floor the rooms of this type are on.
func (t *RoomType) Floor() int { return t.floor }

// Version returns the optimistic-locking version.
func (t *RoomType) Version() int64 { return t.version }

// CreatedAt returns when the room type was created.
func (t *RoomType) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns when the room type was last modified.
func (t *RoomType) UpdatedAt() time.Time { return t.updatedAt }

// Fits reports whether the requested guest count fits the room type.
func (t *RoomType) Fits(guests int) bool {
	return guests > 0 && guests <= t.capacity
}

// Update applies partial changes. Zero values leave fields untouched.
// Existing bookings keep their price snapshot.
func (t *RoomType) Update(name string, priceCents int64, capacity int, floor *int) error {
	if priceCents < 0 {
		return domain.NewValidationError("price per night must be positive")
	}
	if capacity < 0 {
		return domain.NewValidationError("capacity must be positive")
	}
	if name != "" {
		t.name = name
	}
	if priceCents > 0 {
		t.priceCents = priceCents
	}
	if capacity > 0 {
		t.capacity = capacity
	}
	if floor != nil {
		t.floor = *floor
	}
	t.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (t *RoomType) IncrementVersion() {
	t.version++
	t.updatedAt = time.Now().UTC()
}
