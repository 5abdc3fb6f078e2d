package inventory

import (
	"context"

	"github.com/google/uuid"
)

// OwnershipWalker resolves the owning user of inventory entities by walking
// Room -> RoomType -> Property -> ownerID.
type OwnershipWalker struct {
	properties PropertyRepository
	roomTypes  RoomTypeRepository
	rooms      RoomRepository
}

// NewOwnershipWalker creates a new OwnershipWalker.
func NewOwnershipWalker(properties PropertyRepository, roomTypes RoomTypeRepository, rooms RoomRepository) *OwnershipWalker {
	return &OwnershipWalker{properties: properties, roomTypes: roomTypes, rooms: rooms}
}

// PropertyOwner returns the owner of a property.
func (w *OwnershipWalker) PropertyOwner(ctx context.Context, propertyID uuid.UUID) (uuid.UUID, error) {
	p, err := w.properties.FindByID(ctx, propertyID)
	if err != nil {
		return uuid.Nil, err
	}
	return p.OwnerID(), nil
}

// RoomTypeOwner returns the owner of the property a room type belongs to.
func (w *OwnershipWalker) RoomTypeOwner(ctx context.Context, roomTypeID uuid.UUID) (uuid.UUID, error) {
	rt, err := w.roomTypes.FindByID(ctx, roomTypeID)
	if err != nil {
		return uuid.Nil, err
	}
	return w.PropertyOwner(ctx, rt.PropertyID())
}

// RoomOwner returns the owner of the property a room belongs to.
func (w *OwnershipWalker) RoomOwner(ctx context.Context, roomID uuid.UUID) (uuid.UUID, error) {
	room, err := w.rooms.FindByID(ctx, roomID)
	if err != nil {
		return uuid.Nil, err
	}
	return w.RoomTypeOwner(ctx, room.RoomTypeID())
}

// RoomProperty returns the property ID a room belongs to.
func (w *OwnershipWalker) RoomProperty(ctx context.Context, roomID uuid.UUID) (uuid.UUID, error) {
	room, err := w.rooms.FindByID(ctx, roomID)
	if err != nil {
		return uuid.Nil, err
	}
	rt, err := w.roomTypes.FindByID(ctx, room.RoomTypeID())
	if err != nil {
		return uuid.Nil, err
	}
	return rt.PropertyID(), nil
}
