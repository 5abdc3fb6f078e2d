package inventory

import (
	"context"

	"github.com/google/uuid"
)

// PropertyRepository defines persistence operations for properties.
type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Property, error)
	ListAll(ctx context.Context, page, limit int) ([]*Property, int64, error)
	Save(ctx context.Context, property *Property) error
	Update(ctx context.Context, property *Property) error
	// Delete removes a property that no longer has room types.
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoomTypeRepository defines persistence operations for room types.
type RoomTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomType, error)
	FindByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*RoomType, error)
	Save(ctx context.Context, roomType *RoomType) error
	Update(ctx context.Context, roomType *RoomType) error
	// Delete removes a room type that has no rooms.
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoomRepository defines persistence operations for rooms.
type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	FindByRoomTypeID(ctx context.Context, roomTypeID uuid.UUID) ([]*Room, error)
	// FindByPropertyID returns every room of every room type of the property.
	FindByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*Room, error)
	Save(ctx context.Context, room *Room) error
	Update(ctx context.Context, room *Room) error
}
