package application

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/authz"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain/inventory"
	"github.com/google/uuid"
)

// ListPropertiesQuery filters a property listing.
type ListPropertiesQuery struct {
	OwnerID *uuid.UUID
	Page    int
	Limit   int
}

// withID pairs a request body with the ID of the resource it addresses.
type withID[T any] struct {
	ID   uuid.UUID
	Body T
}

type ownerLookup func(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

func ownerOf(lookup ownerLookup) authz.TargetResolver[uuid.UUID] {
	return func(ctx context.Context, id uuid.UUID) (authz.Target, error) {
		owner, err := lookup(ctx, id)
		if err != nil {
			return authz.Target{}, err
		}
		return authz.Target{OwnerID: owner}, nil
	}
}

func ownerOfID[T any](lookup ownerLookup) authz.TargetResolver[withID[T]] {
	resolve := ownerOf(lookup)
	return func(ctx context.Context, req withID[T]) (authz.Target, error) {
		return resolve(ctx, req.ID)
	}
}

// GuardedInventoryService exposes inventory management behind the
// superadmin-or-owner policies. Ownership of rooms and room types is found
// by walking up to their property.
type GuardedInventoryService struct {
	createProperty authz.Operation[CreatePropertyRequest, *PropertyDTO]
	updateProperty authz.Operation[withID[UpdatePropertyRequest], *PropertyDTO]
	deleteProperty authz.Operation[uuid.UUID, struct{}]
	getProperty    authz.Operation[uuid.UUID, *PropertyDTO]
	listProperties authz.Operation[ListPropertiesQuery, *domain.PaginatedResult[PropertyDTO]]

	createRoomType authz.Operation[withID[CreateRoomTypeRequest], *RoomTypeDTO]
	updateRoomType authz.Operation[withID[UpdateRoomTypeRequest], *RoomTypeDTO]
	deleteRoomType authz.Operation[uuid.UUID, struct{}]
	listRoomTypes  authz.Operation[uuid.UUID, []RoomTypeDTO]

	createRoom       authz.Operation[withID[CreateRoomRequest], *RoomDTO]
	updateRoom       authz.Operation[withID[UpdateRoomRequest], *RoomDTO]
	retireRoom       authz.Operation[uuid.UUID, *RoomDTO]
	scheduleMaint    authz.Operation[withID[MaintenanceRequest], *RoomDTO]
	clearMaintenance authz.Operation[uuid.UUID, *RoomDTO]
	getRoom          authz.Operation[uuid.UUID, *RoomDTO]
	listRooms        authz.Operation[uuid.UUID, []RoomDTO]
}

// NewGuardedInventoryService wraps the inventory service.
func NewGuardedInventoryService(svc *InventoryService, walker *inventory.OwnershipWalker) *GuardedInventoryService {
	return &GuardedInventoryService{
		createProperty: authz.Authorize("create property", authz.CreatePropertyPolicy, nil,
			func(ctx context.Context, req CreatePropertyRequest) (*PropertyDTO, error) {
				caller, _ := authz.CallerFrom(ctx)
				if caller.Role == authz.RoleAccommodationOwner {
					req.OwnerID = caller.UserID
				}
				return svc.CreateProperty(ctx, req)
			}),
		updateProperty: authz.Authorize("update property", authz.MutatePropertyPolicy, ownerOfID[UpdatePropertyRequest](walker.PropertyOwner),
			func(ctx context.Context, req withID[UpdatePropertyRequest]) (*PropertyDTO, error) {
				caller, _ := authz.CallerFrom(ctx)
				if req.Body.OwnerID != nil && caller.Role != authz.RoleSuperadmin {
					return nil, domain.NewAccessDeniedError(string(caller.Role), "transfer property")
				}
				return svc.UpdateProperty(ctx, req.ID, req.Body)
			}),
		deleteProperty: authz.Authorize("delete property", authz.MutatePropertyPolicy, ownerOf(walker.PropertyOwner),
			func(ctx context.Context, id uuid.UUID) (struct{}, error) {
				return struct{}{}, svc.DeleteProperty(ctx, id)
			}),
		getProperty: authz.Authorize("read property", authz.ReadPropertyPolicy, nil, svc.GetProperty),
		listProperties: authz.Authorize("list properties", authz.ListPropertiesPolicy, nil,
			func(ctx context.Context, q ListPropertiesQuery) (*domain.PaginatedResult[PropertyDTO], error) {
				return svc.ListProperties(ctx, q.OwnerID, q.Page, q.Limit)
			}),

		createRoomType: authz.Authorize("create room type", authz.MutateRoomTypePolicy, ownerOfID[CreateRoomTypeRequest](walker.PropertyOwner),
			func(ctx context.Context, req withID[CreateRoomTypeRequest]) (*RoomTypeDTO, error) {
				return svc.CreateRoomType(ctx, req.ID, req.Body)
			}),
		updateRoomType: authz.Authorize("update room type", authz.MutateRoomTypePolicy, ownerOfID[UpdateRoomTypeRequest](walker.RoomTypeOwner),
			func(ctx context.Context, req withID[UpdateRoomTypeRequest]) (*RoomTypeDTO, error) {
				return svc.UpdateRoomType(ctx, req.ID, req.Body)
			}),
		deleteRoomType: authz.Authorize("delete room type", authz.MutateRoomTypePolicy, ownerOf(walker.RoomTypeOwner),
			func(ctx context.Context, id uuid.UUID) (struct{}, error) {
				return struct{}{}, svc.DeleteRoomType(ctx, id)
			}),
		listRoomTypes: authz.Authorize("list room types", authz.ReadPropertyPolicy, nil, svc.ListRoomTypes),

		createRoom: authz.Authorize("create room", authz.MutateRoomPolicy, ownerOfID[CreateRoomRequest](walker.RoomTypeOwner),
			func(ctx context.Context, req withID[CreateRoomRequest]) (*RoomDTO, error) {
				return svc.CreateRoom(ctx, req.ID, req.Body)
			}),
		updateRoom: authz.Authorize("update room", authz.MutateRoomPolicy, ownerOfID[UpdateRoomRequest](walker.RoomOwner),
			func(ctx context.Context, req withID[UpdateRoomRequest]) (*RoomDTO, error) {
				return svc.UpdateRoom(ctx, req.ID, req.Body)
			}),
		retireRoom: authz.Authorize("retire room", authz.MutateRoomPolicy, ownerOf(walker.RoomOwner), svc.RetireRoom),
		scheduleMaint: authz.Authorize("schedule maintenance", authz.MaintainRoomPolicy, ownerOfID[MaintenanceRequest](walker.RoomOwner),
			func(ctx context.Context, req withID[MaintenanceRequest]) (*RoomDTO, error) {
				return svc.ScheduleMaintenance(ctx, req.ID, req.Body)
			}),
		clearMaintenance: authz.Authorize("clear maintenance", authz.MaintainRoomPolicy, ownerOf(walker.RoomOwner), svc.ClearMaintenance),
		getRoom:          authz.Authorize("read room", authz.ReadPropertyPolicy, nil, svc.GetRoom),
		listRooms:        authz.Authorize("list rooms", authz.ReadPropertyPolicy, nil, svc.ListRooms),
	}
}

// CreateProperty creates a property. Accommodation owners always become the
// owner of what they create; superadmins may name any owner.
func (g *GuardedInventoryService) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*PropertyDTO, error) {
	return g.createProperty(ctx, req)
}

// UpdateProperty changes a property. Only superadmins may transfer ownership.
func (g *GuardedInventoryService) UpdateProperty(ctx context.Context, propertyID uuid.UUID, req UpdatePropertyRequest) (*PropertyDTO, error) {
	return g.updateProperty(ctx, withID[UpdatePropertyRequest]{ID: propertyID, Body: req})
}

// DeleteProperty deletes an empty property.
func (g *GuardedInventoryService) DeleteProperty(ctx context.Context, propertyID uuid.UUID) error {
	_, err := g.deleteProperty(ctx, propertyID)
	return err
}

// GetProperty retrieves a property.
func (g *GuardedInventoryService) GetProperty(ctx context.Context, propertyID uuid.UUID) (*PropertyDTO, error) {
	return g.getProperty(ctx, propertyID)
}

// ListProperties lists properties.
func (g *GuardedInventoryService) ListProperties(ctx context.Context, q ListPropertiesQuery) (*domain.PaginatedResult[PropertyDTO], error) {
	return g.listProperties(ctx, q)
}

// CreateRoomType adds a room type to a property.
func (g *GuardedInventoryService) CreateRoomType(ctx context.Context, propertyID uuid.UUID, req CreateRoomTypeRequest) (*RoomTypeDTO, error) {
	return g.createRoomType(ctx, withID[CreateRoomTypeRequest]{ID: propertyID, Body: req})
}

// UpdateRoomType changes a room type.
func (g *GuardedInventoryService) UpdateRoomType(ctx context.Context, roomTypeID uuid.UUID, req UpdateRoomTypeRequest) (*RoomTypeDTO, error) {
	return g.updateRoomType(ctx, withID[UpdateRoomTypeRequest]{ID: roomTypeID, Body: req})
}

// DeleteRoomType deletes a room type without rooms.
func (g *GuardedInventoryService) DeleteRoomType(ctx context.Context, roomTypeID uuid.UUID) error {
	_, err := g.deleteRoomType(ctx, roomTypeID)
	return err
}

// ListRoomTypes lists the room types of a property.
func (g *GuardedInventoryService) ListRoomTypes(ctx context.Context, propertyID uuid.UUID) ([]RoomTypeDTO, error) {
	return g.listRoomTypes(ctx, propertyID)
}

// CreateRoom adds a room to a room type.
func (g *GuardedInventoryService) CreateRoom(ctx context.Context, roomTypeID uuid.UUID, req CreateRoomRequest) (*RoomDTO, error) {
	return g.createRoom(ctx, withID[CreateRoomRequest]{ID: roomTypeID, Body: req})
}

// UpdateRoom changes a room.
func (g *GuardedInventoryService) UpdateRoom(ctx context.Context, roomID uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error) {
	return g.updateRoom(ctx, withID[UpdateRoomRequest]{ID: roomID, Body: req})
}

// RetireRoom retires a room.
func (g *GuardedInventoryService) RetireRoom(ctx context.Context, roomID uuid.UUID) (*RoomDTO, error) {
	return g.retireRoom(ctx, roomID)
}

// ScheduleMaintenance sets a room's maintenance window.
func (g *GuardedInventoryService) ScheduleMaintenance(ctx context.Context, roomID uuid.UUID, req MaintenanceRequest) (*RoomDTO, error) {
	return g.scheduleMaint(ctx, withID[MaintenanceRequest]{ID: roomID, Body: req})
}

// ClearMaintenance removes a room's maintenance window.
func (g *GuardedInventoryService) ClearMaintenance(ctx context.Context, roomID uuid.UUID) (*RoomDTO, error) {
	return g.clearMaintenance(ctx, roomID)
}

// GetRoom retrieves a room.
func (g *GuardedInventoryService) GetRoom(ctx context.Context, roomID uuid.UUID) (*RoomDTO, error) {
	return g.getRoom(ctx, roomID)
}

// ListRooms lists the rooms of a room type.
func (g *GuardedInventoryService) ListRooms(ctx context.Context, roomTypeID uuid.UUID) ([]RoomDTO, error) {
	return g.listRooms(ctx, roomTypeID)
}
