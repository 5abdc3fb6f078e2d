package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain/inventory"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePropertyRequest holds the data needed to create a property.
type CreatePropertyRequest struct {
	OwnerID uuid.UUID `json:"owner_id"`
	Name    string    `json:"name" binding:"required,max=200"`
	Address string    `json:"address" binding:"max=500"`
	City    string    `json:"city" binding:"max=100"`
}

// UpdatePropertyRequest holds partial property changes. OwnerID transfers
// the property to another owner.
type UpdatePropertyRequest struct {
	Name    string     `json:"name" binding:"max=200"`
	Address string     `json:"address" binding:"max=500"`
	City    string     `json:"city" binding:"max=100"`
	OwnerID *uuid.UUID `json:"owner_id"`
}

// CreateRoomTypeRequest holds the data needed to create a room type.
type CreateRoomTypeRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	PriceCents int64  `json:"price_cents" binding:"required,gt=0"`
	Capacity   int    `json:"capacity" binding:"required,gt=0"`
	Floor      int    `json:"floor"`
}

// UpdateRoomTypeRequest holds partial room type changes.
type UpdateRoomTypeRequest struct {
	Name       string `json:"name" binding:"max=100"`
	PriceCents int64  `json:"price_cents" binding:"gte=0"`
	Capacity   int    `json:"capacity" binding:"gte=0"`
	Floor      *int   `json:"floor"`
}

// CreateRoomRequest holds the data needed to create a room.
type CreateRoomRequest struct {
	Number string `json:"number" binding:"required,max=20"`
}

// UpdateRoomRequest holds partial room changes.
type UpdateRoomRequest struct {
	Number       *string `json:"number" binding:"omitempty,max=20"`
	Availability *string `json:"availability" binding:"omitempty,oneof=available unavailable"`
}

// MaintenanceRequest sets a room's maintenance window [Start, End).
type MaintenanceRequest struct {
	Start time.Time
	End   time.Time
}

// PropertyDTO is the response representation of a property.
type PropertyDTO struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoomTypeDTO is the response representation of a room type.
type RoomTypeDTO struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Capacity   int       `json:"capacity"`
	Floor      int       `json:"floor"`
	Version    int64     `json:"version"`
}

// MaintenanceDTO is a maintenance window.
type MaintenanceDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RoomDTO is the response representation of a room.
type RoomDTO struct {
	ID           uuid.UUID       `json:"id"`
	RoomTypeID   uuid.UUID       `json:"room_type_id"`
	Number       string          `json:"number"`
	Availability string          `json:"availability"`
	Active       string          `json:"active"`
	Maintenance  *MaintenanceDTO `json:"maintenance,omitempty"`
	Version      int64           `json:"version"`
}

// InventoryService manages properties, room types and rooms.
type InventoryService struct {
	properties inventory.PropertyRepository
	roomTypes  inventory.RoomTypeRepository
	rooms      inventory.RoomRepository
	logger     *zap.Logger
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(
	properties inventory.PropertyRepository,
	roomTypes inventory.RoomTypeRepository,
	rooms inventory.RoomRepository,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		properties: properties,
		roomTypes:  roomTypes,
		rooms:      rooms,
		logger:     logger,
	}
}

// --- Properties ---

// CreateProperty creates a property owned by req.OwnerID.
func (s *InventoryService) CreateProperty(ctx context.Context, req CreatePropertyRequest) (*PropertyDTO, error) {
	p, err := inventory.NewProperty(req.OwnerID, req.Name, req.Address, req.City)
	if err != nil {
		return nil, err
	}
	if err := s.properties.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save property: %w", err)
	}
	s.logger.Info("property created",
		zap.String("property_id", p.ID().String()),
		zap.String("owner_id", p.OwnerID().String()),
	)
	result := toPropertyDTO(p)
	return &result, nil
}

// UpdateProperty applies partial changes to a property.
func (s *InventoryService) UpdateProperty(ctx context.Context, propertyID uuid.UUID, req UpdatePropertyRequest) (*PropertyDTO, error) {
	p, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != nil && *req.OwnerID != p.OwnerID() {
		if err := p.TransferTo(*req.OwnerID); err != nil {
			return nil, err
		}
	}
	p.Update(req.Name, req.Address, req.City)

	p.IncrementVersion()
	if err := s.properties.Update(ctx, p); err != nil {
		return nil, err
	}
	result := toPropertyDTO(p)
	return &result, nil
}

// DeleteProperty removes a property that has no room types.
func (s *InventoryService) DeleteProperty(ctx context.Context, propertyID uuid.UUID) error {
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return err
	}
	types, err := s.roomTypes.FindByPropertyID(ctx, propertyID)
	if err != nil {
		return fmt.Errorf("failed to load room types: %w", err)
	}
	if len(types) > 0 {
		return domain.NewConflictError("property still has room types")
	}
	return s.properties.Delete(ctx, propertyID)
}

// GetProperty retrieves a property by ID.
func (s *InventoryService) GetProperty(ctx context.Context, propertyID uuid.UUID) (*PropertyDTO, error) {
	p, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	result := toPropertyDTO(p)
	return &result, nil
}

// ListProperties lists all properties, or only ownerID's when set.
func (s *InventoryService) ListProperties(ctx context.Context, ownerID *uuid.UUID, page, limit int) (*domain.PaginatedResult[PropertyDTO], error) {
	page, limit = normalizePage(page, limit)

	var (
		props []*inventory.Property
		total int64
		err   error
	)
	if ownerID != nil {
		props, err = s.properties.FindByOwnerID(ctx, *ownerID)
		total = int64(len(props))
		props = pageOf(props, page, limit)
	} else {
		props, total, err = s.properties.ListAll(ctx, page, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	dtos := make([]PropertyDTO, len(props))
	for i, p := range props {
		dtos[i] = toPropertyDTO(p)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// --- Room types ---

// CreateRoomType adds a room type to a property.
func (s *InventoryService) CreateRoomType(ctx context.Context, propertyID uuid.UUID, req CreateRoomTypeRequest) (*RoomTypeDTO, error) {
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return nil, err
	}
	rt, err := inventory.NewRoomType(propertyID, req.Name, req.PriceCents, req.Capacity, req.Floor)
	if err != nil {
		return nil, err
	}
	if err := s.roomTypes.Save(ctx, rt); err != nil {
		return nil, fmt.Errorf("failed to save room type: %w", err)
	}
	result := toRoomTypeDTO(rt)
	return &result, nil
}

// UpdateRoomType applies partial changes. Existing bookings keep the price
// they were created with.
func (s *InventoryService) UpdateRoomType(ctx context.Context, roomTypeID uuid.UUID, req UpdateRoomTypeRequest) (*RoomTypeDTO, error) {
	rt, err := s.roomTypes.FindByID(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}
	if err := rt.Update(req.Name, req.PriceCents, req.Capacity, req.Floor); err != nil {
		return nil, err
	}

	rt.IncrementVersion()
	if err := s.roomTypes.Update(ctx, rt); err != nil {
		return nil, err
	}
	result := toRoomTypeDTO(rt)
	return &result, nil
}

// DeleteRoomType removes a room type that has no rooms.
func (s *InventoryService) DeleteRoomType(ctx context.Context, roomTypeID uuid.UUID) error {
	if _, err := s.roomTypes.FindByID(ctx, roomTypeID); err != nil {
		return err
	}
	rooms, err := s.rooms.FindByRoomTypeID(ctx, roomTypeID)
	if err != nil {
		return fmt.Errorf("failed to load rooms: %w", err)
	}
	if len(rooms) > 0 {
		return domain.NewConflictError("room type still has rooms")
	}
	return s.roomTypes.Delete(ctx, roomTypeID)
}

// ListRoomTypes lists the room types of a property.
func (s *InventoryService) ListRoomTypes(ctx context.Context, propertyID uuid.UUID) ([]RoomTypeDTO, error) {
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		return nil, err
	}
	types, err := s.roomTypes.FindByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	dtos := make([]RoomTypeDTO, len(types))
	for i, rt := range types {
		dtos[i] = toRoomTypeDTO(rt)
	}
	return dtos, nil
}

// --- Rooms ---

// CreateRoom adds a room to a room type.
func (s *InventoryService) CreateRoom(ctx context.Context, roomTypeID uuid.UUID, req CreateRoomRequest) (*RoomDTO, error) {
	if _, err := s.roomTypes.FindByID(ctx, roomTypeID); err != nil {
		return nil, err
	}
	room, err := inventory.NewRoom(roomTypeID, req.Number)
	if err != nil {
		return nil, err
	}
	if err := s.rooms.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to save room: %w", err)
	}
	result := toRoomDTO(room)
	return &result, nil
}

// UpdateRoom renumbers a room or toggles its availability flag.
func (s *InventoryService) UpdateRoom(ctx context.Context, roomID uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error) {
	return s.mutateRoom(ctx, roomID, func(room *inventory.Room) (bool, error) {
		if req.Number != nil {
			if err := room.Renumber(*req.Number); err != nil {
				return false, err
			}
		}
		if req.Availability != nil {
			if err := room.SetAvailability(inventory.Availability(*req.Availability)); err != nil {
				return false, err
			}
		}
		return req.Number != nil || req.Availability != nil, nil
	})
}

// RetireRoom removes a room from the bookable inventory. Rooms are never
// physically deleted because bookings keep referring to them.
func (s *InventoryService) RetireRoom(ctx context.Context, roomID uuid.UUID) (*RoomDTO, error) {
	return s.mutateRoom(ctx, roomID, func(room *inventory.Room) (bool, error) {
		return room.Retire(), nil
	})
}

// ScheduleMaintenance sets the room's maintenance window. New bookings that
// overlap it are rejected; existing bookings are left untouched.
func (s *InventoryService) ScheduleMaintenance(ctx context.Context, roomID uuid.UUID, req MaintenanceRequest) (*RoomDTO, error) {
	window, err := domain.NewDateRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	return s.mutateRoom(ctx, roomID, func(room *inventory.Room) (bool, error) {
		return true, room.ScheduleMaintenance(window)
	})
}

// ClearMaintenance removes the room's maintenance window.
func (s *InventoryService) ClearMaintenance(ctx context.Context, roomID uuid.UUID) (*RoomDTO, error) {
	return s.mutateRoom(ctx, roomID, func(room *inventory.Room) (bool, error) {
		if room.Maintenance() == nil {
			return false, nil
		}
		room.ClearMaintenance()
		return true, nil
	})
}

// GetRoom retrieves a room by ID.
func (s *InventoryService) GetRoom(ctx context.Context, roomID uuid.UUID) (*RoomDTO, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	result := toRoomDTO(room)
	return &result, nil
}

// ListRooms lists the rooms of a room type.
func (s *InventoryService) ListRooms(ctx context.Context, roomTypeID uuid.UUID) ([]RoomDTO, error) {
	if _, err := s.roomTypes.FindByID(ctx, roomTypeID); err != nil {
		return nil, err
	}
	rooms, err := s.rooms.FindByRoomTypeID(ctx, roomTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	dtos := make([]RoomDTO, len(rooms))
	for i, r := range rooms {
		dtos[i] = toRoomDTO(r)
	}
	return dtos, nil
}

// mutateRoom applies fn and persists the room when fn reports a change.
func (s *InventoryService) mutateRoom(ctx context.Context, roomID uuid.UUID, fn func(*inventory.Room) (bool, error)) (*RoomDTO, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	changed, err := fn(room)
	if err != nil {
		return nil, err
	}
	if changed {
		room.IncrementVersion()
		if err := s.rooms.Update(ctx, room); err != nil {
			return nil, err
		}
	}
	result := toRoomDTO(room)
	return &result, nil
}

// --- Helpers ---

func pageOf[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func toPropertyDTO(p *inventory.Property) PropertyDTO {
	return PropertyDTO{
		ID:        p.ID(),
		OwnerID:   p.OwnerID(),
		Name:      p.Name(),
		Address:   p.Address(),
		City:      p.City(),
		Version:   p.Version(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func toRoomTypeDTO(rt *inventory.RoomType) RoomTypeDTO {
	return RoomTypeDTO{
		ID:         rt.ID(),
		PropertyID: rt.PropertyID(),
		Name:       rt.Name(),
		PriceCents: rt.PriceCents(),
		Capacity:   rt.Capacity(),
		Floor:      rt.Floor(),
		Version:    rt.Version(),
	}
}

func toRoomDTO(r *inventory.Room) RoomDTO {
	dto := RoomDTO{
		ID:           r.ID(),
		RoomTypeID:   r.RoomTypeID(),
		Number:       r.Number(),
		Availability: string(r.Availability()),
		Active:       string(r.Active()),
		Version:      r.Version(),
	}
	if m := r.Maintenance(); m != nil {
		dto.Maintenance = &MaintenanceDTO{Start: m.Start, End: m.End}
	}
	return dto
}
