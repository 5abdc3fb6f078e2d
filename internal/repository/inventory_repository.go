package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain/inventory"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyModel is the GORM model for the properties table.
type PropertyModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Address   string    `gorm:"type:varchar(500)"`
	City      string    `gorm:"type:varchar(100)"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (PropertyModel) TableName() string { return "properties" }

// RoomTypeModel is the GORM model for the room_types table.
type RoomTypeModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
	PriceCents int64     `gorm:"not null"`
	Capacity   int       `gorm:"not null"`
	Floor      int       `gorm:"not null;default:0"`
	Version    int64     `gorm:"not null;default:1"`
	CreatedAt  time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt  time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (RoomTypeModel) TableName() string { return "room_types" }

// RoomModel is the GORM model for the rooms table. Its rows are the lock
// targets of GormUnitOfWork.
type RoomModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoomTypeID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Number           string     `gorm:"type:varchar(20);not null"`
	Availability     string     `gorm:"type:varchar(20);not null;default:'available'"`
	Active           string     `gorm:"type:varchar(20);not null;default:'active'"`
	MaintenanceStart *time.Time `gorm:"type:date"`
	MaintenanceEnd   *time.Time `gorm:"type:date"`
	Version          int64      `gorm:"not null;default:1"`
	CreatedAt        time.Time  `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt        time.Time  `gorm:"type:timestamptz;not null;default:now()"`
}

func (RoomModel) TableName() string { return "rooms" }

// --- Properties ---

// GormPropertyRepository implements inventory.PropertyRepository using GORM.
type GormPropertyRepository struct {
	db *gorm.DB
}

func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Property, error) {
	var model PropertyModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("property", id.String())
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return toPropertyDomain(&model), nil
}

func (r *GormPropertyRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*inventory.Property, error) {
	var models []PropertyModel
	if err := dbFrom(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner properties: %w", err)
	}
	props := make([]*inventory.Property, len(models))
	for i := range models {
		props[i] = toPropertyDomain(&models[i])
	}
	return props, nil
}

func (r *GormPropertyRepository) ListAll(ctx context.Context, page, limit int) ([]*inventory.Property, int64, error) {
	var total int64
	if err := dbFrom(ctx, r.db).Model(&PropertyModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	var models []PropertyModel
	if err := dbFrom(ctx, r.db).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}
	props := make([]*inventory.Property, len(models))
	for i := range models {
		props[i] = toPropertyDomain(&models[i])
	}
	return props, total, nil
}

func (r *GormPropertyRepository) Save(ctx context.Context, p *inventory.Property) error {
	return dbFrom(ctx, r.db).Create(toPropertyModel(p)).Error
}

// Update writes the property if its stored version is one behind.
func (r *GormPropertyRepository) Update(ctx context.Context, p *inventory.Property) error {
	m := toPropertyModel(p)
	result := dbFrom(ctx, r.db).
		Model(&PropertyModel{}).
		Where("id = ? AND version = ?", m.ID, p.Version()-1).
		Updates(map[string]interface{}{
			"owner_id":   m.OwnerID,
			"name":       m.Name,
			"address":    m.Address,
			"city":       m.City,
			"version":    m.Version,
			"updated_at": m.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("property was modified by another transaction")
	}
	return nil
}

func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&PropertyModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("property", id.String())
	}
	return nil
}

// --- Room types ---

// GormRoomTypeRepository implements inventory.RoomTypeRepository using GORM.
type GormRoomTypeRepository struct {
	db *gorm.DB
}

func NewGormRoomTypeRepository(db *gorm.DB) *GormRoomTypeRepository {
	return &GormRoomTypeRepository{db: db}
}

func (r *GormRoomTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.RoomType, error) {
	var model RoomTypeModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("room type", id.String())
		}
		return nil, fmt.Errorf("failed to find room type: %w", err)
	}
	return toRoomTypeDomain(&model), nil
}

func (r *GormRoomTypeRepository) FindByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*inventory.RoomType, error) {
	var models []RoomTypeModel
	if err := dbFrom(ctx, r.db).
		Where("property_id = ?", propertyID).
		Order("floor ASC, name ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find room types: %w", err)
	}
	types := make([]*inventory.RoomType, len(models))
	for i := range models {
		types[i] = toRoomTypeDomain(&models[i])
	}
	return types, nil
}

func (r *GormRoomTypeRepository) Save(ctx context.Context, rt *inventory.RoomType) error {
	return dbFrom(ctx, r.db).Create(toRoomTypeModel(rt)).Error
}

func (r *GormRoomTypeRepository) Update(ctx context.Context, rt *inventory.RoomType) error {
	m := toRoomTypeModel(rt)
	result := dbFrom(ctx, r.db).
		Model(&RoomTypeModel{}).
		Where("id = ? AND version = ?", m.ID, rt.Version()-1).
		Updates(map[string]interface{}{
			"name":        m.Name,
			"price_cents": m.PriceCents,
			"capacity":    m.Capacity,
			"floor":       m.Floor,
			"version":     m.Version,
			"updated_at":  m.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update room type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("room type was modified by another transaction")
	}
	return nil
}

func (r *GormRoomTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&RoomTypeModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete room type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("room type", id.String())
	}
	return nil
}

// --- Rooms ---

// GormRoomRepository implements inventory.RoomRepository using GORM.
type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Room, error) {
	var model RoomModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("room", id.String())
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return toRoomDomain(&model), nil
}

func (r *GormRoomRepository) FindByRoomTypeID(ctx context.Context, roomTypeID uuid.UUID) ([]*inventory.Room, error) {
	var models []RoomModel
	if err := dbFrom(ctx, r.db).
		Where("room_type_id = ?", roomTypeID).
		Order("number ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	return toRoomsDomain(models), nil
}

func (r *GormRoomRepository) FindByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*inventory.Room, error) {
	var models []RoomModel
	if err := dbFrom(ctx, r.db).
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Where("room_types.property_id = ?", propertyID).
		Order("rooms.number ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find property rooms: %w", err)
	}
	return toRoomsDomain(models), nil
}

func (r *GormRoomRepository) Save(ctx context.Context, room *inventory.Room) error {
	return dbFrom(ctx, r.db).Create(toRoomModel(room)).Error
}

func (r *GormRoomRepository) Update(ctx context.Context, room *inventory.Room) error {
	m := toRoomModel(room)
	result := dbFrom(ctx, r.db).
		Model(&RoomModel{}).
		Where("id = ? AND version = ?", m.ID, room.Version()-1).
		Updates(map[string]interface{}{
			"number":            m.Number,
			"availability":      m.Availability,
			"active":            m.Active,
			"maintenance_start": m.MaintenanceStart,
			"maintenance_end":   m.MaintenanceEnd,
			"version":           m.Version,
			"updated_at":        m.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("room was modified by another transaction")
	}
	return nil
}

// --- Mappers ---

func toPropertyModel(p *inventory.Property) *PropertyModel {
	return &PropertyModel{
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

func toPropertyDomain(m *PropertyModel) *inventory.Property {
	return inventory.ReconstructProperty(m.ID, m.OwnerID, m.Name, m.Address, m.City, m.Version, m.CreatedAt, m.UpdatedAt)
}

func toRoomTypeModel(rt *inventory.RoomType) *RoomTypeModel {
	return &RoomTypeModel{
		ID:         rt.ID(),
		PropertyID: rt.PropertyID(),
		Name:       rt.Name(),
		PriceCents: rt.PriceCents(),
		Capacity:   rt.Capacity(),
		Floor:      rt.Floor(),
		Version:    rt.Version(),
		CreatedAt:  rt.CreatedAt(),
		UpdatedAt:  rt.UpdatedAt(),
	}
}

func toRoomTypeDomain(m *RoomTypeModel) *inventory.RoomType {
	return inventory.ReconstructRoomType(m.ID, m.PropertyID, m.Name, m.PriceCents, m.Capacity, m.Floor, m.Version, m.CreatedAt, m.UpdatedAt)
}

func toRoomModel(r *inventory.Room) *RoomModel {
	m := &RoomModel{
		ID:           r.ID(),
		RoomTypeID:   r.RoomTypeID(),
		Number:       r.Number(),
		Availability: string(r.Availability()),
		Active:       string(r.Active()),
		Version:      r.Version(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
	if w := r.Maintenance(); w != nil {
		start, end := w.Start, w.End
		m.MaintenanceStart, m.MaintenanceEnd = &start, &end
	}
	return m
}

func toRoomDomain(m *RoomModel) *inventory.Room {
	var window *domain.DateRange
	if m.MaintenanceStart != nil && m.MaintenanceEnd != nil {
		window = &domain.DateRange{
			Start: domain.TruncateDay(*m.MaintenanceStart),
			End:   domain.TruncateDay(*m.MaintenanceEnd),
		}
	}
	return inventory.ReconstructRoom(
		m.ID,
		m.RoomTypeID,
		m.Number,
		inventory.Availability(m.Availability),
		inventory.ActiveState(m.Active),
		window,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toRoomsDomain(models []RoomModel) []*inventory.Room {
	rooms := make([]*inventory.Room, len(models))
	for i := range models {
		rooms[i] = toRoomDomain(&models[i])
	}
	return rooms
}
