package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	bookingDomain "github.com/Kilat-Pet-Delivery/service-lodging/internal/domain/booking"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID                uuid.UUID                                          `gorm:"type:uuid;primaryKey"`
	BookingNumber     string                                             `gorm:"uniqueIndex;not null;size:20"`
	RoomID            uuid.UUID                                          `gorm:"type:uuid;index;not null"`
	CustomerID        uuid.UUID                                          `gorm:"type:uuid;index;not null"`
	Customer          datatypes.JSONType[bookingDomain.CustomerSnapshot] `gorm:"type:jsonb;not null"`
	CheckIn           time.Time                                          `gorm:"type:date;not null"`
	CheckOut          time.Time                                          `gorm:"type:date;not null"`
	TotalDays         int                                                `gorm:"not null"`
	NightlyRateCents  int64                                              `gorm:"not null"`
	TotalPriceCents   int64                                              `gorm:"not null"`
	Currency          string                                             `gorm:"not null;size:3;default:'MYR'"`
	Capacity          int                                                `gorm:"not null"`
	Breakfast         bool                                               `gorm:"not null;default:false"`
	Status            string                                             `gorm:"not null;size:30;index"`
	PaidAt            *time.Time                                         `gorm:""`
	CancelledAt       *time.Time                                         `gorm:""`
	RefundRequestedAt *time.Time                                         `gorm:""`
	CompletedAt       *time.Time                                         `gorm:""`
	Version           int64                                              `gorm:"not null;default:1"`
	CreatedAt         time.Time                                          `gorm:"not null"`
	UpdatedAt         time.Time                                          `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
// Calls made with a context from GormUnitOfWork run inside its transaction.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := dbFrom(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByNumber retrieves a booking by its booking number.
func (r *GormBookingRepository) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := dbFrom(ctx, r.db).Where("booking_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", number)
		}
		return nil, fmt.Errorf("failed to find booking by number: %w", err)
	}
	return toDomainBooking(&model)
}

// List retrieves bookings matching the filter, newest first.
func (r *GormBookingRepository) List(ctx context.Context, filter bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	matching := func(db *gorm.DB) *gorm.DB {
		if filter.CustomerID != nil {
			db = db.Where("customer_id = ?", *filter.CustomerID)
		}
		if filter.RoomID != nil {
			db = db.Where("room_id = ?", *filter.RoomID)
		}
		if filter.Status != nil {
			db = db.Where("status = ?", string(*filter.Status))
		}
		return db
	}

	var total int64
	if err := dbFrom(ctx, r.db).Model(&BookingModel{}).Scopes(matching).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := dbFrom(ctx, r.db).
		Scopes(matching).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// FindOverlapping returns bookings on roomID that hold the room and overlap stay.
func (r *GormBookingRepository) FindOverlapping(ctx context.Context, roomID uuid.UUID, stay domain.DateRange) ([]*bookingDomain.Booking, error) {
	return r.FindHoldingRooms(ctx, []uuid.UUID{roomID}, stay)
}

// FindHoldingRooms returns bookings on any of roomIDs that hold their room
// and overlap stay. A booking with cancelled_at set never holds its room. Ranges are half-open, so a stay ending on day X never
// overlaps one starting on day X.
func (r *GormBookingRepository) FindHoldingRooms(ctx context.Context, roomIDs []uuid.UUID, stay domain.DateRange) ([]*bookingDomain.Booking, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var models []BookingModel
	if err := dbFrom(ctx, r.db).
		Where("room_id IN ?", roomIDs).
		Where("status NOT IN ? AND cancelled_at IS NULL", excludedStatuses()).
		Where("check_in < ? AND check_out > ?", stay.End, stay.Start).
		Order("check_in ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}
	return toDomainBookings(models)
}

// FindDueForTransition returns bookings whose time-driven transition is due at now.
func (r *GormBookingRepository) FindDueForTransition(ctx context.Context, now time.Time, limit int) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := dbFrom(ctx, r.db).
		Where("(status = ? AND check_in <= ?) OR (status = ? AND check_out <= ?)",
			string(bookingDomain.StatusWaitingForPayment), now,
			string(bookingDomain.StatusPaymentConfirmed), now).
		Order("check_in ASC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find due bookings: %w", err)
	}
	return toDomainBookings(models)
}

// CountCompletedByRoom aggregates done bookings whose check-out falls in period.
func (r *GormBookingRepository) CountCompletedByRoom(ctx context.Context, period domain.DateRange) ([]bookingDomain.RoomCompletion, error) {
	type roomCount struct {
		RoomID       uuid.UUID
		Count        int64
		RevenueCents int64
	}
	var rows []roomCount
	if err := dbFrom(ctx, r.db).Model(&BookingModel{}).
		Select("room_id, count(*) AS count, COALESCE(SUM(total_price_cents), 0) AS revenue_cents").
		Where("status = ?", string(bookingDomain.StatusDone)).
		Where("check_out >= ? AND check_out < ?", period.Start, period.End).
		Group("room_id").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count completed bookings: %w", err)
	}

	out := make([]bookingDomain.RoomCompletion, len(rows))
	for i, row := range rows {
		out[i] = bookingDomain.RoomCompletion{RoomID: row.RoomID, Count: row.Count, RevenueCents: row.RevenueCents}
	}
	return out, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	if err := dbFrom(ctx, r.db).Create(toBookingModel(bk)).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	// IncrementVersion was called before Update, so the stored row is one behind.
	expectedVersion := bk.Version() - 1
	result := dbFrom(ctx, r.db).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"room_id":             model.RoomID,
			"check_in":            model.CheckIn,
			"check_out":           model.CheckOut,
			"total_days":          model.TotalDays,
			"nightly_rate_cents":  model.NightlyRateCents,
			"total_price_cents":   model.TotalPriceCents,
			"capacity":            model.Capacity,
			"status":              model.Status,
			"paid_at":             model.PaidAt,
			"cancelled_at":        model.CancelledAt,
			"refund_requested_at": model.RefundRequestedAt,
			"completed_at":        model.CompletedAt,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// --- Conversion Helpers ---

func excludedStatuses() []string {
	excluded := bookingDomain.ExcludedFromConflicts()
	out := make([]string, len(excluded))
	for i, s := range excluded {
		out[i] = string(s)
	}
	return out
}

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:                bk.ID(),
		BookingNumber:     bk.BookingNumber(),
		RoomID:            bk.RoomID(),
		CustomerID:        bk.CustomerID(),
		Customer:          datatypes.NewJSONType(bk.Customer()),
		CheckIn:           bk.CheckIn(),
		CheckOut:          bk.CheckOut(),
		TotalDays:         bk.TotalDays(),
		NightlyRateCents:  bk.NightlyRateCents(),
		TotalPriceCents:   bk.TotalPriceCents(),
		Currency:          bk.Currency(),
		Capacity:          bk.Capacity(),
		Breakfast:         bk.Breakfast(),
		Status:            string(bk.Status()),
		PaidAt:            bk.PaidAt(),
		CancelledAt:       bk.CancelledAt(),
		RefundRequestedAt: bk.RefundRequestedAt(),
		CompletedAt:       bk.CompletedAt(),
		Version:           bk.Version(),
		CreatedAt:         bk.CreatedAt(),
		UpdatedAt:         bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	stay := domain.DateRange{Start: domain.TruncateDay(m.CheckIn), End: domain.TruncateDay(m.CheckOut)}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.BookingNumber,
		m.RoomID,
		m.CustomerID,
		m.Customer.Data(),
		stay,
		m.TotalDays,
		m.NightlyRateCents,
		m.TotalPriceCents,
		m.Currency,
		m.Capacity,
		m.Breakfast,
		status,
		m.PaidAt,
		m.CancelledAt,
		m.RefundRequestedAt,
		m.CompletedAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
