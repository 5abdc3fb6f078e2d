package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	bookingDomain "github.com/Kilat-Pet-Delivery/service-lodging/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain/inventory"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultSideEffectTimeout = 10 * time.Second
	defaultSweepBatch        = 500
	maxTransitionAttempts    = 3
)

// CustomerContactDTO is the contact data captured on a booking.
type CustomerContactDTO struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	RoomID    uuid.UUID
	CheckIn   time.Time
	CheckOut  time.Time
	Capacity  int
	Breakfast bool
	Customer  CustomerContactDTO
}

// UpdateBookingRequest changes the dates, room or guest count of an unpaid
// booking. Nil fields keep their current value.
type UpdateBookingRequest struct {
	BookingID uuid.UUID
	CheckIn   *time.Time
	CheckOut  *time.Time
	RoomID    *uuid.UUID
	Capacity  *int
}

// ListBookingsQuery filters a booking listing.
type ListBookingsQuery struct {
	CustomerID *uuid.UUID
	RoomID     *uuid.UUID
	Status     string
	Page       int
	Limit      int
}

// StatisticsQuery selects the month of a statistics report. OwnerID, when
// set, restricts the report to that owner's properties.
type StatisticsQuery struct {
	Month   int
	Year    int
	OwnerID *uuid.UUID
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID                uuid.UUID          `json:"id"`
	BookingNumber     string             `json:"booking_number"`
	RoomID            uuid.UUID          `json:"room_id"`
	CustomerID        uuid.UUID          `json:"customer_id"`
	Customer          CustomerContactDTO `json:"customer"`
	CheckIn           time.Time          `json:"check_in"`
	CheckOut          time.Time          `json:"check_out"`
	TotalDays         int                `json:"total_days"`
	NightlyRateCents  int64              `json:"nightly_rate_cents"`
	TotalPriceCents   int64              `json:"total_price_cents"`
	Currency          string             `json:"currency"`
	Capacity          int                `json:"capacity"`
	Breakfast         bool               `json:"breakfast"`
	Status            string             `json:"status"`
	PaidAt            *time.Time         `json:"paid_at,omitempty"`
	CancelledAt       *time.Time         `json:"cancelled_at,omitempty"`
	RefundRequestedAt *time.Time         `json:"refund_requested_at,omitempty"`
	CompletedAt       *time.Time         `json:"completed_at,omitempty"`
	Version           int64              `json:"version"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// PropertyStatisticsDTO is one property's line in a statistics report.
type PropertyStatisticsDTO struct {
	PropertyID     uuid.UUID `json:"property_id"`
	PropertyName   string    `json:"property_name"`
	TotalCompleted int64     `json:"total_completed"`
	RevenueCents   int64     `json:"revenue_cents"`
}

// BookingStatisticsDTO summarises completed bookings of one month.
type BookingStatisticsDTO struct {
	Month          int                     `json:"month"`
	Year           int                     `json:"year"`
	PeriodStart    time.Time               `json:"period_start"`
	PeriodEnd      time.Time               `json:"period_end"`
	TotalCompleted int64                   `json:"total_completed"`
	RevenueCents   int64                   `json:"revenue_cents"`
	ByProperty     []PropertyStatisticsDTO `json:"by_property"`
}

// SweepResult reports what one lifecycle sweep did.
type SweepResult struct {
	Examined  int `json:"examined"`
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// BookingServiceDeps groups the collaborators of BookingService.
type BookingServiceDeps struct {
	Bookings     bookingDomain.BookingRepository
	UnitOfWork   bookingDomain.UnitOfWork
	Rooms        inventory.RoomRepository
	RoomTypes    inventory.RoomTypeRepository
	Properties   inventory.PropertyRepository
	Availability *AvailabilityService
	Pricing      bookingDomain.PricingStrategy

	// Billing and Mailer are optional.
	Billing BillingNotifier
	Mailer  Mailer

	// SideEffectTimeout bounds each detached billing or mail call.
	SideEffectTimeout time.Duration
	SweepBatch        int
	// Now defaults to time.Now.
	Now func() time.Time
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings     bookingDomain.BookingRepository
	uow          bookingDomain.UnitOfWork
	rooms        inventory.RoomRepository
	roomTypes    inventory.RoomTypeRepository
	properties   inventory.PropertyRepository
	availability *AvailabilityService
	pricing      bookingDomain.PricingStrategy
	billing      BillingNotifier
	mailer       Mailer

	sideEffectTimeout time.Duration
	sweepBatch        int
	now               func() time.Time
	logger            *zap.Logger

	inflight sync.WaitGroup
}

// NewBookingService creates a new BookingService.
func NewBookingService(deps BookingServiceDeps, logger *zap.Logger) *BookingService {
	s := &BookingService{
		bookings:          deps.Bookings,
		uow:               deps.UnitOfWork,
		rooms:             deps.Rooms,
		roomTypes:         deps.RoomTypes,
		properties:        deps.Properties,
		availability:      deps.Availability,
		pricing:           deps.Pricing,
		billing:           deps.Billing,
		mailer:            deps.Mailer,
		sideEffectTimeout: deps.SideEffectTimeout,
		sweepBatch:        deps.SweepBatch,
		now:               deps.Now,
		logger:            logger,
	}
	if s.pricing == nil {
		s.pricing = bookingDomain.NewNightlyPricingStrategy()
	}
	if s.sideEffectTimeout <= 0 {
		s.sideEffectTimeout = defaultSideEffectTimeout
	}
	if s.sweepBatch <= 0 {
		s.sweepBatch = defaultSweepBatch
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// CreateBooking reserves a room for the customer. The availability check and
// the insert run in one transaction holding the room's lock.
//
// After the commit the billing service is notified on a detached goroutine.
// The caller never observes the outcome of that call: a slow or failing
// billing service neither delays nor rolls back the booking.
func (s *BookingService) CreateBooking(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	now := s.now().UTC()

	stay, err := domain.NewDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if !stay.Start.After(now) {
		return nil, domain.NewValidationError("check-in date must be in the future")
	}
	if req.Capacity <= 0 {
		return nil, domain.NewValidationError("capacity must be at least 1")
	}

	_, roomType, err := s.loadRoom(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	if !roomType.Fits(req.Capacity) {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"requested capacity %d exceeds room capacity %d", req.Capacity, roomType.Capacity()))
	}

	totalPrice, err := s.pricing.Calculate(bookingDomain.PricingParams{
		Nights:           stay.Nights(),
		NightlyRateCents: roomType.PriceCents(),
		Guests:           req.Capacity,
		Breakfast:        req.Breakfast,
	})
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}

	bk, err := bookingDomain.NewBooking(bookingDomain.NewBookingParams{
		RoomID:     req.RoomID,
		CustomerID: customerID,
		Customer: bookingDomain.CustomerSnapshot{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		Stay:             stay,
		Capacity:         req.Capacity,
		Breakfast:        req.Breakfast,
		NightlyRateCents: roomType.PriceCents(),
		TotalPriceCents:  totalPrice,
		Currency:         domain.CurrencyMYR,
		Now:              now,
	})
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinRoomLock(ctx, []uuid.UUID{req.RoomID}, func(txCtx context.Context) error {
		if err := s.availability.ensureAvailable(txCtx, req.RoomID, stay, uuid.Nil); err != nil {
			return err
		}
		if err := s.bookings.Save(txCtx, bk); err != nil {
			return fmt.Errorf("failed to save booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("booking_number", bk.BookingNumber()),
		zap.String("room_id", bk.RoomID().String()),
	)

	s.notifyBookingCreated(ctx, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// UpdateBooking changes the dates, room or guest count of a booking that is
// still waiting for payment, re-pricing it from the (possibly new) room type.
// The old and the new room are both locked while the change is checked and
// written.
func (s *BookingService) UpdateBooking(ctx context.Context, req UpdateBookingRequest) (*BookingDTO, error) {
	current, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if current.Status() != bookingDomain.StatusWaitingForPayment {
		return nil, domain.NewInvalidStateError(string(current.Status()), string(bookingDomain.StatusWaitingForPayment))
	}
	if !s.now().Before(current.CheckIn()) {
		return nil, &domain.Error{
			Kind:    domain.KindInvalidState,
			Message: "booking can no longer be changed: check-in date has passed",
			From:    string(current.Status()),
			To:      string(bookingDomain.StatusWaitingForPayment),
		}
	}

	checkIn, checkOut := current.CheckIn(), current.CheckOut()
	if req.CheckIn != nil {
		checkIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		checkOut = *req.CheckOut
	}
	stay, err := domain.NewDateRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if req.CheckIn != nil && !stay.Start.After(s.now()) {
		return nil, domain.NewValidationError("check-in date must be in the future")
	}

	roomID := current.RoomID()
	if req.RoomID != nil {
		roomID = *req.RoomID
	}
	capacity := current.Capacity()
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if capacity <= 0 {
		return nil, domain.NewValidationError("capacity must be at least 1")
	}

	_, roomType, err := s.loadRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !roomType.Fits(capacity) {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"requested capacity %d exceeds room capacity %d", capacity, roomType.Capacity()))
	}
	totalPrice, err := s.pricing.Calculate(bookingDomain.PricingParams{
		Nights:           stay.Nights(),
		NightlyRateCents: roomType.PriceCents(),
		Guests:           capacity,
		Breakfast:        current.Breakfast(),
	})
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}

	var updated *bookingDomain.Booking
	lockIDs := []uuid.UUID{current.RoomID()}
	if roomID != current.RoomID() {
		lockIDs = append(lockIDs, roomID)
	}
	err = s.uow.WithinRoomLock(ctx, lockIDs, func(txCtx context.Context) error {
		bk, err := s.bookings.FindByID(txCtx, req.BookingID)
		if err != nil {
			return err
		}
		if err := s.availability.ensureAvailable(txCtx, roomID, stay, bk.ID()); err != nil {
			return err
		}
		if err := bk.Reschedule(roomID, stay, capacity, roomType.PriceCents(), totalPrice, s.now()); err != nil {
			return err
		}
		bk.IncrementVersion()
		if err := s.bookings.Update(txCtx, bk); err != nil {
			return err
		}
		updated = bk
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := toBookingDTO(updated)
	return &result, nil
}

// PayBooking confirms payment of a booking. Paying a booking that is already
// confirmed succeeds without changing it; paying a cancelled, refunded or
// completed booking fails with InvalidState.
func (s *BookingService) PayBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, changed, err := s.transition(ctx, bookingID, s.now(), (*bookingDomain.Booking).Pay)
	if err != nil {
		return nil, err
	}
	if changed {
		s.logger.Info("booking paid", zap.String("booking_id", bk.ID().String()))
		s.sendConfirmation(ctx, bk)
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking cancels a booking before its check-in date. Cancelling an
// already-cancelled booking succeeds without changing it.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, changed, err := s.transition(ctx, bookingID, s.now(), (*bookingDomain.Booking).Cancel)
	if err != nil {
		return nil, err
	}
	if changed {
		s.logger.Info("booking cancelled", zap.String("booking_id", bk.ID().String()))
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// RefundBooking moves a paid booking to request_refund. Balance adjustments
// belong to the wallet service and are not performed here.
func (s *BookingService) RefundBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, changed, err := s.transition(ctx, bookingID, s.now(), (*bookingDomain.Booking).RequestRefund)
	if err != nil {
		return nil, err
	}
	if changed {
		s.logger.Info("booking refund requested", zap.String("booking_id", bk.ID().String()))
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookingByNumber retrieves a booking by its booking number.
func (s *BookingService) GetBookingByNumber(ctx context.Context, number string) (*BookingDTO, error) {
	bk, err := s.bookings.FindByNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// ListBookings retrieves a filtered, paginated list of bookings.
func (s *BookingService) ListBookings(ctx context.Context, q ListBookingsQuery) (*domain.PaginatedResult[BookingDTO], error) {
	filter := bookingDomain.ListFilter{CustomerID: q.CustomerID, RoomID: q.RoomID}
	if q.Status != "" {
		status, err := bookingDomain.ParseBookingStatus(q.Status)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		filter.Status = &status
	}
	page, limit := normalizePage(q.Page, q.Limit)

	bookings, total, err := s.bookings.List(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetBookingStatistics counts done bookings whose check-out falls in the
// requested month, grouped by property.
func (s *BookingService) GetBookingStatistics(ctx context.Context, q StatisticsQuery) (*BookingStatisticsDTO, error) {
	period, err := domain.MonthRange(q.Month, q.Year)
	if err != nil {
		return nil, err
	}

	completions, err := s.bookings.CountCompletedByRoom(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed bookings: %w", err)
	}

	roomTypeOf := make(map[uuid.UUID]*inventory.RoomType)
	propertyOf := make(map[uuid.UUID]*inventory.Property)
	byProperty := make(map[uuid.UUID]*PropertyStatisticsDTO)

	report := &BookingStatisticsDTO{
		Month:       q.Month,
		Year:        q.Year,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		ByProperty:  []PropertyStatisticsDTO{},
	}

	for _, c := range completions {
		room, err := s.rooms.FindByID(ctx, c.RoomID)
		if err != nil {
			s.logger.Warn("skipping completions of unknown room",
				zap.String("room_id", c.RoomID.String()), zap.Error(err))
			continue
		}
		rt, ok := roomTypeOf[room.RoomTypeID()]
		if !ok {
			if rt, err = s.roomTypes.FindByID(ctx, room.RoomTypeID()); err != nil {
				return nil, err
			}
			roomTypeOf[rt.ID()] = rt
		}
		prop, ok := propertyOf[rt.PropertyID()]
		if !ok {
			if prop, err = s.properties.FindByID(ctx, rt.PropertyID()); err != nil {
				return nil, err
			}
			propertyOf[prop.ID()] = prop
		}
		if q.OwnerID != nil && !prop.IsOwnedBy(*q.OwnerID) {
			continue
		}

		line, ok := byProperty[prop.ID()]
		if !ok {
			line = &PropertyStatisticsDTO{PropertyID: prop.ID(), PropertyName: prop.Name()}
			byProperty[prop.ID()] = line
		}
		line.TotalCompleted += c.Count
		line.RevenueCents += c.RevenueCents
		report.TotalCompleted += c.Count
		report.RevenueCents += c.RevenueCents
	}

	for _, line := range byProperty {
		report.ByProperty = append(report.ByProperty, *line)
	}
	sort.Slice(report.ByProperty, func(i, j int) bool {
		a, b := report.ByProperty[i], report.ByProperty[j]
		if a.TotalCompleted != b.TotalCompleted {
			return a.TotalCompleted > b.TotalCompleted
		}
		return a.PropertyName < b.PropertyName
	})
	return report, nil
}

// RunLifecycleSweep applies the time-driven transitions (auto-cancel of
// unpaid bookings at check-in, auto-complete of paid bookings at check-out)
// to every due booking. Running it again at the same instant changes nothing.
func (s *BookingService) RunLifecycleSweep(ctx context.Context) (SweepResult, error) {
	now := s.now()
	var result SweepResult

	due, err := s.bookings.FindDueForTransition(ctx, now, s.sweepBatch)
	if err != nil {
		return result, fmt.Errorf("failed to load due bookings: %w", err)
	}

	advance := func(b *bookingDomain.Booking, at time.Time) (bool, error) {
		_, changed := b.ApplyTimeTransition(at)
		return changed, nil
	}

	for _, candidate := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Examined++

		bk, changed, err := s.transition(ctx, candidate.ID(), now, advance)
		if err != nil {
			result.Failed++
			s.logger.Error("lifecycle transition failed",
				zap.String("booking_id", candidate.ID().String()),
				zap.Error(err),
			)
			continue
		}
		if !changed {
			continue
		}
		switch bk.Status() {
		case bookingDomain.StatusCancelled:
			result.Cancelled++
		case bookingDomain.StatusDone:
			result.Completed++
		}
	}

	if result.Examined > 0 {
		s.logger.Info("lifecycle sweep finished",
			zap.Int("examined", result.Examined),
			zap.Int("cancelled", result.Cancelled),
			zap.Int("completed", result.Completed),
			zap.Int("failed", result.Failed),
		)
	}
	return result, nil
}

// Drain waits for detached billing and mail calls to finish or for ctx to end.
func (s *BookingService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// --- Helpers ---

// transition loads the booking, applies fn and persists the result under
// optimistic locking. When another writer got there first the booking is
// reloaded and fn is applied to the fresh state, so the loser observes the
// status the winner wrote.
func (s *BookingService) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	now time.Time,
	fn func(*bookingDomain.Booking, time.Time) (bool, error),
) (*bookingDomain.Booking, bool, error) {
	for attempt := 1; ; attempt++ {
		bk, err := s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return nil, false, err
		}

		changed, err := fn(bk, now)
		if err != nil {
			return nil, false, err
		}
		if !changed {
			return bk, false, nil
		}

		bk.IncrementVersion()
		err = s.bookings.Update(ctx, bk)
		if err == nil {
			return bk, true, nil
		}
		if domain.KindOf(err) != domain.KindConflict || attempt >= maxTransitionAttempts {
			return nil, false, err
		}
		s.logger.Debug("booking modified concurrently, re-evaluating",
			zap.String("booking_id", bookingID.String()),
			zap.Int("attempt", attempt),
		)
	}
}

func (s *BookingService) loadRoom(ctx context.Context, roomID uuid.UUID) (*inventory.Room, *inventory.RoomType, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return nil, nil, err
	}
	roomType, err := s.roomTypes.FindByID(ctx, room.RoomTypeID())
	if err != nil {
		return nil, nil, err
	}
	return room, roomType, nil
}

// detach runs fn on its own goroutine with a bounded context that outlives
// the request.
func (s *BookingService) detach(ctx context.Context, fn func(ctx context.Context)) {
	base := context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("detached side effect panicked", zap.Any("panic", r))
			}
		}()
		callCtx, cancel := context.WithTimeout(base, s.sideEffectTimeout)
		defer cancel()
		fn(callCtx)
	}()
}

func (s *BookingService) notifyBookingCreated(ctx context.Context, bk *bookingDomain.Booking) {
	if s.billing == nil {
		return
	}
	notice := BillingNotice{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		CustomerID:    bk.CustomerID(),
		AmountCents:   bk.TotalPriceCents(),
		Currency:      bk.Currency(),
		Description: fmt.Sprintf("Booking %s: %d night(s) from %s",
			bk.BookingNumber(), bk.TotalDays(), bk.CheckIn().Format(time.DateOnly)),
		OccurredAt: bk.CreatedAt(),
	}
	s.detach(ctx, func(ctx context.Context) {
		if err := s.billing.NotifyBookingCreated(ctx, notice); err != nil {
			s.logger.Warn("billing notification failed",
				zap.String("booking_id", notice.BookingID.String()),
				zap.Error(err),
			)
		}
	})
}

func (s *BookingService) sendConfirmation(ctx context.Context, bk *bookingDomain.Booking) {
	if s.mailer == nil || bk.Customer().Email == "" {
		return
	}
	c := BookingConfirmation{
		BookingNumber:   bk.BookingNumber(),
		CustomerName:    bk.Customer().Name,
		CustomerEmail:   bk.Customer().Email,
		CheckIn:         bk.CheckIn(),
		CheckOut:        bk.CheckOut(),
		TotalDays:       bk.TotalDays(),
		TotalPriceCents: bk.TotalPriceCents(),
		Currency:        bk.Currency(),
		Breakfast:       bk.Breakfast(),
	}
	s.detach(ctx, func(ctx context.Context) {
		if err := s.mailer.SendBookingConfirmation(ctx, c); err != nil {
			s.logger.Warn("confirmation e-mail failed",
				zap.String("booking_number", c.BookingNumber),
				zap.Error(err),
			)
		}
	})
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	c := bk.Customer()
	return BookingDTO{
		ID:                bk.ID(),
		BookingNumber:     bk.BookingNumber(),
		RoomID:            bk.RoomID(),
		CustomerID:        bk.CustomerID(),
		Customer:          CustomerContactDTO{Name: c.Name, Email: c.Email, Phone: c.Phone},
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
