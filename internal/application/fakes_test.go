package application

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	bookingDomain "github.com/Kilat-Pet-Delivery/service-lodging/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// --- clock ---

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{t: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// --- bookings ---

// memBookings stores copies of bookings and enforces the same version check
// as the GORM repository.
type memBookings struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*bookingDomain.Booking
}

func newMemBookings() *memBookings {
	return &memBookings{rows: map[uuid.UUID]*bookingDomain.Booking{}}
}

func cloneBooking(b *bookingDomain.Booking) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(
		b.ID(), b.BookingNumber(), b.RoomID(), b.CustomerID(), b.Customer(), b.Stay(),
		b.TotalDays(), b.NightlyRateCents(), b.TotalPriceCents(), b.Currency(),
		b.Capacity(), b.Breakfast(), b.Status(),
		b.PaidAt(), b.CancelledAt(), b.RefundRequestedAt(), b.CompletedAt(),
		b.Version(), b.CreatedAt(), b.UpdatedAt(),
	)
}

func (m *memBookings) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	return cloneBooking(b), nil
}

func (m *memBookings) FindByNumber(_ context.Context, number string) (*bookingDomain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.BookingNumber() == number {
			return cloneBooking(b), nil
		}
	}
	return nil, domain.NewNotFoundError("booking", number)
}

func (m *memBookings) List(_ context.Context, f bookingDomain.ListFilter, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var out []*bookingDomain.Booking
	for _, b := range m.all() {
		if f.CustomerID != nil && b.CustomerID() != *f.CustomerID {
			continue
		}
		if f.RoomID != nil && b.RoomID() != *f.RoomID {
			continue
		}
		if f.Status != nil && b.Status() != *f.Status {
			continue
		}
		out = append(out, b)
	}
	total := int64(len(out))
	return pageOf(out, page, limit), total, nil
}

func (m *memBookings) FindOverlapping(ctx context.Context, roomID uuid.UUID, stay domain.DateRange) ([]*bookingDomain.Booking, error) {
	return m.FindHoldingRooms(ctx, []uuid.UUID{roomID}, stay)
}

func (m *memBookings) FindHoldingRooms(_ context.Context, roomIDs []uuid.UUID, stay domain.DateRange) ([]*bookingDomain.Booking, error) {
	var out []*bookingDomain.Booking
	for _, b := range m.all() {
		if slices.Contains(roomIDs, b.RoomID()) && b.HoldsRoom() && b.Stay().Overlaps(stay) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) FindDueForTransition(_ context.Context, now time.Time, limit int) ([]*bookingDomain.Booking, error) {
	var out []*bookingDomain.Booking
	for _, b := range m.all() {
		if _, due := bookingDomain.NextStatus(b.Status(), b.CheckIn(), b.CheckOut(), now); due {
			out = append(out, b)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memBookings) CountCompletedByRoom(_ context.Context, period domain.DateRange) ([]bookingDomain.RoomCompletion, error) {
	byRoom := map[uuid.UUID]*bookingDomain.RoomCompletion{}
	for _, b := range m.all() {
		if b.Status() != bookingDomain.StatusDone || !period.Contains(b.CheckOut()) {
			continue
		}
		c, ok := byRoom[b.RoomID()]
		if !ok {
			c = &bookingDomain.RoomCompletion{RoomID: b.RoomID()}
			byRoom[b.RoomID()] = c
		}
		c.Count++
		c.RevenueCents += b.TotalPriceCents()
	}
	out := make([]bookingDomain.RoomCompletion, 0, len(byRoom))
	for _, c := range byRoom {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memBookings) Save(_ context.Context, b *bookingDomain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[b.ID()] = cloneBooking(b)
	return nil
}

func (m *memBookings) Update(_ context.Context, b *bookingDomain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.rows[b.ID()]
	if !ok {
		return domain.NewNotFoundError("booking", b.ID().String())
	}
	if stored.Version() != b.Version()-1 {
		return domain.NewConflictError("booking was modified by another request")
	}
	m.rows[b.ID()] = cloneBooking(b)
	return nil
}

// all returns copies ordered by creation time.
func (m *memBookings) all() []*bookingDomain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*bookingDomain.Booking, 0, len(m.rows))
	for _, b := range m.rows {
		out = append(out, cloneBooking(b))
	}
	slices.SortFunc(out, func(a, b *bookingDomain.Booking) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		ai, bi := a.ID(), b.ID()
		return bytes.Compare(ai[:], bi[:])
	})
	return out
}

// lockingUnitOfWork serialises work on the same rooms with per-room mutexes
// taken in sorted order.
type lockingUnitOfWork struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newLockingUnitOfWork() *lockingUnitOfWork {
	return &lockingUnitOfWork{locks: map[uuid.UUID]*sync.Mutex{}}
}

func (u *lockingUnitOfWork) WithinRoomLock(ctx context.Context, roomIDs []uuid.UUID, fn func(ctx context.Context) error) error {
	ids := slices.Clone(roomIDs)
	sortIDs(ids)
	ids = slices.Compact(ids)

	u.mu.Lock()
	held := make([]*sync.Mutex, len(ids))
	for i, id := range ids {
		l, ok := u.locks[id]
		if !ok {
			l = &sync.Mutex{}
			u.locks[id] = l
		}
		held[i] = l
	}
	u.mu.Unlock()

	for _, l := range held {
		l.Lock()
	}
	defer func() {
		for _, l := range held {
			l.Unlock()
		}
	}()
	return fn(ctx)
}

// --- inventory ---

type memInventory struct {
	mu         sync.Mutex
	properties map[uuid.UUID]*inventory.Property
	roomTypes  map[uuid.UUID]*inventory.RoomType
	rooms      map[uuid.UUID]*inventory.Room
}

func newMemInventory() *memInventory {
	return &memInventory{
		properties: map[uuid.UUID]*inventory.Property{},
		roomTypes:  map[uuid.UUID]*inventory.RoomType{},
		rooms:      map[uuid.UUID]*inventory.Room{},
	}
}

type memPropertyRepo struct{ *memInventory }
type memRoomTypeRepo struct{ *memInventory }
type memRoomRepo struct{ *memInventory }

func (m memPropertyRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.properties[id]
	if !ok {
		return nil, domain.NewNotFoundError("property", id.String())
	}
	return p, nil
}

func (m memPropertyRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*inventory.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*inventory.Property
	for _, p := range m.properties {
		if p.IsOwnedBy(ownerID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m memPropertyRepo) ListAll(_ context.Context, page, limit int) ([]*inventory.Property, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*inventory.Property
	for _, p := range m.properties {
		out = append(out, p)
	}
	return pageOf(out, page, limit), int64(len(out)), nil
}

func (m memPropertyRepo) Save(_ context.Context, p *inventory.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.properties[p.ID()] = p
	return nil
}

func (m memPropertyRepo) Update(_ context.Context, p *inventory.Property) error {
	return m.Save(context.Background(), p)
}

func (m memPropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.properties, id)
	return nil
}

func (m memRoomTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.RoomType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.roomTypes[id]
	if !ok {
		return nil, domain.NewNotFoundError("room type", id.String())
	}
	return rt, nil
}

func (m memRoomTypeRepo) FindByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*inventory.RoomType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*inventory.RoomType
	for _, rt := range m.roomTypes {
		if rt.PropertyID() == propertyID {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (m memRoomTypeRepo) Save(_ context.Context, rt *inventory.RoomType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roomTypes[rt.ID()] = rt
	return nil
}

func (m memRoomTypeRepo) Update(_ context.Context, rt *inventory.RoomType) error {
	return m.Save(context.Background(), rt)
}

func (m memRoomTypeRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.roomTypes, id)
	return nil
}

func (m memRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.NewNotFoundError("room", id.String())
	}
	return r, nil
}

func (m memRoomRepo) FindByRoomTypeID(_ context.Context, roomTypeID uuid.UUID) ([]*inventory.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*inventory.Room
	for _, r := range m.rooms {
		if r.RoomTypeID() == roomTypeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m memRoomRepo) FindByPropertyID(_ context.Context, propertyID uuid.UUID) ([]*inventory.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*inventory.Room
	for _, r := range m.rooms {
		if rt, ok := m.roomTypes[r.RoomTypeID()]; ok && rt.PropertyID() == propertyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m memRoomRepo) Save(_ context.Context, r *inventory.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.ID()] = r
	return nil
}

func (m memRoomRepo) Update(_ context.Context, r *inventory.Room) error {
	return m.Save(context.Background(), r)
}

// --- side effects ---

// blockingBilling holds every notification until release is closed.
type blockingBilling struct {
	release chan struct{}
	calls   atomic.Int32
	done    chan BillingNotice
}

func newBlockingBilling() *blockingBilling {
	return &blockingBilling{release: make(chan struct{}), done: make(chan BillingNotice, 16)}
}

func (b *blockingBilling) NotifyBookingCreated(ctx context.Context, n BillingNotice) error {
	b.calls.Add(1)
	select {
	case <-b.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	b.done <- n
	return nil
}

type failingBilling struct{ calls atomic.Int32 }

func (f *failingBilling) NotifyBookingCreated(context.Context, BillingNotice) error {
	f.calls.Add(1)
	return errors.New("ledger unreachable")
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []BookingConfirmation
}

func (r *recordingMailer) SendBookingConfirmation(_ context.Context, c BookingConfirmation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, c)
	return nil
}

func (r *recordingMailer) Sent() []BookingConfirmation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.sent)
}

// --- fixture ---

type fixture struct {
	clock        *testClock
	bookings     *memBookings
	inv          *memInventory
	availability *AvailabilityService
	service      *BookingService
	inventory    *InventoryService
	mailer       *recordingMailer
}

type fixtureOption func(*BookingServiceDeps)

func withBilling(b BillingNotifier) fixtureOption {
	return func(d *BookingServiceDeps) { d.Billing = b }
}

func newFixture(t *testing.T, now time.Time, opts ...fixtureOption) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)

	f := &fixture{
		clock:    newTestClock(now),
		bookings: newMemBookings(),
		inv:      newMemInventory(),
		mailer:   &recordingMailer{},
	}
	properties := memPropertyRepo{f.inv}
	roomTypes := memRoomTypeRepo{f.inv}
	rooms := memRoomRepo{f.inv}

	f.availability = NewAvailabilityService(f.bookings, rooms, properties, logger)
	deps := BookingServiceDeps{
		Bookings:          f.bookings,
		UnitOfWork:        newLockingUnitOfWork(),
		Rooms:             rooms,
		RoomTypes:         roomTypes,
		Properties:        properties,
		Availability:      f.availability,
		Mailer:            f.mailer,
		SideEffectTimeout: 2 * time.Second,
		Now:               f.clock.Now,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	f.service = NewBookingService(deps, logger)
	f.inventory = NewInventoryService(properties, roomTypes, rooms, logger)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = f.service.Drain(ctx)
	})
	return f
}

// seedRoom creates a property owned by ownerID with one room type and one room.
func (f *fixture) seedRoom(t *testing.T, ownerID uuid.UUID, priceCents int64, capacity int) (propertyID, roomID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	prop, err := f.inventory.CreateProperty(ctx, CreatePropertyRequest{OwnerID: ownerID, Name: "Hotel " + ownerID.String()[:4]})
	require.NoError(t, err)
	rt, err := f.inventory.CreateRoomType(ctx, prop.ID, CreateRoomTypeRequest{Name: "Standard", PriceCents: priceCents, Capacity: capacity})
	require.NoError(t, err)
	room, err := f.inventory.CreateRoom(ctx, rt.ID, CreateRoomRequest{Number: "101"})
	require.NoError(t, err)
	return prop.ID, room.ID
}

// addRoom adds another room of the first room type of propertyID.
func (f *fixture) addRoom(t *testing.T, propertyID uuid.UUID, number string) uuid.UUID {
	t.Helper()
	types, err := f.inventory.ListRoomTypes(context.Background(), propertyID)
	require.NoError(t, err)
	require.NotEmpty(t, types)
	room, err := f.inventory.CreateRoom(context.Background(), types[0].ID, CreateRoomRequest{Number: number})
	require.NoError(t, err)
	return room.ID
}

func (f *fixture) book(t *testing.T, roomID uuid.UUID, checkIn, checkOut time.Time) *BookingDTO {
	t.Helper()
	dto, err := f.service.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Capacity: 1,
		Customer: CustomerContactDTO{Name: "Aisyah", Email: "aisyah@example.com"},
	})
	require.NoError(t, err)
	return dto
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
