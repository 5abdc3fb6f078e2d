//go:build integration

package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	lodgingEvents "github.com/Kilat-Pet-Delivery/service-lodging/internal/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var integrationStart = time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)

func day(d int) time.Time {
	return time.Date(2030, 6, d, 0, 0, 0, 0, time.UTC)
}

func bookingRequest(roomID uuid.UUID, in, out time.Time) application.CreateBookingRequest {
	return application.CreateBookingRequest{
		RoomID:   roomID,
		CheckIn:  in,
		CheckOut: out,
		Capacity: 2,
		Customer: application.CustomerContactDTO{Name: "Aisyah", Email: "aisyah@example.com"},
	}
}

// TestCreateBooking_PublishesBillingAndConfirmsOnPayment follows a booking
// from creation through billing notification to the payment event that
// confirms it.
func TestCreateBooking_PublishesBillingAndConfirmsOnPayment(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupLodgingStack(t, infra.DB, infra.KafkaBrokers, integrationStart)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	roomID := seedRoom(t, stack, 25000)
	booking, err := stack.Bookings.CreateBooking(context.Background(), uuid.New(), bookingRequest(roomID, day(10), day(13)))
	require.NoError(t, err)
	assert.Equal(t, "waiting_for_payment", booking.Status)
	assert.Equal(t, int64(75000), booking.TotalPriceCents)

	// Assert: booking.created on billing.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, billingTopic, lodgingEvents.BookingCreated, booking.ID.String(), 15*time.Second)
	var created lodgingEvents.BookingCreatedEvent
	require.NoError(t, ce.ParseData(&created))
	assert.Equal(t, booking.ID, created.BookingID)
	assert.Equal(t, int64(75000), created.Amount)
	assert.Equal(t, "MYR", created.Currency)

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	publishTestEvent(t, infra.KafkaBrokers, paymentTopic, "service-payment", lodgingEvents.PaymentCaptured,
		lodgingEvents.PaymentCapturedEvent{BookingID: booking.ID, PaymentID: uuid.New(), Amount: 75000, Currency: "MYR"})

	model := waitForBookingStatus(t, infra.DB, booking.ID, "payment_confirmed", 15*time.Second)
	assert.NotNil(t, model.PaidAt)
	assert.Equal(t, int64(2), model.Version)
}

// TestCreateBooking_SerializesPerRoom races overlapping creates on one room
// against real row locks: exactly one wins.
func TestCreateBooking_SerializesPerRoom(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupLodgingStack(t, infra.DB, infra.KafkaBrokers, integrationStart)
	defer stack.CleanupProducer()

	roomID := seedRoom(t, stack, 10000)
	otherRoomID := seedRoom(t, stack, 10000)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Every stay overlaps 2030-06-11.
			in := day(10 + i%2)
			_, err := stack.Bookings.CreateBooking(context.Background(), uuid.New(), bookingRequest(roomID, in, day(12)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case domain.KindOf(err) == domain.KindConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, conflicts)

	// A different room is unaffected, and a back-to-back stay on the same room fits.
	_, err := stack.Bookings.CreateBooking(context.Background(), uuid.New(), bookingRequest(otherRoomID, day(10), day(12)))
	require.NoError(t, err)
	_, err = stack.Bookings.CreateBooking(context.Background(), uuid.New(), bookingRequest(roomID, day(12), day(14)))
	require.NoError(t, err)
}

// TestRefundBooking_CancelledBookingStaysReleased checks that the overlap
// query ignores a cancelled booking even after a refund request moves it on.
func TestRefundBooking_CancelledBookingStaysReleased(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupLodgingStack(t, infra.DB, infra.KafkaBrokers, integrationStart)
	defer stack.CleanupProducer()
	ctx := context.Background()

	roomID := seedRoom(t, stack, 10000)
	first, err := stack.Bookings.CreateBooking(ctx, uuid.New(), bookingRequest(roomID, day(10), day(12)))
	require.NoError(t, err)
	_, err = stack.Bookings.PayBooking(ctx, first.ID)
	require.NoError(t, err)
	_, err = stack.Bookings.CancelBooking(ctx, first.ID)
	require.NoError(t, err)

	second, err := stack.Bookings.CreateBooking(ctx, uuid.New(), bookingRequest(roomID, day(10), day(12)))
	require.NoError(t, err)

	refunded, err := stack.Bookings.RefundBooking(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "request_refund", refunded.Status)

	stay, err := domain.NewDateRange(day(10), day(12))
	require.NoError(t, err)
	res, err := stack.Availability.CheckAvailability(ctx, roomID, stay, second.ID)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Empty(t, res.Conflicts)

	_, err = stack.Bookings.CreateBooking(ctx, uuid.New(), bookingRequest(roomID, day(11), day(13)))
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

// TestLifecycleSweep_AgainstPostgres checks the sweep's due-booking query and
// optimistic writes on the real schema.
func TestLifecycleSweep_AgainstPostgres(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupLodgingStack(t, infra.DB, infra.KafkaBrokers, integrationStart)
	defer stack.CleanupProducer()
	ctx := context.Background()

	roomID := seedRoom(t, stack, 10000)
	unpaid, err := stack.Bookings.CreateBooking(ctx, uuid.New(), bookingRequest(roomID, day(3), day(5)))
	require.NoError(t, err)
	paid, err := stack.Bookings.CreateBooking(ctx, uuid.New(), bookingRequest(roomID, day(5), day(7)))
	require.NoError(t, err)
	_, err = stack.Bookings.PayBooking(ctx, paid.ID)
	require.NoError(t, err)

	stack.Clock.Set(day(8))
	result, err := stack.Bookings.RunLifecycleSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Cancelled)
	assert.Equal(t, 1, result.Completed)

	waitForBookingStatus(t, infra.DB, unpaid.ID, "cancelled", time.Second)
	waitForBookingStatus(t, infra.DB, paid.ID, "done", time.Second)

	stats, err := stack.Bookings.GetBookingStatistics(ctx, application.StatisticsQuery{Month: 6, Year: 2030})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalCompleted)
	assert.Equal(t, int64(20000), stats.RevenueCents)

	again, err := stack.Bookings.RunLifecycleSweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Cancelled+again.Completed)
}
