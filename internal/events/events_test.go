package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/platform/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishEvent(ctx context.Context, topic string, ce kafka.CloudEvent) error {
	return m.Called(ctx, topic, ce).Error(0)
}

type mockPayer struct {
	mock.Mock
}

func (m *mockPayer) PayBooking(ctx context.Context, bookingID uuid.UUID) (*application.BookingDTO, error) {
	args := m.Called(ctx, bookingID)
	dto, _ := args.Get(0).(*application.BookingDTO)
	return dto, args.Error(1)
}

func TestBillingPublisher_NotifyBookingCreated(t *testing.T) {
	pub := &mockPublisher{}
	notice := application.BillingNotice{
		BookingID:     uuid.New(),
		BookingNumber: "BK-ABC123",
		CustomerID:    uuid.New(),
		AmountCents:   150000,
		Currency:      "MYR",
		Description:   "Booking BK-ABC123: 3 night(s) from 2030-06-01",
		OccurredAt:    time.Date(2030, 5, 1, 8, 0, 0, 0, time.UTC),
	}

	var published kafka.CloudEvent
	pub.On("PublishEvent", mock.Anything, "billing.events", mock.AnythingOfType("kafka.CloudEvent")).
		Run(func(args mock.Arguments) { published = args.Get(2).(kafka.CloudEvent) }).
		Return(nil)

	err := NewBillingPublisher(pub, "billing.events", zaptest.NewLogger(t)).NotifyBookingCreated(context.Background(), notice)
	require.NoError(t, err)
	pub.AssertExpectations(t)

	assert.Equal(t, BookingCreated, published.Type)
	assert.Equal(t, Source, published.Source)
	assert.Equal(t, notice.BookingID.String(), published.Subject)

	var evt BookingCreatedEvent
	require.NoError(t, published.ParseData(&evt))
	assert.Equal(t, notice.BookingID, evt.BookingID)
	assert.Equal(t, notice.CustomerID, evt.CustomerID)
	assert.Equal(t, int64(150000), evt.Amount)
	assert.Equal(t, "MYR", evt.Currency)
	assert.Equal(t, notice.Description, evt.Description)
}

func TestBillingPublisher_PublishFailure(t *testing.T) {
	pub := &mockPublisher{}
	pub.On("PublishEvent", mock.Anything, "billing.events", mock.Anything).Return(errors.New("broker down"))

	err := NewBillingPublisher(pub, "billing.events", zaptest.NewLogger(t)).
		NotifyBookingCreated(context.Background(), application.BillingNotice{BookingID: uuid.New(), BookingNumber: "BK-000001"})

	assert.ErrorContains(t, err, "broker down")
}

func paymentMessage(t *testing.T, eventType string, data interface{}) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("service-payment", eventType, data)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Value: raw}
}

func newTestConsumer(t *testing.T, payer BookingPayer) *PaymentEventConsumer {
	return &PaymentEventConsumer{service: payer, logger: zaptest.NewLogger(t)}
}

func TestPaymentEventConsumer_PaysBooking(t *testing.T) {
	payer := &mockPayer{}
	bookingID := uuid.New()
	payer.On("PayBooking", mock.Anything, bookingID).Return(&application.BookingDTO{ID: bookingID, Status: "payment_confirmed"}, nil)

	msg := paymentMessage(t, PaymentCaptured, PaymentCapturedEvent{BookingID: bookingID, PaymentID: uuid.New()})
	err := newTestConsumer(t, payer).handleMessage(context.Background(), msg)

	require.NoError(t, err)
	payer.AssertExpectations(t)
}

func TestPaymentEventConsumer_SkipsWithoutRetry(t *testing.T) {
	tests := []struct {
		name string
		msg  func(t *testing.T) kafkago.Message
	}{
		{"malformed envelope", func(*testing.T) kafkago.Message { return kafkago.Message{Value: []byte("not json")} }},
		{"other event type", func(t *testing.T) kafkago.Message {
			return paymentMessage(t, "payment.refunded", PaymentCapturedEvent{BookingID: uuid.New()})
		}},
		{"missing booking id", func(t *testing.T) kafkago.Message {
			return paymentMessage(t, PaymentCaptured, map[string]string{"paymentId": uuid.NewString()})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payer := &mockPayer{}
			err := newTestConsumer(t, payer).handleMessage(context.Background(), tt.msg(t))
			assert.NoError(t, err)
			payer.AssertNotCalled(t, "PayBooking", mock.Anything, mock.Anything)
		})
	}
}

func TestPaymentEventConsumer_ErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantRetry bool
	}{
		{"booking gone", domain.NewNotFoundError("booking", "x"), false},
		{"booking cancelled", domain.NewInvalidStateError("cancelled", "payment_confirmed"), false},
		{"lost optimistic race", domain.NewConflictError("booking was modified by another transaction"), true},
		{"database down", errors.New("connection reset"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payer := &mockPayer{}
			bookingID := uuid.New()
			payer.On("PayBooking", mock.Anything, bookingID).Return(nil, tt.err)

			msg := paymentMessage(t, PaymentCaptured, PaymentCapturedEvent{BookingID: bookingID})
			err := newTestConsumer(t, payer).handleMessage(context.Background(), msg)

			if tt.wantRetry {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
