package events

import (
	"context"
	"fmt"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/platform/kafka"
	"go.uber.org/zap"
)

// EventPublisher writes a CloudEvent to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, ce kafka.CloudEvent) error
}

// BillingPublisher implements application.BillingNotifier over Kafka.
type BillingPublisher struct {
	publisher EventPublisher
	topic     string
	logger    *zap.Logger
}

// NewBillingPublisher creates a new BillingPublisher.
func NewBillingPublisher(publisher EventPublisher, topic string, logger *zap.Logger) *BillingPublisher {
	return &BillingPublisher{publisher: publisher, topic: topic, logger: logger}
}

// NotifyBookingCreated publishes a booking.created event keyed by booking id.
func (p *BillingPublisher) NotifyBookingCreated(ctx context.Context, notice application.BillingNotice) error {
	ce, err := kafka.NewCloudEvent(Source, BookingCreated, BookingCreatedEvent{
		BookingID:     notice.BookingID,
		BookingNumber: notice.BookingNumber,
		CustomerID:    notice.CustomerID,
		Amount:        notice.AmountCents,
		Currency:      notice.Currency,
		Description:   notice.Description,
		OccurredAt:    notice.OccurredAt,
	})
	if err != nil {
		return err
	}
	ce.Subject = notice.BookingID.String()

	if err := p.publisher.PublishEvent(ctx, p.topic, ce); err != nil {
		return fmt.Errorf("failed to notify billing of booking %s: %w", notice.BookingNumber, err)
	}

	p.logger.Info("billing notified",
		zap.String("booking_id", notice.BookingID.String()),
		zap.Int64("amount_cents", notice.AmountCents),
	)
	return nil
}
