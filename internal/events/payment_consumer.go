package events

import (
	"context"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/domain"
	"github.com/Kilat-Pet-Delivery/service-lodging/internal/platform/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BookingPayer confirms payment of a booking.
type BookingPayer interface {
	PayBooking(ctx context.Context, bookingID uuid.UUID) (*application.BookingDTO, error)
}

// PaymentEventConsumer consumes payment events from Kafka.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	service  BookingPayer
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new PaymentEventConsumer.
func NewPaymentEventConsumer(brokers []string, groupID, topic string, service BookingPayer, logger *zap.Logger) *PaymentEventConsumer {
	return &PaymentEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, topic, logger),
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming payment events. This blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case PaymentCaptured:
		return c.handlePaymentCaptured(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handlePaymentCaptured(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt PaymentCapturedEvent
	if err := cloudEvent.ParseData(&evt); err != nil || evt.BookingID == uuid.Nil {
		c.logger.Error("failed to parse PaymentCapturedEvent data",
			zap.String("event_id", cloudEvent.ID),
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	log := c.logger.With(zap.String("booking_id", evt.BookingID.String()))
	log.Info("processing payment captured event", zap.String("payment_id", evt.PaymentID.String()))

	result, err := c.service.PayBooking(ctx, evt.BookingID)
	switch domain.KindOf(err) {
	case "":
		if err != nil {
			log.Error("failed to confirm booking payment", zap.Error(err))
			return err
		}
	case domain.KindNotFound, domain.KindInvalidState:
		// Redelivery cannot fix these; billing has to reconcile.
		log.Error("payment captured for a booking that cannot be paid", zap.Error(err))
		return nil
	default:
		log.Warn("payment confirmation will be retried", zap.Error(err))
		return err
	}

	log.Info("booking payment confirmed", zap.String("status", result.Status))
	return nil
}
