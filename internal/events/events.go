// Package events connects the booking service to Kafka: it announces new
// bookings to billing and reacts to captured payments.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Source is the CloudEvents source of everything this service publishes.
const Source = "service-lodging"

// Event types.
const (
	BookingCreated  = "booking.created"
	PaymentCaptured = "payment.captured"
)

// BookingCreatedEvent asks billing to open a charge for a new booking.
type BookingCreatedEvent struct {
	BookingID     uuid.UUID `json:"bookingId"`
	BookingNumber string    `json:"bookingNumber"`
	CustomerID    uuid.UUID `json:"customerId"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Description   string    `json:"description"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// PaymentCapturedEvent reports that billing collected a booking's payment.
type PaymentCapturedEvent struct {
	BookingID uuid.UUID `json:"bookingId"`
	PaymentID uuid.UUID `json:"paymentId"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
}
