package application

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BillingNotice is sent to the external ledger when a booking is created.
type BillingNotice struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	CustomerID    uuid.UUID `json:"customer_id"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `json:"currency"`
	Description   string    `json:"description"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// BillingNotifier tells the external billing service about new bookings.
// Calls are made off the request path and their errors are only logged.
type BillingNotifier interface {
	NotifyBookingCreated(ctx context.Context, notice BillingNotice) error
}

// BookingConfirmation is the data of the e-mail sent once a booking is paid.
type BookingConfirmation struct {
	BookingNumber   string
	CustomerName    string
	CustomerEmail   string
	CheckIn         time.Time
	CheckOut        time.Time
	TotalDays       int
	TotalPriceCents int64
	Currency        string
	Breakfast       bool
}

// Mailer sends customer-facing e-mails.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, c BookingConfirmation) error
}
