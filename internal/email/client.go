// Package email sends booking confirmations over SMTP.
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"time"

	"github.com/Kilat-Pet-Delivery/service-lodging/internal/application"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Client implements application.Mailer. A new SMTP connection is dialled per
// message; confirmations are rare enough that pooling is not worth it.
type Client struct {
	cfg    Config
	logger *zap.Logger
}

// NewClient creates a new Client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// SendBookingConfirmation e-mails the customer that their stay is paid.
func (c *Client) SendBookingConfirmation(ctx context.Context, conf application.BookingConfirmation) error {
	m, err := c.confirmationMessage(conf)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(c.cfg.Port),
		mail.WithTLSConfig(&tls.Config{ServerName: c.cfg.Host, MinVersion: tls.VersionTLS12}),
	}
	if c.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	if c.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(c.cfg.Username),
			mail.WithPassword(c.cfg.Password),
		)
	}

	client, err := mail.NewClient(c.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client for %s:%d: %w", c.cfg.Host, c.cfg.Port, err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send confirmation for %s: %w", conf.BookingNumber, err)
	}

	c.logger.Info("confirmation e-mail sent", zap.String("booking_number", conf.BookingNumber))
	return nil
}

func (c *Client) confirmationMessage(conf application.BookingConfirmation) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(c.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", c.cfg.From, err)
	}
	if err := m.To(conf.CustomerEmail); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", conf.CustomerEmail, err)
	}
	m.Subject(fmt.Sprintf("Booking %s confirmed", conf.BookingNumber))
	if err := m.SetBodyHTMLTemplate(confirmationTemplate, newConfirmationView(conf)); err != nil {
		return nil, fmt.Errorf("failed to render confirmation: %w", err)
	}
	return m, nil
}

type confirmationView struct {
	BookingNumber string
	CustomerName  string
	CheckIn       string
	CheckOut      string
	Nights        int
	Total         string
	Breakfast     bool
}

func newConfirmationView(c application.BookingConfirmation) confirmationView {
	return confirmationView{
		BookingNumber: c.BookingNumber,
		CustomerName:  c.CustomerName,
		CheckIn:       c.CheckIn.Format("Mon, 02 Jan 2006"),
		CheckOut:      c.CheckOut.Format("Mon, 02 Jan 2006"),
		Nights:        c.TotalDays,
		Total:         formatMoney(c.TotalPriceCents, c.Currency),
		Breakfast:     c.Breakfast,
	}
}

func formatMoney(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s %s%d.%02d", currency, sign, cents/100, cents%100)
}

var confirmationTemplate = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"year": func() int { return time.Now().Year() },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Booking confirmed</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f4f4f4;">
  <table width="100%" cellpadding="0" cellspacing="0" style="padding:20px;">
    <tr><td align="center">
      <table width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;">
        <tr><td style="background-color:#2f6f62;padding:32px 20px;text-align:center;">
          <h1 style="color:#ffffff;margin:0;font-size:26px;">Your stay is confirmed</h1>
        </td></tr>
        <tr><td style="padding:32px 30px;color:#333333;">
          <p>Hi {{.CustomerName}},</p>
          <p>We received your payment for booking <strong>{{.BookingNumber}}</strong>.</p>
          <table width="100%" cellpadding="0" cellspacing="0">
            <tr><td style="padding:6px 0;"><strong>Check-in</strong></td><td style="text-align:right;">{{.CheckIn}}</td></tr>
            <tr><td style="padding:6px 0;"><strong>Check-out</strong></td><td style="text-align:right;">{{.CheckOut}}</td></tr>
            <tr><td style="padding:6px 0;"><strong>Nights</strong></td><td style="text-align:right;">{{.Nights}}</td></tr>
            <tr><td style="padding:6px 0;"><strong>Breakfast</strong></td><td style="text-align:right;">{{if .Breakfast}}Included{{else}}Not included{{end}}</td></tr>
            <tr><td style="padding:12px 0 0 0;"><strong>Total paid</strong></td><td style="padding:12px 0 0 0;text-align:right;"><strong>{{.Total}}</strong></td></tr>
          </table>
        </td></tr>
        <tr><td style="background-color:#f8f9fa;padding:20px;text-align:center;color:#999999;font-size:12px;">
          This is an automated message, please do not reply. &copy; {{year}}
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>
`))
