// Package notification fires best-effort lifecycle emails. Dispatch failures
// are logged and counted, never surfaced to the caller: a broken mail server
// must not stop an admin from confirming a booking.
package notification

import (
	"context"
	"fmt"
	"net/smtp"

	"cleanitalia/metrics"
	"cleanitalia/models"

	"go.uber.org/zap"
)

// Mailer delivers a single email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service dispatches a lifecycle notification for a booking event
// ("pending", "confirmed", "rejected").
type Service interface {
	Notify(ctx context.Context, b models.Booking, event string)
}

// SMTPMailer sends mail through a plain SMTP relay. An empty host leaves the
// mailer unconfigured and Send only logs.
type SMTPMailer struct {
	Host   string
	Port   string
	User   string
	Pass   string
	From   string
	Logger *zap.Logger
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.Host == "" {
		m.Logger.Info("SMTP not configured, skipping email",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.From, to, subject, body))
	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, msg)
}

// DefaultService delivers notifications inline through the Mailer.
type DefaultService struct {
	Mailer Mailer
	Logger *zap.Logger
}

func subjectFor(event string) string {
	switch event {
	case "confirmed":
		return "Your cleaning is confirmed"
	case "rejected":
		return "Your booking was cancelled"
	default:
		return "We received your booking"
	}
}

func bodyFor(b models.Booking, event string) string {
	return fmt.Sprintf("Hello %s,\n\nbooking #%d on %s at %s is now %s.\nTotal: %.2f EUR.\n",
		b.Name, b.ID, b.Date, b.Time, event, b.TotalAmount)
}

func (s *DefaultService) Notify(ctx context.Context, b models.Booking, event string) {
	if err := s.Mailer.Send(ctx, b.Email, subjectFor(event), bodyFor(b, event)); err != nil {
		metrics.IncNotification("failure")
		s.Logger.Error("Failed to send booking email",
			zap.Int64("booking", b.ID), zap.String("event", event), zap.Error(err))
		return
	}
	metrics.IncNotification("success")
	s.Logger.Info("Booking email dispatched",
		zap.Int64("booking", b.ID), zap.String("event", event))
}
