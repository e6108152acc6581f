// Package booking holds the booking lifecycle state machine. Every business
// rule about confirm/reject/pay/delete lives here; handlers only translate
// HTTP. Payment capture and email dispatch are best-effort side effects: the
// admin's decision is the source of truth and always commits.
package booking

import (
	"context"
	"errors"

	"cleanitalia/database/repository"
	"cleanitalia/metrics"
	"cleanitalia/models"
	"cleanitalia/services/payment"

	"go.uber.org/zap"
)

// Notification events fired on lifecycle transitions.
const (
	EventPending   = "pending"
	EventConfirmed = "confirmed"
	EventRejected  = "rejected"
)

// Notifier dispatches lifecycle emails. Implementations must never return
// an error that aborts the transition; failures are their own problem.
type Notifier interface {
	Notify(ctx context.Context, b models.Booking, event string)
}

// Broadcaster pushes "bookings changed" to connected admin clients.
type Broadcaster interface {
	BookingsUpdated()
}

// Service is the booking lifecycle manager.
type Service interface {
	Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	Get(ctx context.Context, id int64) (*models.Booking, error)
	Confirm(ctx context.Context, id int64) (*models.Booking, error)
	Reject(ctx context.Context, id int64) (*models.Booking, error)
	MarkPaid(ctx context.Context, id int64) (*models.Booking, error)
	Update(ctx context.Context, b models.Booking) (*models.Booking, error)
	Delete(ctx context.Context, id int64) error
	ClearAll(ctx context.Context) error
	List(ctx context.Context, statusFilter string) ([]models.Booking, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// DefaultService is the production lifecycle manager.
type DefaultService struct {
	Repo     repository.BookingRepository
	Gateway  payment.Gateway
	Notifier Notifier
	Events   Broadcaster
	Logger   *zap.Logger
}

func validateRequest(req models.BookingRequest) error {
	switch {
	case req.Name == "":
		return NewValidationError("name", "customer name is required")
	case req.Email == "":
		return NewValidationError("email", "customer email is required")
	case req.Phone == "":
		return NewValidationError("phone", "customer phone is required")
	case req.Date == "":
		return NewValidationError("date", "booking date is required")
	case req.Time == "":
		return NewValidationError("time", "booking time is required")
	case req.Hours <= 0:
		return NewValidationError("hours", "duration must be a positive number of hours")
	case req.Cleaners <= 0:
		return NewValidationError("cleaners", "at least one cleaner is required")
	case req.TotalAmount < 0:
		return NewValidationError("totalAmount", "amount cannot be negative")
	}
	return nil
}

// Create validates and persists a new booking in pending state, then fires
// the "pending" notification. The record is either fully written or not
// created at all.
func (s *DefaultService) Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	stripeStatus := models.StripeNone
	if req.PaymentIntentID != "" {
		stripeStatus = models.StripeAuthorized
	}
	b := models.Booking{
		ServiceID:          req.ServiceID,
		CityID:             req.CityID,
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Street:             req.Street,
		HouseNumber:        req.HouseNumber,
		PropertySize:       req.PropertySize,
		Doorbell:           req.Doorbell,
		Date:               req.Date,
		Time:               req.Time,
		Hours:              req.Hours,
		Cleaners:           req.Cleaners,
		TotalAmount:        req.TotalAmount,
		Notes:              req.Notes,
		AdditionalServices: models.StringList(req.AdditionalServices),
		Supplies:           models.StringList(req.Supplies),
		Status:             models.StatusPending,
		StripeStatus:       stripeStatus,
		PaymentIntentID:    req.PaymentIntentID,
	}
	if err := s.Repo.Create(ctx, &b); err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}
	metrics.IncBookingCreated(b.Status)

	s.notify(ctx, b, EventPending)
	s.broadcast()
	return &b, nil
}

// Get returns one booking by id.
func (s *DefaultService) Get(ctx context.Context, id int64) (*models.Booking, error) {
	return s.load(ctx, id)
}

// Confirm captures the payment authorization (when one exists) and marks the
// booking confirmed. A capture failure is logged but never blocks the
// transition; the operator can retry the capture out of band.
func (s *DefaultService) Confirm(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	// Without a payment reference there is nothing to capture and the
	// stripe status stays none.
	if b.PaymentIntentID != "" {
		if _, err := s.Gateway.Capture(ctx, b.PaymentIntentID); err != nil {
			s.Logger.Error("Payment capture failed, confirming anyway",
				zap.Int64("booking", id), zap.Error(err))
		}
		b.StripeStatus = models.StripeCaptured
	}
	b.Status = models.StatusConfirmed
	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, s.wrapUpdate(id, err)
	}
	metrics.IncAdminDecision("confirm")

	s.notify(ctx, *b, EventConfirmed)
	s.broadcast()
	return b, nil
}

// Reject releases the payment authorization (when one exists) and cancels the
// booking. Mirrors Confirm: the gateway call is best-effort.
func (s *DefaultService) Reject(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.PaymentIntentID != "" {
		if err := s.Gateway.Cancel(ctx, b.PaymentIntentID); err != nil {
			s.Logger.Error("Payment release failed, rejecting anyway",
				zap.Int64("booking", id), zap.Error(err))
		}
		b.StripeStatus = models.StripeReleased
	}
	b.Status = models.StatusCancelled
	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, s.wrapUpdate(id, err)
	}
	metrics.IncAdminDecision("reject")

	s.notify(ctx, *b, EventRejected)
	s.broadcast()
	return b, nil
}

// MarkPaid records out-of-band payment collection. The payment gateway is
// deliberately not involved.
func (s *DefaultService) MarkPaid(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Status = models.StatusPaid
	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, s.wrapUpdate(id, err)
	}
	metrics.IncAdminDecision("pay")

	s.broadcast()
	return b, nil
}

// Update persists an admin edit of booking details. Status fields pass
// through unchanged; lifecycle transitions go through the dedicated methods.
func (s *DefaultService) Update(ctx context.Context, b models.Booking) (*models.Booking, error) {
	if err := s.Repo.Update(ctx, &b); err != nil {
		return nil, s.wrapUpdate(b.ID, err)
	}
	s.broadcast()
	return &b, nil
}

// Delete removes the record permanently.
func (s *DefaultService) Delete(ctx context.Context, id int64) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{ID: id}
	}
	if err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	s.broadcast()
	return nil
}

// ClearAll wipes every booking. Irreversible; demo/reset use only.
func (s *DefaultService) ClearAll(ctx context.Context) error {
	if err := s.Repo.DeleteAll(ctx); err != nil {
		return &PersistenceError{Op: "clear", Err: err}
	}
	s.broadcast()
	return nil
}

// List returns all bookings, optionally filtered by exact status match.
// Ordering for display is the consumer's concern.
func (s *DefaultService) List(ctx context.Context, statusFilter string) ([]models.Booking, error) {
	var (
		bookings []models.Booking
		err      error
	)
	if statusFilter != "" {
		bookings, err = s.Repo.GetByStatus(ctx, statusFilter)
	} else {
		bookings, err = s.Repo.GetAll(ctx)
	}
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	return bookings, nil
}

// Stats aggregates dashboard counters. Revenue sums confirmed and paid
// bookings only.
func (s *DefaultService) Stats(ctx context.Context) (*models.Stats, error) {
	bookings, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "stats", Err: err}
	}
	stats := models.Stats{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusConfirmed:
			stats.Confirmed++
			stats.Revenue += b.TotalAmount
		case models.StatusCancelled:
			stats.Cancelled++
		case models.StatusPaid:
			stats.Paid++
			stats.Revenue += b.TotalAmount
		}
	}
	return &stats, nil
}

func (s *DefaultService) load(ctx context.Context, id int64) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	return b, nil
}

func (s *DefaultService) wrapUpdate(id int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{ID: id}
	}
	return &PersistenceError{Op: "update", Err: err}
}

func (s *DefaultService) notify(ctx context.Context, b models.Booking, event string) {
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, b, event)
	}
}

func (s *DefaultService) broadcast() {
	if s.Events != nil {
		s.Events.BookingsUpdated()
	}
}
