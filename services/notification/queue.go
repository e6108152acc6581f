package notification

import (
	"context"
	"encoding/json"

	"cleanitalia/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeBookingEmail is the asynq task type for lifecycle emails.
const TypeBookingEmail = "email:booking"

// EmailPayload is the queued task body.
type EmailPayload struct {
	Booking models.Booking `json:"booking"`
	Event   string         `json:"event"`
}

// QueueService enqueues lifecycle emails to Redis instead of sending inline;
// the worker in cron/ delivers them. Used when Redis is configured.
type QueueService struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func (s *QueueService) Notify(ctx context.Context, b models.Booking, event string) {
	payload, err := json.Marshal(EmailPayload{Booking: b, Event: event})
	if err != nil {
		s.Logger.Error("Failed to marshal email task", zap.Error(err))
		return
	}
	task := asynq.NewTask(TypeBookingEmail, payload)
	if _, err := s.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		// Best-effort like everything else in this package.
		s.Logger.Error("Failed to enqueue email task",
			zap.Int64("booking", b.ID), zap.Error(err))
	}
}
