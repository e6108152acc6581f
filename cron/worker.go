package cron

import (
	"context"
	"encoding/json"
	"log"

	"cleanitalia/config"
	"cleanitalia/services/notification"

	"github.com/hibiken/asynq"
)

// InitEmailWorker runs the async email worker in background. Only called
// when Redis is configured; without Redis notifications go out inline.
func InitEmailWorker(notifSvc notification.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeBookingEmail, handleEmailTask(notifSvc))

	go func() {
		log.Println("[EmailWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[EmailWorker] worker stopped: %v", err)
		}
	}()
}

func handleEmailTask(notifSvc notification.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p notification.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailWorker] invalid payload: %v", err)
			return err
		}
		notifSvc.Notify(ctx, p.Booking, p.Event)
		return nil
	}
}
