// File: cleanitalia/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cleanitalia/config"
	"cleanitalia/cron"
	"cleanitalia/database"
	"cleanitalia/database/repository"
	"cleanitalia/handlers"
	"cleanitalia/metrics"
	"cleanitalia/middleware"
	"cleanitalia/routes"
	"cleanitalia/services/booking"
	"cleanitalia/services/events"
	"cleanitalia/services/notification"
	"cleanitalia/services/payment"
	"cleanitalia/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	metrics.Register()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories: Postgres when a DATABASE_URL is configured, otherwise
	// the in-memory mock store. Nothing downstream branches on the choice.
	var (
		bookingRepo repository.BookingRepository
		cityRepo    repository.CityRepository
		serviceRepo repository.ServiceRepository
		workerRepo  repository.WorkerRepository
		blockedRepo repository.BlockedSlotRepository
	)
	if config.AppConfig.DatabaseURL != "" {
		database.InitDB()
		bookingRepo = repository.NewPostgresBookingRepo(database.DB)
		cityRepo = repository.NewPostgresCityRepo(database.DB)
		serviceRepo = repository.NewPostgresServiceRepo(database.DB)
		workerRepo = repository.NewPostgresWorkerRepo(database.DB)
		blockedRepo = repository.NewPostgresBlockedSlotRepo(database.DB)
	} else {
		logger.Sugar().Warn("main: no DATABASE_URL configured, using in-memory mock store")
		bookingRepo = repository.NewMemoryBookingRepo()
		cityRepo = repository.NewMemoryCityRepo()
		serviceRepo = repository.NewMemoryServiceRepo()
		workerRepo = repository.NewMemoryWorkerRepo()
		blockedRepo = repository.NewMemoryBlockedSlotRepo()
	}

	// Admin sessions live in Redis when available, in memory otherwise.
	var sessions utils.SessionStore
	if config.AppConfig.RedisAddr != "" {
		sessions = &utils.RedisSessionStore{Client: utils.GetAuthCacheClient()}
	} else {
		sessions = utils.NewMemorySessionStore()
	}

	gateway := payment.NewStripeGateway(config.AppConfig.StripeKey, logger)

	mailer := &notification.SMTPMailer{
		Host:   config.AppConfig.SMTPHost,
		Port:   config.AppConfig.SMTPPort,
		User:   config.AppConfig.SMTPUser,
		Pass:   config.AppConfig.SMTPPass,
		From:   config.AppConfig.SMTPFrom,
		Logger: logger,
	}
	inlineNotifier := &notification.DefaultService{Mailer: mailer, Logger: logger}

	// With Redis the lifecycle emails go through the asynq queue and the
	// background worker; without it they are sent inline. Either way they
	// stay best-effort.
	var notifier booking.Notifier = inlineNotifier
	if config.AppConfig.RedisAddr != "" {
		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		})
		defer asynqClient.Close()
		notifier = &notification.QueueService{Client: asynqClient, Logger: logger}
		cron.InitEmailWorker(inlineNotifier)
	}

	hub := events.NewHub(logger)

	bookingService := &booking.DefaultService{
		Repo:     bookingRepo,
		Gateway:  gateway,
		Notifier: notifier,
		Events:   hub,
		Logger:   logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Sessions: sessions,
		Public:   handlers.NewPublicHandler(cityRepo, serviceRepo, blockedRepo, bookingService, gateway, logger),
		Admin:    handlers.NewAdminHandler(sessions, bookingService, logger),
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		Catalog:  handlers.NewCatalogHandler(cityRepo, serviceRepo, logger),
		Worker:   handlers.NewWorkerHandler(workerRepo, blockedRepo, logger),
		Events:   handlers.NewEventsHandler(hub, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
