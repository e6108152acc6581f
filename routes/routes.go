package routes

import (
	"net/http"
	"time"

	"cleanitalia/handlers"
	"cleanitalia/middleware"
	"cleanitalia/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandlerBundle collects the handlers the router wires up.
type HandlerBundle struct {
	Sessions utils.SessionStore

	Public  *handlers.PublicHandler
	Admin   *handlers.AdminHandler
	Booking *handlers.BookingHandler
	Catalog *handlers.CatalogHandler
	Worker  *handlers.WorkerHandler
	Events  *handlers.EventsHandler
}

// RegisterPublicRoutes registers the booking-form endpoints.
func RegisterPublicRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/cities", hb.Public.GetCitiesHandler)
		api.GET("/services", hb.Public.GetServicesHandler)
		api.GET("/available-slots", hb.Public.GetAvailableSlotsHandler)
		api.POST("/bookings", hb.Public.CreateBookingHandler)
		api.POST("/create-payment-intent", hb.Public.CreatePaymentIntentHandler)
	}
}

// RegisterAdminRoutes sets up the dashboard endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	admin := r.Group("/api/admin")
	{
		admin.POST("/login", hb.Admin.LoginHandler)
		admin.GET("/check-session", hb.Admin.CheckSessionHandler)

		// The event stream authenticates via query token: EventSource
		// cannot set headers.
		admin.GET("/events", middleware.AdminQueryTokenMiddleware(hb.Sessions), hb.Events.StreamHandler)

		protected := admin.Group("")
		protected.Use(middleware.AdminAuthMiddleware(hb.Sessions))
		protected.POST("/logout", hb.Admin.LogoutHandler)
		protected.GET("/stats", hb.Admin.StatsHandler)

		protected.GET("/bookings", hb.Booking.ListHandler)
		protected.POST("/bookings", hb.Booking.CreateHandler)
		protected.GET("/bookings/:id", hb.Booking.GetHandler)
		protected.PUT("/bookings/:id", hb.Booking.UpdateHandler)
		protected.DELETE("/bookings/:id", hb.Booking.DeleteHandler)
		protected.POST("/bookings/:id/confirm", hb.Booking.ConfirmHandler)
		protected.POST("/bookings/:id/reject", hb.Booking.RejectHandler)
		protected.POST("/bookings/:id/pay", hb.Booking.PayHandler)
		// Matches DELETE /api/admin/bookings/all/clear. Registered through
		// the :id wildcard because gin's router rejects a static sibling of
		// a param segment; the handler requires the literal "all".
		protected.DELETE("/bookings/:id/clear", hb.Booking.ClearAllHandler)

		protected.GET("/cities", hb.Catalog.ListCitiesHandler)
		protected.POST("/cities", hb.Catalog.CreateCityHandler)
		protected.PUT("/cities/:id", hb.Catalog.UpdateCityHandler)
		protected.DELETE("/cities/:id", hb.Catalog.DeleteCityHandler)

		protected.GET("/services", hb.Catalog.ListServicesHandler)
		protected.POST("/services", hb.Catalog.CreateServiceHandler)
		protected.PUT("/services/:id", hb.Catalog.UpdateServiceHandler)
		protected.DELETE("/services/:id", hb.Catalog.DeleteServiceHandler)

		protected.GET("/workers", hb.Worker.ListWorkersHandler)
		protected.POST("/workers", hb.Worker.CreateWorkerHandler)
		protected.PUT("/workers/:id", hb.Worker.UpdateWorkerHandler)
		protected.DELETE("/workers/:id", hb.Worker.DeleteWorkerHandler)

		protected.GET("/blocked-slots", hb.Worker.ListBlockedSlotsHandler)
		protected.POST("/blocked-slots", hb.Worker.CreateBlockedSlotHandler)
		protected.DELETE("/blocked-slots/:id", hb.Worker.DeleteBlockedSlotHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "CleanItalia booking API"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	RegisterPublicRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
