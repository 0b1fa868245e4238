package cmd

import (
	"log"
	"log/slog"
	"ticket-booking/config"
	"ticket-booking/internal/handlers"
	"ticket-booking/internal/services"
	"ticket-booking/models"
	"ticket-booking/monitoring"
	"ticket-booking/security"
	"ticket-booking/utils"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize notifications
	var notifier services.Notifier = services.NopNotifier{}
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey

		notifier = services.NewPubNubNotifier(pubnub.NewPubNub(pnConfig))
	} else {
		slog.Info("pubnub keys not configured, booking notifications disabled")
	}

	monitor := monitoring.NewMonitor()

	// Initialize services
	ledger := services.NewRecordLedger(app)
	locks := services.NewEventLock(redisClient, cfg.BookingLockTTL)
	bookingService := services.NewBookingService(ledger, locks, notifier, monitor)
	resolver := services.NewAvailabilityResolver(ledger)
	statsService := services.NewStatsService(app)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(app, bookingService)
	eventHandler := handlers.NewEventHandler(app, resolver)
	adminHandler := handlers.NewAdminHandler(app, statsService)

	limiter := security.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	setupEventHooks(app)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Booking endpoints
		e.Router.POST("/api/v1/bookings", bookingHandler.Create).BindFunc(limiter.Middleware())
		e.Router.GET("/api/v1/bookings", bookingHandler.History)
		e.Router.POST("/api/v1/bookings/{id}/complete-payment", bookingHandler.CompletePayment)
		e.Router.POST("/api/v1/bookings/{id}/cancel", bookingHandler.Cancel)

		// Event endpoints
		e.Router.GET("/api/v1/events", eventHandler.List)
		e.Router.GET("/api/v1/events/{id}", eventHandler.Detail)

		// Admin endpoints
		e.Router.GET("/api/v1/admin/events", adminHandler.ListEvents)
		e.Router.POST("/api/v1/admin/events", adminHandler.CreateEvent)
		e.Router.PATCH("/api/v1/admin/events/{id}", adminHandler.UpdateEvent)
		e.Router.DELETE("/api/v1/admin/events/{id}", adminHandler.DeleteEvent)
		e.Router.POST("/api/v1/admin/cancel-event", adminHandler.CancelEvent)
		e.Router.GET("/api/v1/admin/users", adminHandler.ListUsers)
		e.Router.GET("/api/v1/admin/bookings", adminHandler.ListBookings)
		e.Router.GET("/api/v1/admin/stats", adminHandler.Stats)

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// setupEventHooks rejects event writes that carry a malformed seat_plan,
// so every stored plan parses cleanly on the read path.
func setupEventHooks(app *pocketbase.PocketBase) {
	validate := func(e *core.RecordRequestEvent) error {
		raw := models.JSONField(e.Record, "seat_plan")
		if _, err := models.ParseSeatPlan(raw); err != nil {
			return apis.NewBadRequestError("Invalid seat plan.", err)
		}
		return e.Next()
	}

	app.OnRecordCreateRequest("events").BindFunc(validate)
	app.OnRecordUpdateRequest("events").BindFunc(validate)
}
