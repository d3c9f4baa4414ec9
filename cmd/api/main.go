package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carebook/carebook-platform/internal/api/router"
	"github.com/carebook/carebook-platform/internal/app/bootstrap"
	"github.com/carebook/carebook-platform/internal/availability"
	"github.com/carebook/carebook-platform/internal/booking"
	appconfig "github.com/carebook/carebook-platform/internal/config"
	"github.com/carebook/carebook-platform/internal/draft"
	"github.com/carebook/carebook-platform/internal/events"
	"github.com/carebook/carebook-platform/internal/interactions"
	"github.com/carebook/carebook-platform/internal/observability/metrics"
	"github.com/carebook/carebook-platform/internal/providers"
	"github.com/carebook/carebook-platform/pkg/logging"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err == nil {
		fmt.Println("loaded configuration from .env")
	}

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting carebook-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Shared infrastructure
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	eventStore, pgPool := bootstrap.BuildEventStore(ctx, cfg, logger)
	if pgPool != nil {
		defer pgPool.Close()
	}

	availabilityMetrics := metrics.NewAvailabilityMetrics(nil)
	interactionMetrics := metrics.NewInteractionMetrics(nil)

	// Provider directory with a short-lived schedule cache
	directoryClient := providers.NewClient(cfg.ProviderDirectoryURL, providers.WithLogger(logger))
	directory := providers.NewCachedDirectory(directoryClient, redisClient, cfg.ScheduleCacheTTL, logger)

	// Availability
	availabilityService := availability.NewService(
		directory,
		cfg.SlotDurationMinutes,
		cfg.SlotStepMinutes,
		cfg.HorizonDays,
		logger,
		availability.WithMetrics(availabilityMetrics),
	)
	availabilityHandler := availability.NewHandler(availabilityService, availabilityMetrics, logger)

	// Booking drafts
	var draftHandler *draft.Handler
	var draftStore *draft.Store
	if redisClient != nil {
		draftStore = draft.NewStore(redisClient, cfg.DraftTTL, logger)
		draftHandler = draft.NewHandler(draftStore, logger)
	} else {
		logger.Warn("redis unavailable, booking drafts disabled")
	}

	// Booking submission
	bookingClient := booking.NewClient(cfg.BookingAPIURL, booking.WithLogger(logger))
	var clearer booking.DraftClearer
	if draftStore != nil {
		clearer = draftStore
	}
	bookingService := booking.NewService(bookingClient, clearer, cfg.SlotDurationMinutes, logger)
	bookingHandler := booking.NewHandler(bookingService, logger)

	// Optimistic interactions
	interactionClient := interactions.NewClient(cfg.InteractionAPIURL, interactions.WithLogger(logger))
	coordinatorOpts := []interactions.CoordinatorOption{
		interactions.WithInteractionMetrics(interactionMetrics),
	}
	if eventStore != nil {
		coordinatorOpts = append(coordinatorOpts, interactions.WithEventRecorder(eventStore))
	}
	coordinator := interactions.NewCoordinator(interactionClient, cfg.InteractionTimeout, logger, coordinatorOpts...)
	interactionsHandler := interactions.NewHandler(coordinator, logger)

	var eventsHandler *events.Handler
	if eventStore != nil {
		eventsHandler = events.NewHandler(eventStore, logger)
	}

	// Setup router
	routerCfg := &router.Config{
		Logger:              logger,
		AvailabilityHandler: availabilityHandler,
		DraftHandler:        draftHandler,
		BookingHandler:      bookingHandler,
		InteractionsHandler: interactionsHandler,
		EventsHandler:       eventsHandler,
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		ToggleRateLimit:     cfg.ToggleRateLimit,
		ToggleBurst:         cfg.ToggleBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Let in-flight toggle settlements finish so no rollback is lost.
	coordinator.Wait()

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
