package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carebook/carebook-platform/internal/availability"
	"github.com/carebook/carebook-platform/internal/booking"
	"github.com/carebook/carebook-platform/internal/draft"
	"github.com/carebook/carebook-platform/internal/events"
	httpmiddleware "github.com/carebook/carebook-platform/internal/http/middleware"
	"github.com/carebook/carebook-platform/internal/interactions"
	"github.com/carebook/carebook-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AvailabilityHandler *availability.Handler
	DraftHandler        *draft.Handler
	BookingHandler      *booking.Handler
	InteractionsHandler *interactions.Handler
	EventsHandler       *events.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// Per-IP rate limit for toggle traffic; zero disables it.
	ToggleRateLimit float64
	ToggleBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/providers/{providerID}", func(provider chi.Router) {
		if cfg.AvailabilityHandler != nil {
			provider.Get("/availability", cfg.AvailabilityHandler.GetSlots)
			provider.Get("/availability/buckets", cfg.AvailabilityHandler.GetBuckets)
			provider.Get("/next-available", cfg.AvailabilityHandler.GetNextAvailable)
			provider.Get("/calendar", cfg.AvailabilityHandler.GetCalendar)
		}
		if cfg.DraftHandler != nil {
			provider.Get("/draft", cfg.DraftHandler.GetDraft)
			provider.Put("/draft", cfg.DraftHandler.PutDraft)
			provider.Delete("/draft", cfg.DraftHandler.DeleteDraft)
		}
		if cfg.BookingHandler != nil {
			provider.Post("/bookings", cfg.BookingHandler.PostBooking)
		}
	})

	if cfg.InteractionsHandler != nil {
		r.Route("/interactions", func(ix chi.Router) {
			if cfg.ToggleRateLimit > 0 {
				ix.Use(httpmiddleware.RateLimit(cfg.ToggleRateLimit, cfg.ToggleBurst))
			}
			ix.Post("/{kind}/{entityID}/toggle", cfg.InteractionsHandler.PostToggle)
			ix.Get("/{kind}/{entityID}", cfg.InteractionsHandler.GetEntity)
			if cfg.EventsHandler != nil {
				ix.Get("/{kind}/{entityID}/events", cfg.EventsHandler.GetRecent)
			}
		})
	}

	return r
}
