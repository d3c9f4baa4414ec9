package availability

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carebook/carebook-platform/internal/calendar"
	"github.com/carebook/carebook-platform/internal/observability/metrics"
	"github.com/carebook/carebook-platform/internal/providers"
	"github.com/carebook/carebook-platform/internal/schedule"
	"github.com/carebook/carebook-platform/pkg/logging"
)

// Handler exposes the slot engine over HTTP for the booking UI.
type Handler struct {
	service *Service
	logger  *logging.Logger
	metrics *metrics.AvailabilityMetrics
}

// NewHandler creates the availability HTTP handler.
func NewHandler(service *Service, m *metrics.AvailabilityMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger, metrics: m}
}

// Routes returns the availability routes, mounted under /providers/{providerID}.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/availability", h.GetSlots)
	r.Get("/availability/buckets", h.GetBuckets)
	r.Get("/next-available", h.GetNextAvailable)
	r.Get("/calendar", h.GetCalendar)
	return r
}

// GetSlots returns the slot labels for one date.
// GET /providers/{providerID}/availability?date=YYYY-MM-DD
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")
	date, err := schedule.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.metrics.ObserveRequest("slots", "bad_request")
		http.Error(w, `{"error": "date must be YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}

	slots, err := h.service.SlotsForDate(r.Context(), providerID, date)
	if err != nil {
		h.writeServiceError(w, "slots", providerID, err)
		return
	}

	h.metrics.ObserveRequest("slots", "ok")
	h.metrics.ObserveSlots("slots", len(slots))
	writeJSON(w, h.logger, map[string]any{
		"date":  date,
		"slots": Labels(slots),
	})
}

// GetBuckets returns today/tomorrow/next-available slot buckets.
// GET /providers/{providerID}/availability/buckets
func (h *Handler) GetBuckets(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")

	buckets, err := h.service.Buckets(r.Context(), providerID)
	if err != nil {
		h.writeServiceError(w, "buckets", providerID, err)
		return
	}

	h.metrics.ObserveRequest("buckets", "ok")
	writeJSON(w, h.logger, buckets)
}

// GetNextAvailable returns the next open date, or a null date when none
// exists within the search horizon.
// GET /providers/{providerID}/next-available
func (h *Handler) GetNextAvailable(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")

	next, err := h.service.NextAvailable(r.Context(), providerID)
	if err != nil {
		h.writeServiceError(w, "next_available", providerID, err)
		return
	}

	h.metrics.ObserveRequest("next_available", "ok")
	writeJSON(w, h.logger, map[string]any{"next_available": next})
}

// GetCalendar returns the day/week/month grid around a reference date.
// GET /providers/{providerID}/calendar?mode=month&date=YYYY-MM-DD&selected=YYYY-MM-DD
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")

	mode, err := calendar.ParseViewMode(r.URL.Query().Get("mode"))
	if err != nil {
		h.metrics.ObserveRequest("calendar", "bad_request")
		http.Error(w, `{"error": "mode must be day, week, or month"}`, http.StatusBadRequest)
		return
	}
	ref, err := schedule.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.metrics.ObserveRequest("calendar", "bad_request")
		http.Error(w, `{"error": "date must be YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}

	var selected *schedule.Date
	if raw := r.URL.Query().Get("selected"); raw != "" {
		sel, err := schedule.ParseDate(raw)
		if err != nil {
			h.metrics.ObserveRequest("calendar", "bad_request")
			http.Error(w, `{"error": "selected must be YYYY-MM-DD"}`, http.StatusBadRequest)
			return
		}
		selected = &sel
	}

	cells, err := h.service.Grid(r.Context(), providerID, mode, ref, selected)
	if err != nil {
		h.writeServiceError(w, "calendar", providerID, err)
		return
	}

	h.metrics.ObserveRequest("calendar", "ok")
	writeJSON(w, h.logger, map[string]any{
		"mode":  mode,
		"date":  ref,
		"cells": cells,
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, endpoint, providerID string, err error) {
	if errors.Is(err, providers.ErrProviderNotFound) {
		h.metrics.ObserveRequest(endpoint, "not_found")
		http.Error(w, `{"error": "provider not found"}`, http.StatusNotFound)
		return
	}
	h.metrics.ObserveRequest(endpoint, "error")
	h.logger.Error("availability request failed", "endpoint", endpoint, "provider_id", providerID, "error", err)
	http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, logger *logging.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
