package booking

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carebook/carebook-platform/pkg/logging"
)

// Handler serves booking submission.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates the booking HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("booking: service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes returns the booking routes, mounted under /providers/{providerID}.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/bookings", h.PostBooking)
	return r
}

// PostBooking confirms a booking for a provider. Incomplete forms are a
// 422 with the offending field named; nothing is sent upstream.
// POST /providers/{providerID}/bookings
func (h *Handler) PostBooking(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")

	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid booking payload"}`, http.StatusBadRequest)
		return
	}
	req.ProviderID = providerID

	appointmentID, err := h.service.Confirm(r.Context(), req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			http.Error(w, fmt.Sprintf(`{"error": "missing %s"}`, verr.Field), http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("booking submission failed", "provider_id", providerID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]string{"appointment_id": appointmentID}); err != nil {
		h.logger.Error("failed to encode booking response", "error", err)
	}
}
