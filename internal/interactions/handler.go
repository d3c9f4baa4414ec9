package interactions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carebook/carebook-platform/pkg/logging"
)

// Handler exposes the toggle engine over HTTP.
type Handler struct {
	coordinator *Coordinator
	logger      *logging.Logger
}

// NewHandler creates the interactions HTTP handler.
func NewHandler(coordinator *Coordinator, logger *logging.Logger) *Handler {
	if coordinator == nil {
		panic("interactions: coordinator required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{coordinator: coordinator, logger: logger}
}

// Routes returns the interaction routes, mounted under /interactions.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/{kind}/{entityID}/toggle", h.PostToggle)
	r.Get("/{kind}/{entityID}", h.GetEntity)
	return r
}

type entityResponse struct {
	Entity
	Pending bool `json:"pending"`
}

// PostToggle flips an entity for the calling user and returns the
// optimistic state immediately; the server settlement happens in the
// background. A toggle already in flight for the same entity is a 409.
// POST /interactions/{kind}/{entityID}/toggle
func (h *Handler) PostToggle(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	entityID := chi.URLParam(r, "entityID")

	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		http.Error(w, `{"error": "X-User-ID header required"}`, http.StatusBadRequest)
		return
	}

	e, err := h.coordinator.Toggle(r.Context(), kind, entityID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTogglePending):
			http.Error(w, `{"error": "toggle already in progress"}`, http.StatusConflict)
		case errors.Is(err, ErrCancelled):
			// The client went away before any state was touched.
			http.Error(w, `{"error": "request cancelled"}`, http.StatusBadRequest)
		default:
			h.logger.Error("toggle failed", "kind", kind, "entity_id", entityID, "error", err)
			http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		}
		return
	}

	writeEntity(w, h.logger, entityResponse{Entity: e, Pending: true}, http.StatusAccepted)
}

// GetEntity returns the current local state of an entity.
// GET /interactions/{kind}/{entityID}
func (h *Handler) GetEntity(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	entityID := chi.URLParam(r, "entityID")

	e, pending, ok := h.coordinator.Get(kind, entityID)
	if !ok {
		http.Error(w, `{"error": "unknown entity"}`, http.StatusNotFound)
		return
	}

	writeEntity(w, h.logger, entityResponse{Entity: e, Pending: pending}, http.StatusOK)
}

func writeEntity(w http.ResponseWriter, logger *logging.Logger, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode entity response", "error", err)
	}
}
