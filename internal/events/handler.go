package events

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carebook/carebook-platform/pkg/logging"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// Handler exposes the settlement audit trail over HTTP for ops use.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates the events HTTP handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if store == nil {
		panic("events: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// GetRecent returns the latest settled toggles for one entity, newest
// first. The limit query parameter caps the page size.
// GET /interactions/{kind}/{entityID}/events?limit=20
func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	entityID := chi.URLParam(r, "entityID")

	limit := int32(defaultRecentLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, `{"error": "invalid limit"}`, http.StatusBadRequest)
			return
		}
		if n > maxRecentLimit {
			n = maxRecentLimit
		}
		limit = int32(n)
	}

	evts, err := h.store.RecentByEntity(r.Context(), kind, entityID, limit)
	if err != nil {
		h.logger.Error("failed to fetch toggle events", "kind", kind, "entity_id", entityID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	if evts == nil {
		evts = []ToggleEvent{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{"events": evts}); err != nil {
		h.logger.Error("failed to encode toggle events", "error", err)
	}
}
