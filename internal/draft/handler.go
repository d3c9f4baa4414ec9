package draft

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carebook/carebook-platform/pkg/logging"
)

// Handler serves the per-provider draft resource.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates the draft HTTP handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if store == nil {
		panic("draft: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Routes returns the draft routes, mounted under /providers/{providerID}.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/draft", h.GetDraft)
	r.Put("/draft", h.PutDraft)
	r.Delete("/draft", h.DeleteDraft)
	return r
}

// GetDraft returns the saved draft, or 404 when none exists.
// GET /providers/{providerID}/draft
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")

	d, err := h.store.Load(r.Context(), providerID)
	if err != nil {
		h.logger.Error("failed to load booking draft", "provider_id", providerID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	if d == nil {
		http.Error(w, `{"error": "no draft found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(d); err != nil {
		h.logger.Error("failed to encode draft", "error", err)
	}
}

// PutDraft saves or replaces the draft for a provider. The body's
// provider id is taken from the URL, not the payload, so the draft can
// never land under a different provider's key.
// PUT /providers/{providerID}/draft
func (h *Handler) PutDraft(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")

	var d BookingDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, `{"error": "invalid draft payload"}`, http.StatusBadRequest)
		return
	}
	d.ProviderID = providerID

	if err := h.store.Save(r.Context(), &d); err != nil {
		h.logger.Error("failed to save booking draft", "provider_id", providerID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(d); err != nil {
		h.logger.Error("failed to encode draft", "error", err)
	}
}

// DeleteDraft clears the draft for a provider.
// DELETE /providers/{providerID}/draft
func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")

	if err := h.store.Clear(r.Context(), providerID); err != nil {
		h.logger.Error("failed to clear booking draft", "provider_id", providerID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
