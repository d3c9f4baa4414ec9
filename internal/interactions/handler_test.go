package interactions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carebook/carebook-platform/pkg/logging"
)

func newHandlerFixture(t *testing.T, tr Transport) (chi.Router, *Coordinator) {
	t.Helper()
	c := NewCoordinator(tr, time.Second, logging.Default())
	h := NewHandler(c, logging.Default())

	r := chi.NewRouter()
	r.Mount("/interactions", h.Routes())
	return r, c
}

func TestHandlerPostToggle(t *testing.T) {
	tr := &fakeTransport{}
	tr.set(&ToggleResponse{}, nil)
	r, c := newHandlerFixture(t, tr)

	req := httptest.NewRequest(http.MethodPost, "/interactions/like/post-1/toggle", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body entityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Toggled || body.Count != 1 || !body.Pending {
		t.Errorf("response = %+v", body)
	}
	c.Wait()
}

func TestHandlerPostToggleRequiresUser(t *testing.T) {
	tr := &fakeTransport{}
	r, _ := newHandlerFixture(t, tr)

	req := httptest.NewRequest(http.MethodPost, "/interactions/like/post-1/toggle", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlerPostToggleConflictWhilePending(t *testing.T) {
	tr := &fakeTransport{release: make(chan struct{})}
	tr.set(&ToggleResponse{}, nil)
	r, c := newHandlerFixture(t, tr)

	req := httptest.NewRequest(http.MethodPost, "/interactions/like/post-1/toggle", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("first toggle status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/interactions/like/post-1/toggle", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("second toggle status = %d, want 409", rec.Code)
	}

	close(tr.release)
	c.Wait()
}

func TestHandlerGetEntity(t *testing.T) {
	tr := &fakeTransport{}
	r, c := newHandlerFixture(t, tr)

	c.Seed(Entity{ID: "post-1", Kind: "like", Toggled: true, Count: 7})

	req := httptest.NewRequest(http.MethodGet, "/interactions/like/post-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body entityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Toggled || body.Count != 7 || body.Pending {
		t.Errorf("response = %+v", body)
	}
}

func TestHandlerGetEntityUnknown(t *testing.T) {
	tr := &fakeTransport{}
	r, _ := newHandlerFixture(t, tr)

	req := httptest.NewRequest(http.MethodGet, "/interactions/like/ghost", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
