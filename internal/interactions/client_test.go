package interactions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientToggle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/interactions/like/post-1/toggle" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req toggleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.UserID != "user-1" || !req.Active {
			t.Errorf("request = %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"flag": true, "count": 12}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.Toggle(context.Background(), "like", "post-1", "user-1", true)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if resp.Flag == nil || !*resp.Flag {
		t.Errorf("flag = %v", resp.Flag)
	}
	if resp.Count == nil || *resp.Count != 12 {
		t.Errorf("count = %v", resp.Count)
	}
	if resp.ParticipantIDs != nil {
		t.Errorf("participants should be nil when omitted, got %v", resp.ParticipantIDs)
	}
}

func TestClientToggleErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"server error", http.StatusInternalServerError, ErrUnavailable},
		{"bad gateway", http.StatusBadGateway, ErrUnavailable},
		{"unexpected status", http.StatusTeapot, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "nope"}`, tt.status)
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			_, err := c.Toggle(context.Background(), "like", "post-1", "user-1", true)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestClientToggleTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Outlast the client timeout, then return so Close can drain.
		select {
		case <-time.After(200 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	_, err := c.Toggle(context.Background(), "like", "post-1", "user-1", true)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable on timeout", err)
	}
}
