package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/carebook/carebook-platform/pkg/logging"
)

type fakeSubmitter struct {
	req  SubmitRequest
	id   string
	err  error
	hits int
}

func (f *fakeSubmitter) Submit(_ context.Context, req SubmitRequest) (string, error) {
	f.hits++
	f.req = req
	return f.id, f.err
}

type fakeClearer struct {
	cleared []string
	err     error
}

func (f *fakeClearer) Clear(_ context.Context, providerID string) error {
	f.cleared = append(f.cleared, providerID)
	return f.err
}

func TestConfirmSubmitsAndClearsDraft(t *testing.T) {
	sub := &fakeSubmitter{id: "appt-1"}
	clr := &fakeClearer{}
	svc := NewService(sub, clr, 60, logging.Default())

	id, err := svc.Confirm(context.Background(), ConfirmRequest{
		ProviderID: "prov-1",
		ServiceID:  "svc-1",
		Date:       "2025-12-15",
		Time:       "10:00 am",
		FormData:   map[string]string{"name": "Pat"},
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if id != "appt-1" {
		t.Errorf("appointment id = %q", id)
	}

	if sub.req.Date != "2025-12-15" || sub.req.StartTime != "10:00 am" || sub.req.EndTime != "11:00 am" {
		t.Errorf("submitted request = %+v", sub.req)
	}
	if len(clr.cleared) != 1 || clr.cleared[0] != "prov-1" {
		t.Errorf("cleared drafts = %v", clr.cleared)
	}
}

func TestConfirmValidation(t *testing.T) {
	tests := []struct {
		name string
		req  ConfirmRequest
		want *ValidationError
	}{
		{"missing date", ConfirmRequest{ProviderID: "prov-1", Time: "10:00 am"}, ErrMissingDate},
		{"missing time", ConfirmRequest{ProviderID: "prov-1", Date: "2025-12-15"}, ErrMissingTime},
		{"garbage date", ConfirmRequest{ProviderID: "prov-1", Date: "soon", Time: "10:00 am"}, nil},
		{"garbage time", ConfirmRequest{ProviderID: "prov-1", Date: "2025-12-15", Time: "tenish"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &fakeSubmitter{id: "appt-1"}
			svc := NewService(sub, nil, 60, logging.Default())

			_, err := svc.Confirm(context.Background(), tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if tt.want != nil && verr != tt.want {
				t.Errorf("err = %v, want %v", verr, tt.want)
			}
			// Validation failures never reach the network.
			if sub.hits != 0 {
				t.Errorf("submitter called %d times", sub.hits)
			}
		})
	}
}

func TestConfirmSubmitFailureKeepsDraft(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("booking api down")}
	clr := &fakeClearer{}
	svc := NewService(sub, clr, 60, logging.Default())

	_, err := svc.Confirm(context.Background(), ConfirmRequest{
		ProviderID: "prov-1", Date: "2025-12-15", Time: "10:00 am",
	})
	if err == nil {
		t.Fatal("expected submit error")
	}
	if len(clr.cleared) != 0 {
		t.Errorf("draft cleared despite failed booking: %v", clr.cleared)
	}
}

func TestConfirmDraftClearFailureIsNotFatal(t *testing.T) {
	sub := &fakeSubmitter{id: "appt-1"}
	clr := &fakeClearer{err: errors.New("redis down")}
	svc := NewService(sub, clr, 60, logging.Default())

	id, err := svc.Confirm(context.Background(), ConfirmRequest{
		ProviderID: "prov-1", Date: "2025-12-15", Time: "10:00 am",
	})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if id != "appt-1" {
		t.Errorf("appointment id = %q", id)
	}
}
