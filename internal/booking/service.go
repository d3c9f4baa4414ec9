package booking

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carebook/carebook-platform/internal/schedule"
	"github.com/carebook/carebook-platform/pkg/logging"
)

var bookingTracer = otel.Tracer("carebook.internal.booking")

// Submitter sends a completed booking to the booking API.
type Submitter interface {
	Submit(ctx context.Context, req SubmitRequest) (string, error)
}

// DraftClearer removes the saved draft once its booking is confirmed.
type DraftClearer interface {
	Clear(ctx context.Context, providerID string) error
}

// ConfirmRequest is a booking as assembled from the draft and the form.
type ConfirmRequest struct {
	ProviderID string            `json:"provider_id"`
	ServiceID  string            `json:"service_id"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	FormData   map[string]string `json:"form_data,omitempty"`
}

// Service validates and submits bookings. Validation failures never
// reach the network; a confirmed booking clears its draft.
type Service struct {
	submitter       Submitter
	drafts          DraftClearer
	durationMinutes int
	logger          *logging.Logger
}

// NewService constructs a booking service.
func NewService(submitter Submitter, drafts DraftClearer, durationMinutes int, logger *logging.Logger) *Service {
	if submitter == nil {
		panic("booking: submitter required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if durationMinutes <= 0 {
		durationMinutes = 60
	}
	return &Service{submitter: submitter, drafts: drafts, durationMinutes: durationMinutes, logger: logger}
}

// Confirm validates the request, submits it, and clears the provider's
// draft. The returned string is the created appointment id.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (string, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.confirm")
	defer span.End()
	span.SetAttributes(attribute.String("carebook.provider_id", req.ProviderID))

	if req.Date == "" {
		return "", ErrMissingDate
	}
	if req.Time == "" {
		return "", ErrMissingTime
	}

	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		return "", &ValidationError{Field: "date"}
	}
	start, err := schedule.ParseTimeOfDay(req.Time)
	if err != nil {
		return "", &ValidationError{Field: "time"}
	}

	end := start + schedule.TimeOfDay(s.durationMinutes)
	if end >= schedule.MinutesPerDay {
		end = schedule.MinutesPerDay - 1
	}

	appointmentID, err := s.submitter.Submit(ctx, SubmitRequest{
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
		Date:       date.String(),
		StartTime:  start.Format(),
		EndTime:    end.Format(),
		FormData:   req.FormData,
	})
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("booking: confirm for %s: %w", req.ProviderID, err)
	}

	if s.drafts != nil {
		if err := s.drafts.Clear(ctx, req.ProviderID); err != nil {
			// The booking exists; a stale draft is only cosmetic.
			s.logger.Warn("failed to clear draft after confirmation",
				"provider_id", req.ProviderID, "appointment_id", appointmentID, "error", err)
		}
	}

	s.logger.Info("booking confirmed",
		"provider_id", req.ProviderID, "appointment_id", appointmentID, "date", date.String())
	return appointmentID, nil
}
