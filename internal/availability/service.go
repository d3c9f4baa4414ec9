package availability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carebook/carebook-platform/internal/calendar"
	"github.com/carebook/carebook-platform/internal/observability/metrics"
	"github.com/carebook/carebook-platform/internal/providers"
	"github.com/carebook/carebook-platform/internal/schedule"
	"github.com/carebook/carebook-platform/pkg/logging"
)

var availabilityTracer = otel.Tracer("carebook.internal.availability")

// ProviderDirectory supplies provider records (and with them, schedules).
type ProviderDirectory interface {
	Provider(ctx context.Context, providerID string) (*providers.Provider, error)
}

// Service is the single shared slot engine behind every availability
// surface: the home widget preview, the booking modal, and the calendar
// views all go through here instead of reimplementing the algorithm.
type Service struct {
	directory       ProviderDirectory
	durationMinutes int
	stepMinutes     int
	horizonDays     int
	logger          *logging.Logger
	metrics         *metrics.AvailabilityMetrics
	now             func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithMetrics attaches availability metrics.
func WithMetrics(m *metrics.AvailabilityMetrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs the availability service.
func NewService(directory ProviderDirectory, durationMinutes, stepMinutes, horizonDays int, logger *logging.Logger, opts ...ServiceOption) *Service {
	if directory == nil {
		panic("availability: provider directory required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if durationMinutes <= 0 {
		durationMinutes = 60
	}
	if stepMinutes <= 0 {
		stepMinutes = 60
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	s := &Service{
		directory:       directory,
		durationMinutes: durationMinutes,
		stepMinutes:     stepMinutes,
		horizonDays:     horizonDays,
		logger:          logger,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DayBucket is one date's worth of bookable slot labels.
type DayBucket struct {
	Date  schedule.Date `json:"date"`
	Slots []string      `json:"slots"`
}

// Buckets groups availability the way the booking UI presents it.
type Buckets struct {
	Today         DayBucket  `json:"today"`
	Tomorrow      DayBucket  `json:"tomorrow"`
	NextAvailable *DayBucket `json:"next_available,omitempty"`
}

// SlotsForDate returns the bookable slots for a provider on one date,
// with already-passed slots removed when the date is today.
func (s *Service) SlotsForDate(ctx context.Context, providerID string, date schedule.Date) ([]Slot, error) {
	ctx, span := availabilityTracer.Start(ctx, "availability.slots")
	defer span.End()
	span.SetAttributes(
		attribute.String("carebook.provider_id", providerID),
		attribute.String("carebook.date", date.String()),
	)

	sched, err := s.scheduleFor(ctx, providerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return s.slotsForDate(sched, date), nil
}

func (s *Service) slotsForDate(sched schedule.Schedule, date schedule.Date) []Slot {
	entry, ok := sched.EntryFor(date.Weekday())
	if !ok {
		return nil
	}
	slots := GenerateSlots(entry, s.durationMinutes, s.stepMinutes)
	return ExcludePastForToday(slots, date, s.now())
}

// Buckets returns today/tomorrow/next-available slot labels in one shot.
func (s *Service) Buckets(ctx context.Context, providerID string) (*Buckets, error) {
	ctx, span := availabilityTracer.Start(ctx, "availability.buckets")
	defer span.End()
	span.SetAttributes(attribute.String("carebook.provider_id", providerID))

	sched, err := s.scheduleFor(ctx, providerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	today := schedule.DateFromTime(s.now())
	tomorrow := today.AddDays(1)

	b := &Buckets{
		Today:    DayBucket{Date: today, Slots: Labels(s.slotsForDate(sched, today))},
		Tomorrow: DayBucket{Date: tomorrow, Slots: Labels(s.slotsForDate(sched, tomorrow))},
	}

	if next := FindNextAvailable(today, sched, s.horizonDays); next != nil {
		b.NextAvailable = &DayBucket{Date: *next, Slots: Labels(s.slotsForDate(sched, *next))}
	}

	s.metrics.ObserveSlots("buckets", len(b.Today.Slots)+len(b.Tomorrow.Slots))
	return b, nil
}

// NextAvailable returns the next open date after today, or nil when none
// falls within the horizon.
func (s *Service) NextAvailable(ctx context.Context, providerID string) (*schedule.Date, error) {
	sched, err := s.scheduleFor(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return FindNextAvailable(schedule.DateFromTime(s.now()), sched, s.horizonDays), nil
}

// Grid builds the calendar cells for a provider around a reference date.
func (s *Service) Grid(ctx context.Context, providerID string, mode calendar.ViewMode, ref schedule.Date, selected *schedule.Date) ([]calendar.Cell, error) {
	ctx, span := availabilityTracer.Start(ctx, "availability.grid")
	defer span.End()
	span.SetAttributes(
		attribute.String("carebook.provider_id", providerID),
		attribute.String("carebook.view_mode", string(mode)),
	)

	sched, err := s.scheduleFor(ctx, providerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	today := schedule.DateFromTime(s.now())
	return calendar.BuildGrid(ref, mode, sched, today, selected), nil
}

func (s *Service) scheduleFor(ctx context.Context, providerID string) (schedule.Schedule, error) {
	provider, err := s.directory.Provider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return provider.Schedule()
}
