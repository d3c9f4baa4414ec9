package interactions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carebook/carebook-platform/internal/observability/metrics"
	"github.com/carebook/carebook-platform/pkg/logging"
)

var interactionTracer = otel.Tracer("carebook.internal.interactions")

// Transport settles a toggle against the interaction API. active is the
// optimistic post-flip state the server should converge on.
type Transport interface {
	Toggle(ctx context.Context, kind, entityID, userID string, active bool) (*ToggleResponse, error)
}

// EventRecorder captures settled toggles for the audit trail. Recording
// is best effort and never affects toggle state.
type EventRecorder interface {
	RecordToggle(ctx context.Context, kind, entityID, userID, outcome string) error
}

// Coordinator runs the two-phase toggle state machine, one entry per
// entity: Idle -> Pending -> (Reconciled | RolledBack) -> Idle.
//
// Distinct entities toggle independently and concurrently; a second
// toggle on an entity that is still pending is rejected outright.
type Coordinator struct {
	mu       sync.Mutex
	entities map[string]*Entity
	pending  map[string]bool

	transport Transport
	timeout   time.Duration
	logger    *logging.Logger
	metrics   *metrics.InteractionMetrics
	events    EventRecorder
	wg        sync.WaitGroup
	now       func() time.Time
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithInteractionMetrics attaches toggle metrics.
func WithInteractionMetrics(m *metrics.InteractionMetrics) CoordinatorOption {
	return func(c *Coordinator) { c.metrics = m }
}

// WithEventRecorder attaches an audit recorder for settled toggles.
func WithEventRecorder(r EventRecorder) CoordinatorOption {
	return func(c *Coordinator) { c.events = r }
}

// NewCoordinator creates a coordinator. A zero timeout falls back to 10
// seconds for the settlement call.
func NewCoordinator(transport Transport, timeout time.Duration, logger *logging.Logger, opts ...CoordinatorOption) *Coordinator {
	if transport == nil {
		panic("interactions: transport required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Coordinator{
		entities:  make(map[string]*Entity),
		pending:   make(map[string]bool),
		transport: transport,
		timeout:   timeout,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func stateKey(kind, entityID string) string {
	return kind + ":" + entityID
}

// Seed installs the known server state for an entity, typically from a
// list response, so toggles start from real counts instead of zero.
// Seeding never overwrites an entity with a toggle in flight.
func (c *Coordinator) Seed(e Entity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := stateKey(e.Kind, e.ID)
	if c.pending[key] {
		return
	}
	stored := e.clone()
	c.entities[key] = &stored
}

// Get returns the current local state of an entity and whether a toggle
// is in flight. ok is false for an entity never seen.
func (c *Coordinator) Get(kind, entityID string) (Entity, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := stateKey(kind, entityID)
	e, ok := c.entities[key]
	if !ok {
		return Entity{}, false, false
	}
	return e.clone(), c.pending[key], true
}

// Toggle optimistically flips an entity for a user and dispatches the
// settlement call. The returned Entity is the optimistic post-flip
// state. The flip has already happened when Toggle returns nil; the
// remote call settles in the background.
//
// A context that is already done makes Toggle a no-op: no state is
// touched and no call is dispatched.
func (c *Coordinator) Toggle(ctx context.Context, kind, entityID, userID string) (Entity, error) {
	if err := ctx.Err(); err != nil {
		return Entity{}, fmt.Errorf("interactions: %w: %v", ErrCancelled, err)
	}

	_, span := interactionTracer.Start(ctx, "interactions.toggle")
	defer span.End()
	span.SetAttributes(
		attribute.String("carebook.interaction_kind", kind),
		attribute.String("carebook.entity_id", entityID),
	)

	c.mu.Lock()
	key := stateKey(kind, entityID)

	if c.pending[key] {
		c.mu.Unlock()
		c.metrics.ObserveToggle(kind, "rejected")
		return Entity{}, fmt.Errorf("interactions: %s: %w", entityID, ErrTogglePending)
	}

	e, ok := c.entities[key]
	if !ok {
		e = &Entity{ID: entityID, Kind: kind}
		c.entities[key] = e
	}

	snapshot := e.clone()

	e.Toggled = !e.Toggled
	if e.Toggled {
		e.addParticipant(userID)
		e.Count++
	} else {
		e.removeParticipant(userID)
		if e.Count > 0 {
			e.Count--
		}
	}
	optimistic := e.clone()
	c.pending[key] = true
	c.mu.Unlock()

	started := c.now()
	c.wg.Add(1)
	go c.settle(kind, entityID, userID, key, snapshot, optimistic.Toggled, started)

	return optimistic, nil
}

// settle runs the remote call and applies reconciliation or rollback.
// It deliberately uses a fresh context: the patient navigating away must
// not abort a toggle whose optimistic flip already happened.
func (c *Coordinator) settle(kind, entityID, userID, key string, snapshot Entity, active bool, started time.Time) {
	defer c.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	resp, err := c.transport.Toggle(ctx, kind, entityID, userID, active)

	c.mu.Lock()
	delete(c.pending, key)
	outcome := "reconciled"
	if err != nil {
		restored := snapshot.clone()
		c.entities[key] = &restored
		outcome = "rolled_back"
	} else if e, ok := c.entities[key]; ok {
		e.reconcile(resp)
	}
	c.mu.Unlock()

	c.metrics.ObserveToggle(kind, outcome)
	c.metrics.ObserveSettleLatency(kind, c.now().Sub(started).Seconds())

	if err != nil {
		c.logger.Warn("toggle rolled back",
			"kind", kind, "entity_id", entityID, "reason", classify(err).Error(), "error", err)
	}

	if c.events != nil {
		if recErr := c.events.RecordToggle(ctx, kind, entityID, userID, outcome); recErr != nil {
			c.logger.Warn("failed to record toggle event",
				"kind", kind, "entity_id", entityID, "error", recErr)
		}
	}
}

// classify maps a settlement error onto its user-facing kind.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, ErrForbidden):
		return ErrForbidden
	default:
		return ErrUnavailable
	}
}

// Wait blocks until every in-flight settlement has finished. Used on
// shutdown so rollbacks and audit events are not lost.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}
