// Package events persists the settlement audit trail: one row per
// toggle that reconciled or rolled back.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ToggleEvent is one settled toggle.
type ToggleEvent struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	EntityID  string    `json:"entity_id"`
	UserID    string    `json:"user_id"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store writes and reads toggle events.
type Store struct {
	pool querier
}

// NewStore creates an event store backed by a pgx pool.
func NewStore(pool *pgxpool.Pool) *Store {
	if pool == nil {
		panic("events: pgx pool required")
	}
	return &Store{pool: pool}
}

func newStoreWithExec(exec querier) *Store {
	if exec == nil {
		panic("events: exec required")
	}
	return &Store{pool: exec}
}

// RecordToggle inserts one settled toggle. It satisfies the
// coordinator's EventRecorder.
func (s *Store) RecordToggle(ctx context.Context, kind, entityID, userID, outcome string) error {
	query := `
		INSERT INTO interaction_events (id, kind, entity_id, user_id, outcome)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.pool.Exec(ctx, query, uuid.New(), kind, entityID, userID, outcome); err != nil {
		return fmt.Errorf("events: insert toggle event: %w", err)
	}
	return nil
}

// RecentByEntity returns the latest settled toggles for one entity,
// newest first.
func (s *Store) RecentByEntity(ctx context.Context, kind, entityID string, limit int32) ([]ToggleEvent, error) {
	query := `
		SELECT id, kind, entity_id, user_id, outcome, created_at
		FROM interaction_events
		WHERE kind = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := s.pool.Query(ctx, query, kind, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("events: fetch toggle events: %w", err)
	}
	defer rows.Close()

	var out []ToggleEvent
	for rows.Next() {
		var e ToggleEvent
		if err := rows.Scan(&e.ID, &e.Kind, &e.EntityID, &e.UserID, &e.Outcome, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("events: scan toggle event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
