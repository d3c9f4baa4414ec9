package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestStoreRecordAndFetch(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	store := newStoreWithExec(mock)

	mock.ExpectExec("INSERT INTO interaction_events").
		WithArgs(pgxmock.AnyArg(), "like", "post-1", "user-1", "reconciled").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	if err := store.RecordToggle(context.Background(), "like", "post-1", "user-1", "reconciled"); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	now := time.Now().UTC()
	id := uuid.New()
	rows := pgxmock.NewRows([]string{"id", "kind", "entity_id", "user_id", "outcome", "created_at"}).
		AddRow(id, "like", "post-1", "user-1", "rolled_back", now)
	mock.ExpectQuery("SELECT id").WithArgs("like", "post-1", int32(10)).WillReturnRows(rows)

	events, err := store.RecentByEntity(context.Background(), "like", "post-1", 10)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(events) != 1 || events[0].ID != id || events[0].Outcome != "rolled_back" {
		t.Fatalf("unexpected events: %#v", events)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreRecordToggleError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	store := newStoreWithExec(mock)

	mock.ExpectExec("INSERT INTO interaction_events").
		WithArgs(pgxmock.AnyArg(), "like", "post-1", "user-1", "reconciled").
		WillReturnError(context.DeadlineExceeded)

	if err := store.RecordToggle(context.Background(), "like", "post-1", "user-1", "reconciled"); err == nil {
		t.Fatal("expected insert error to propagate")
	}
}
