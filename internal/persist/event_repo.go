package persist

import (
	"context"
	"fmt"

	"github.com/l1jgo/ticksim/internal/core/event"
	"github.com/l1jgo/ticksim/internal/core/tick"
)

// EventRecord is one row of the simulation event log.
type EventRecord struct {
	Tick    tick.Tick
	Seq     int // order within the tick
	Kind    string
	Actor   uint64 // actor or node id
	Subject uint64 // attacker for damage, 0 otherwise
	Amount  int
	Detail  string
}

// RecordFor converts a bus event into a log record. ok is false for
// events that are not logged.
func RecordFor(ev any) (rec EventRecord, ok bool) {
	switch e := ev.(type) {
	case event.Damaged:
		return EventRecord{Tick: e.Tick, Kind: "damaged", Actor: uint64(e.Actor), Subject: uint64(e.Attacker), Amount: e.Amount}, true
	case event.HealthChanged:
		return EventRecord{Tick: e.Tick, Kind: "health", Actor: uint64(e.Actor), Amount: e.Current}, true
	case event.Died:
		return EventRecord{Tick: e.Tick, Kind: "died", Actor: uint64(e.Actor)}, true
	case event.ActionCompleted:
		return EventRecord{Tick: e.Tick, Kind: "action_completed", Actor: uint64(e.Actor), Detail: e.Kind}, true
	case event.ResourceDepleted:
		return EventRecord{Tick: e.Tick, Kind: "resource_depleted", Actor: uint64(e.Node)}, true
	case event.ResourceRespawned:
		return EventRecord{Tick: e.Tick, Kind: "resource_respawned", Actor: uint64(e.Node)}, true
	}
	return EventRecord{}, false
}

type EventRepo struct {
	db    *DB
	runID string
}

// NewEventRepo writes rows tagged with runID so several runs can share a table.
func NewEventRepo(db *DB, runID string) *EventRepo {
	return &EventRepo{db: db, runID: runID}
}

// WriteEvents atomically writes a batch of records in a single transaction.
func (r *EventRepo) WriteEvents(ctx context.Context, records []EventRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("event log begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range records {
		if _, err := tx.Exec(ctx,
			`INSERT INTO sim_event_log (run_id, tick, seq, kind, actor, subject, amount, detail)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			r.runID, int64(e.Tick), e.Seq, e.Kind, int64(e.Actor), int64(e.Subject), e.Amount, e.Detail,
		); err != nil {
			return fmt.Errorf("event log insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// CountEvents returns how many rows this run has written.
func (r *EventRepo) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sim_event_log WHERE run_id = $1`, r.runID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("event log count: %w", err)
	}
	return n, nil
}
