package store

import (
	"context"
	"encoding/json"
	"time"

	"rundown-cli/internal/model"
	"rundown-cli/internal/rundown"
)

// MutationEvent mirrors the Document's four entry points, so a remote edit
// replayed from the log goes through exactly the same code path as a local
// one, so projection, selection and numbering re-derive uniformly either way.
type MutationEvent struct {
	Seq int64     `json:"-"`
	TS  time.Time `json:"ts"`
	Op  string    `json:"op"` // insert|remove|move|update

	Item  *model.Item    `json:"item,omitempty"`  // insert
	At    int            `json:"at,omitempty"`    // insert
	ID    string         `json:"id,omitempty"`    // remove, update
	IDs   []string       `json:"ids,omitempty"`   // move
	To    int            `json:"to,omitempty"`    // move
	Patch *rundown.Patch `json:"patch,omitempty"` // update
}

// AppendEvent records a mutation in the shared log.
func (s Store) AppendEvent(ctx context.Context, ev MutationEvent) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if ev.TS.IsZero() {
		ev.TS = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO events (ts_unixms, op, payload) VALUES (?, ?, ?)`,
		ev.TS.UnixMilli(), ev.Op, string(payload))
	return err
}

// EventsSince returns events with seq > after, oldest first.
func (s Store) EventsSince(ctx context.Context, after int64) ([]MutationEvent, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT seq, payload FROM events WHERE seq > ? ORDER BY seq ASC`, after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MutationEvent
	for rows.Next() {
		var seq int64
		var payload string
		if err := rows.Scan(&seq, &payload); err != nil {
			return nil, err
		}
		var ev MutationEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, err
		}
		ev.Seq = seq
		out = append(out, ev)
	}
	return out, rows.Err()
}

// LastEventSeq returns the seq of the newest event, or 0 on an empty log.
func (s Store) LastEventSeq(ctx context.Context) (int64, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var seq int64
	err = db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM events`).Scan(&seq)
	return seq, err
}

// Apply replays one event through the document's entry points. Unknown ops
// and missing ids are tolerated no-ops: events expressing state that already
// changed underneath us must not corrupt the order.
func Apply(d *rundown.Document, ev MutationEvent) error {
	switch ev.Op {
	case "insert":
		if ev.Item == nil {
			return nil
		}
		if _, exists := d.Item(ev.Item.ID); exists {
			return nil
		}
		return d.Insert(*ev.Item, ev.At)
	case "remove":
		err := d.Remove(ev.ID)
		if _, ok := err.(rundown.NotFoundError); ok {
			return nil
		}
		return err
	case "move":
		err := d.Move(ev.IDs, ev.To)
		if _, ok := err.(rundown.InvalidMoveError); ok {
			return nil
		}
		return err
	case "update":
		if ev.Patch == nil {
			return nil
		}
		err := d.Update(ev.ID, *ev.Patch)
		if _, ok := err.(rundown.NotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}
