package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rundown-cli/internal/model"
)

// LoadItems returns the persisted canonical order.
func (s Store) LoadItems(ctx context.Context) ([]model.Item, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT json FROM items ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var it model.Item
		if err := json.Unmarshal([]byte(raw), &it); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SaveItems replaces the persisted canonical order. Position is the only
// ordering truth; it is rewritten wholesale on every save (rundowns are a few
// hundred rows, not millions).
func (s Store) SaveItems(ctx context.Context, items []model.Item) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return err
	}
	now := time.Now().UnixMilli()
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items
		(id, position, kind, name, duration, json, updated_at_unixms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, it := range items {
		raw, err := json.Marshal(it)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, it.ID, i, string(it.Kind), it.Name, it.Duration, string(raw), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}
