package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// CallbackLogEntry is one callback received from the gateway.
type CallbackLogEntry struct {
	ID         int64
	AppID      string
	Wxid       string
	TypeName   string
	Payload    json.RawMessage
	ReceivedAt time.Time
}

// CallbackLogStore persists received callbacks.
type CallbackLogStore struct {
	db *sql.DB
}

// Insert writes an entry and fills in its ID and ReceivedAt.
func (s *CallbackLogStore) Insert(ctx context.Context, e *CallbackLogEntry) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO callback_log (app_id, wxid, type_name, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, received_at
	`, e.AppID, e.Wxid, e.TypeName, []byte(e.Payload)).Scan(&e.ID, &e.ReceivedAt)
	if err != nil {
		return fmt.Errorf("insert callback log: %w", err)
	}
	return nil
}

// Recent returns the newest entries for appID, newest first.
func (s *CallbackLogStore) Recent(ctx context.Context, appID string, limit int) ([]*CallbackLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, app_id, wxid, type_name, payload, received_at
		FROM callback_log
		WHERE app_id = $1
		ORDER BY received_at DESC LIMIT $2
	`, appID, limit)
	if err != nil {
		return nil, fmt.Errorf("query callback log: %w", err)
	}
	defer rows.Close()

	var entries []*CallbackLogEntry
	for rows.Next() {
		e := &CallbackLogEntry{}
		var payload []byte
		if err := rows.Scan(&e.ID, &e.AppID, &e.Wxid, &e.TypeName, &payload, &e.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan callback log: %w", err)
		}
		e.Payload = json.RawMessage(payload)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
