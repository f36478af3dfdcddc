package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Session is the locally remembered state of one gateway device. The
// gateway insists that an account logs in again with the appId it was
// allocated the first time, so the row outlives logouts.
type Session struct {
	AppID       string
	Token       string
	Wxid        string
	Nickname    string
	UUID        string
	CallbackURL string
	UpdatedAt   time.Time
}

// SessionStore provides operations for gateway sessions.
type SessionStore struct {
	db *sql.DB
}

// Upsert inserts or replaces the session keyed by AppID.
func (s *SessionStore) Upsert(ctx context.Context, sess *Session) error {
	if sess.AppID == "" {
		return errors.New("upsert session: empty app id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gewe_session (app_id, token, wxid, nickname, uuid, callback_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (app_id) DO UPDATE SET
			token = EXCLUDED.token,
			wxid = EXCLUDED.wxid,
			nickname = EXCLUDED.nickname,
			uuid = EXCLUDED.uuid,
			callback_url = EXCLUDED.callback_url,
			updated_at = NOW()
	`, sess.AppID, sess.Token, sess.Wxid, sess.Nickname, sess.UUID, sess.CallbackURL)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Get returns the session for appID, or nil when there is none.
func (s *SessionStore) Get(ctx context.Context, appID string) (*Session, error) {
	sess := &Session{}
	err := s.db.QueryRowContext(ctx, `
		SELECT app_id, token, wxid, nickname, uuid, callback_url, updated_at
		FROM gewe_session WHERE app_id = $1
	`, appID).Scan(
		&sess.AppID, &sess.Token, &sess.Wxid, &sess.Nickname,
		&sess.UUID, &sess.CallbackURL, &sess.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// Latest returns the most recently updated session, or nil.
func (s *SessionStore) Latest(ctx context.Context) (*Session, error) {
	sessions, err := s.list(ctx, 1)
	if err != nil || len(sessions) == 0 {
		return nil, err
	}
	return sessions[0], nil
}

// List returns all sessions, most recently updated first.
func (s *SessionStore) List(ctx context.Context) ([]*Session, error) {
	return s.list(ctx, 0)
}

func (s *SessionStore) list(ctx context.Context, limit int) ([]*Session, error) {
	query := `
		SELECT app_id, token, wxid, nickname, uuid, callback_url, updated_at
		FROM gewe_session ORDER BY updated_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		if err := rows.Scan(&sess.AppID, &sess.Token, &sess.Wxid, &sess.Nickname,
			&sess.UUID, &sess.CallbackURL, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Delete removes a session.
func (s *SessionStore) Delete(ctx context.Context, appID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM gewe_session WHERE app_id = $1", appID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
