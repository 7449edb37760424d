// Package chat persists conversation turns and serves the chat API.
package chat

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hrmate-ai/hrmate/internal/db"
	"github.com/hrmate-ai/hrmate/internal/dialogue"
)

// Turn is one persisted request/response exchange.
type Turn struct {
	ID        int64             `json:"id"`
	SessionID string            `json:"session_id"`
	UserID    int64             `json:"user_id"`
	Message   string            `json:"message"`
	Response  string            `json:"response"`
	Intent    string            `json:"intent"`
	Snapshot  dialogue.Snapshot `json:"snapshot"`
	CreatedAt time.Time         `json:"created_at"`
}

// Store persists chat turns in SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a store backed by database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// SaveTurn records one exchange along with the conversation snapshot to
// carry into the next turn.
func (s *Store) SaveTurn(ctx context.Context, turn *Turn) error {
	snapshot, err := json.Marshal(turn.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_turns (session_id, user_id, message, response, intent, snapshot)
		VALUES (?, ?, ?, ?, ?, ?)`,
		turn.SessionID, turn.UserID, turn.Message, turn.Response, turn.Intent, string(snapshot))
	if err != nil {
		return fmt.Errorf("insert chat turn: %w", err)
	}

	turn.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("chat turn id: %w", err)
	}
	return nil
}

// LatestSnapshot returns the snapshot saved by the session's most recent
// turn. A session with no turns yields a zero snapshot.
func (s *Store) LatestSnapshot(ctx context.Context, sessionID string, userID int64) (dialogue.Snapshot, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT snapshot FROM chat_turns
		WHERE session_id = ? AND user_id = ?
		ORDER BY id DESC LIMIT 1`, sessionID, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return dialogue.Snapshot{}, nil
	}
	if err != nil {
		return dialogue.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	if !raw.Valid || raw.String == "" {
		return dialogue.Snapshot{}, nil
	}

	var snap dialogue.Snapshot
	if err := json.Unmarshal([]byte(raw.String), &snap); err != nil {
		return dialogue.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// History returns a session's turns, oldest first.
func (s *Store) History(ctx context.Context, sessionID string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, user_id, message, response, intent, snapshot, created_at
		FROM chat_turns WHERE session_id = ? ORDER BY id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list chat turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var turn Turn
		var raw sql.NullString
		if err := rows.Scan(&turn.ID, &turn.SessionID, &turn.UserID, &turn.Message,
			&turn.Response, &turn.Intent, &raw, &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat turn: %w", err)
		}
		if raw.Valid && raw.String != "" {
			if err := json.Unmarshal([]byte(raw.String), &turn.Snapshot); err != nil {
				return nil, fmt.Errorf("unmarshal snapshot: %w", err)
			}
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}
