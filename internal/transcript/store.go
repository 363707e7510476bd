// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/budgetchat-tui/internal/model"
	"github.com/jeranaias/budgetchat-tui/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound  = errors.New("transcript session not found")
	ErrAmbiguous = errors.New("session id prefix matches more than one session")
)

// previewWidth is the display width of SessionMeta.Preview.
const previewWidth = 60

// =============================================================================
// TYPES
// =============================================================================

// SessionMeta describes one recorded session for listing.
type SessionMeta struct {
	ID           string    `json:"id"`
	APIBase      string    `json:"api_base"`
	StartedAt    time.Time `json:"started_at"`
	MessageCount int       `json:"message_count"`
	Preview      string    `json:"preview"` // first user message, truncated
}

// Conversation is one recorded session with its messages.
type Conversation struct {
	SessionMeta
	Messages []model.Message `json:"messages"`
}

// =============================================================================
// STORE
// =============================================================================

// Store is a SQLite-backed transcript database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the transcript database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}

	// Single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StartSession creates a new session and returns a Recorder bound to it.
func (s *Store) StartSession(ctx context.Context, apiBase string, at time.Time) (*Recorder, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, api_base, started_at) VALUES (?, ?, ?)",
		id, apiBase, at.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to start transcript session: %w", err)
	}
	return &Recorder{store: s, id: id}, nil
}

// List returns recorded sessions, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]SessionMeta, error) {
	query := `
SELECT s.id, s.api_base, s.started_at,
       (SELECT COUNT(*) FROM messages m WHERE m.session_id = s.id),
       COALESCE((SELECT m.content FROM messages m
                 WHERE m.session_id = s.id AND m.role = 'user'
                 ORDER BY m.id LIMIT 1), '')
FROM sessions s
ORDER BY s.started_at DESC, s.rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var metas []SessionMeta
	for rows.Next() {
		var (
			meta    SessionMeta
			started int64
			first   string
		)
		if err := rows.Scan(&meta.ID, &meta.APIBase, &started, &meta.MessageCount, &first); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		meta.StartedAt = time.UnixMilli(started)
		meta.Preview = util.Truncate(util.FirstLine(first), previewWidth)
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}

// Resolve expands an id or unique id prefix to a full session id.
func (s *Store) Resolve(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM sessions WHERE substr(id, 1, ?) = ? LIMIT 2", len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("failed to resolve session: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
	}
}

// Messages returns a session's messages in recording order. id may be a
// unique prefix.
func (s *Store) Messages(ctx context.Context, id string) ([]model.Message, error) {
	full, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT role, content, created_at FROM messages WHERE session_id = ? ORDER BY id", full)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var (
			role, content string
			created       int64
		)
		if err := rows.Scan(&role, &content, &created); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, model.Message{
			Role:      model.ParseRole(role),
			Content:   content,
			Timestamp: time.UnixMilli(created),
		})
	}
	return msgs, rows.Err()
}

// Load returns a whole session. id may be a unique prefix.
func (s *Store) Load(ctx context.Context, id string) (*Conversation, error) {
	full, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	conv := &Conversation{}
	var started int64
	err = s.db.QueryRowContext(ctx,
		"SELECT id, api_base, started_at FROM sessions WHERE id = ?", full).
		Scan(&conv.ID, &conv.APIBase, &started)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	conv.StartedAt = time.UnixMilli(started)

	if conv.Messages, err = s.Messages(ctx, full); err != nil {
		return nil, err
	}
	conv.MessageCount = len(conv.Messages)
	for _, m := range conv.Messages {
		if m.IsUser() {
			conv.Preview = util.Truncate(util.FirstLine(m.Content), previewWidth)
			break
		}
	}
	return conv, nil
}

// =============================================================================
// RECORDER
// =============================================================================

// Recorder appends messages to one session.
type Recorder struct {
	store *Store
	id    string
}

// SessionID returns the session's UUID.
func (r *Recorder) SessionID() string {
	return r.id
}

// Record appends msg to the session.
func (r *Recorder) Record(ctx context.Context, msg model.Message) error {
	_, err := r.store.db.ExecContext(ctx,
		"INSERT INTO messages (session_id, role, content, created_at) VALUES (?, ?, ?, ?)",
		r.id, msg.Role.String(), msg.Content, msg.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record message: %w", err)
	}
	return nil
}
