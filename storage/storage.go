// Package storage persists tracked sessions to SQLite, so a session's
// inventory and flags survive restarts and can be re-applied to a
// freshly loaded ruleset.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/trackmap-xyz/go-trackmap/inventory"
)

// ErrSessionNotFound is returned when a session ID has no record.
var ErrSessionNotFound = errors.New("storage: session not found")

// Store handles SQLite operations for session persistence.
type Store struct {
	db *sql.DB
}

// Session is a persisted session record. Ruleset holds the world
// signature the session belongs to; loading a session into a different
// ruleset is allowed but worth surfacing to the user.
type Session struct {
	ID        string    `json:"id"`
	Ruleset   string    `json:"ruleset"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a Store at the given database path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		ruleset TEXT NOT NULL,
		note TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS capabilities (
		session_id TEXT NOT NULL,
		name TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (session_id, name),
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE TABLE IF NOT EXISTS flags (
		session_id TEXT NOT NULL,
		name TEXT NOT NULL,
		value INTEGER NOT NULL,
		PRIMARY KEY (session_id, name),
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_ruleset ON sessions(ruleset);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSession creates a new session record and returns its ID.
func (s *Store) CreateSession(ruleset, note string) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, ruleset, note, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, ruleset, note, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("storage: create session: %w", err)
	}
	return id, nil
}

// SaveState replaces the stored inventory and flags for a session.
func (s *Store) SaveState(sessionID string, items inventory.Inventory, flags map[string]bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM capabilities WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("storage: clear capabilities: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM flags WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("storage: clear flags: %w", err)
	}

	for _, name := range items.SortedKeys() {
		if _, err := tx.Exec(
			`INSERT INTO capabilities (session_id, name, count) VALUES (?, ?, ?)`,
			sessionID, name, items[name],
		); err != nil {
			return fmt.Errorf("storage: save capability %q: %w", name, err)
		}
	}
	for name, value := range flags {
		if _, err := tx.Exec(
			`INSERT INTO flags (session_id, name, value) VALUES (?, ?, ?)`,
			sessionID, name, value,
		); err != nil {
			return fmt.Errorf("storage: save flag %q: %w", name, err)
		}
	}

	if _, err := tx.Exec(
		`UPDATE sessions SET updated_at = ? WHERE id = ?`,
		time.Now().UTC(), sessionID,
	); err != nil {
		return fmt.Errorf("storage: touch session: %w", err)
	}

	return tx.Commit()
}

// LoadState retrieves the stored inventory and flags for a session.
func (s *Store) LoadState(sessionID string) (inventory.Inventory, map[string]bool, error) {
	if _, err := s.GetSession(sessionID); err != nil {
		return nil, nil, err
	}

	items := inventory.New()
	rows, err := s.db.Query(
		`SELECT name, count FROM capabilities WHERE session_id = ?`, sessionID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: load capabilities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, nil, fmt.Errorf("storage: scan capability: %w", err)
		}
		items[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("storage: load capabilities: %w", err)
	}

	flags := make(map[string]bool)
	flagRows, err := s.db.Query(
		`SELECT name, value FROM flags WHERE session_id = ?`, sessionID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: load flags: %w", err)
	}
	defer flagRows.Close()
	for flagRows.Next() {
		var name string
		var value bool
		if err := flagRows.Scan(&name, &value); err != nil {
			return nil, nil, fmt.Errorf("storage: scan flag: %w", err)
		}
		flags[name] = value
	}
	if err := flagRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("storage: load flags: %w", err)
	}

	return items, flags, nil
}

// GetSession retrieves a session record by ID.
func (s *Store) GetSession(id string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, ruleset, note, created_at, updated_at FROM sessions WHERE id = ?`, id,
	)
	var sess Session
	var note sql.NullString
	err := row.Scan(&sess.ID, &sess.Ruleset, &note, &sess.CreatedAt, &sess.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get session: %w", err)
	}
	if note.Valid {
		sess.Note = note.String
	}
	return &sess, nil
}

// ListSessions returns sessions, newest first. An empty ruleset
// signature lists all sessions.
func (s *Store) ListSessions(ruleset string) ([]*Session, error) {
	query := `SELECT id, ruleset, note, created_at, updated_at FROM sessions ORDER BY updated_at DESC`
	args := []any{}
	if ruleset != "" {
		query = `SELECT id, ruleset, note, created_at, updated_at FROM sessions
		 WHERE ruleset = ? ORDER BY updated_at DESC`
		args = append(args, ruleset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var sess Session
		var note sql.NullString
		if err := rows.Scan(&sess.ID, &sess.Ruleset, &note, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("storage: scan session: %w", err)
		}
		if note.Valid {
			sess.Note = note.String
		}
		sessions = append(sessions, &sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and its stored state.
func (s *Store) DeleteSession(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM capabilities WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("storage: delete capabilities: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM flags WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("storage: delete flags: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("storage: delete session: %w", err)
	}
	return tx.Commit()
}
