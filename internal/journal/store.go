// Package journal keeps a local history of received check-in summaries.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS checkins (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	room        TEXT    NOT NULL,
	html        TEXT    NOT NULL,
	received_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checkins_received_at ON checkins(received_at);
`

// Entry is one received summary.
type Entry struct {
	ID         int64
	Room       string
	HTML       string
	ReceivedAt time.Time
}

// Store persists entries in SQLite.
type Store struct {
	db    *sql.DB
	clock clockwork.Clock
}

// Open opens (and creates if needed) the journal at path.
func Open(path string) (*Store, error) {
	return OpenWithClock(path, clockwork.NewRealClock())
}

// OpenWithClock is Open with an explicit clock for timestamps.
func OpenWithClock(path string, clock clockwork.Clock) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)")
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate journal: %w", err)
	}

	return &Store{db: db, clock: clock}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a summary. A zero ReceivedAt is stamped with the current time.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = s.clock.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO checkins(room, html, received_at) VALUES(?, ?, ?)`,
		e.Room, e.HTML, e.ReceivedAt.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, room, html, received_at FROM checkins ORDER BY received_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			ms int64
		)
		if err := rows.Scan(&e.ID, &e.Room, &e.HTML, &ms); err != nil {
			return nil, err
		}
		e.ReceivedAt = time.UnixMilli(ms)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
