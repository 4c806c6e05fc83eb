// Package viewlog keeps a local history of which photos were opened in the
// lightbox.
package viewlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS views (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session    TEXT NOT NULL,
	source     TEXT NOT NULL,
	caption    TEXT NOT NULL DEFAULT '',
	position   INTEGER NOT NULL,
	total      INTEGER NOT NULL,
	viewed_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_views_source ON views(source);
`

// View is one lightbox display. Position is zero-based.
type View struct {
	Source   string
	Caption  string
	Position int
	Total    int
	At       time.Time
}

// Stat aggregates views per source.
type Stat struct {
	Source   string
	Caption  string
	Views    int
	LastSeen time.Time
}

// Recorder receives lightbox views.
type Recorder interface {
	Record(ctx context.Context, v View) error
	Close() error
}

// Nop discards every view. Used when the history is disabled.
type Nop struct{}

func (Nop) Record(context.Context, View) error { return nil }
func (Nop) Close() error                       { return nil }

// Store is a Recorder backed by SQLite.
type Store struct {
	db      *sql.DB
	session string
}

var _ Recorder = (*Store)(nil)

// Open opens or creates the database at path. ":memory:" is accepted.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("viewlog: empty path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create viewlog dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open viewlog: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create viewlog schema: %w", err)
	}
	return &Store{db: db, session: uuid.NewString()}, nil
}

// Session identifies this process's views.
func (s *Store) Session() string {
	return s.session
}

// Record appends v. A zero At is stamped with the current time.
func (s *Store) Record(ctx context.Context, v View) error {
	if v.Source == "" {
		return errors.New("viewlog: view without source")
	}
	at := v.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO views (session, source, caption, position, total, viewed_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.session, v.Source, v.Caption, v.Position, v.Total, at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record view %s: %w", v.Source, err)
	}
	return nil
}

// Top returns the most viewed sources, most views first and ties by source.
// limit <= 0 returns everything.
func (s *Store) Top(ctx context.Context, limit int) ([]Stat, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, MAX(caption), COUNT(*), MAX(viewed_at)
		FROM views
		GROUP BY source
		ORDER BY COUNT(*) DESC, source ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query views: %w", err)
	}
	defer rows.Close()

	var stats []Stat
	for rows.Next() {
		var st Stat
		var last string
		if err := rows.Scan(&st.Source, &st.Caption, &st.Views, &last); err != nil {
			return nil, fmt.Errorf("scan view: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, last); err == nil {
			st.LastSeen = ts
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// Sessions counts distinct sessions that recorded at least one view.
func (s *Store) Sessions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT session) FROM views`).Scan(&n)
	return n, err
}

func (s *Store) Close() error {
	return s.db.Close()
}
