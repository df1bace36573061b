// Package cache keeps a SQLite snapshot of the last state confirmed by the
// backend, so the CLI can work offline and show stale data when the
// backend is unreachable.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/store"

	_ "modernc.org/sqlite"
)

// FileName is the database file created under the cache directory.
const FileName = "snapshot.db"

const savedAtKey = "saved_at"

// ErrNoSnapshot is returned by Load before anything was saved.
var ErrNoSnapshot = errors.New("no cached snapshot")

// Snapshot persists AppState to SQLite.
type Snapshot struct {
	db   *sql.DB
	path string

	mu        sync.Mutex
	lastSaved *store.AppState
	now       func() time.Time
}

// Option configures a Snapshot.
type Option func(*Snapshot)

// WithClock sets the clock used to stamp saved snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Snapshot) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens (creating if needed) the snapshot database in basePath.
// ":memory:" keeps it in memory.
func Open(basePath string, opts ...Option) (*Snapshot, error) {
	var dbPath string
	if basePath == ":memory:" {
		dbPath = ":memory:"
	} else {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
		dbPath = filepath.Join(basePath, FileName)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// each connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	s := &Snapshot{db: db, path: dbPath, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Path returns the database location.
func (s *Snapshot) Path() string {
	return s.path
}

func (s *Snapshot) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		data TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS users (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		data TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS categories (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		data TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the stored snapshot with state.
func (s *Snapshot) Save(ctx context.Context, state *store.AppState) error {
	if state == nil {
		return errors.New("nil state")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := replaceRows(ctx, tx, "tasks", state.Tasks, func(t models.Task) models.ID { return t.ID }); err != nil {
		return err
	}
	if err := replaceRows(ctx, tx, "users", state.Users, func(u models.User) models.ID { return u.ID }); err != nil {
		return err
	}
	if err := replaceRows(ctx, tx, "categories", state.Categories, func(c models.Category) models.ID { return c.ID }); err != nil {
		return err
	}

	savedAt := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		savedAtKey, savedAt); err != nil {
		return fmt.Errorf("write saved_at: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// replaceRows rewrites table with items in order. table is one of the
// fixed names above.
func replaceRows[T any](ctx context.Context, tx *sql.Tx, table string, items []T, idOf func(T) models.ID) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO "+table+" (position, id, data) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare %s insert: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	for i, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshal %s row %d: %w", table, i, err)
		}
		if _, err := stmt.ExecContext(ctx, i, idOf(item).String(), string(data)); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
	}
	return nil
}

// Load returns the stored snapshot and when it was saved.
func (s *Snapshot) Load(ctx context.Context) (*store.AppState, time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, savedAtKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read saved_at: %w", err)
	}
	savedAt, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse saved_at: %w", err)
	}

	state := store.InitialState()
	if state.Tasks, err = loadRows[models.Task](ctx, s.db, "tasks"); err != nil {
		return nil, time.Time{}, err
	}
	if state.Users, err = loadRows[models.User](ctx, s.db, "users"); err != nil {
		return nil, time.Time{}, err
	}
	if state.Categories, err = loadRows[models.Category](ctx, s.db, "categories"); err != nil {
		return nil, time.Time{}, err
	}
	return state, savedAt, nil
}

func loadRows[T any](ctx context.Context, db *sql.DB, table string) ([]T, error) {
	rows, err := db.QueryContext(ctx, "SELECT data FROM "+table+" ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	out := []T{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		var item T
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, fmt.Errorf("decode %s row: %w", table, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

// Attach saves every new state dispatched to st. Unchanged snapshots are
// skipped. Save failures are logged, never returned to the dispatcher.
// The returned function detaches.
func (s *Snapshot) Attach(st *store.Store) func() {
	return st.Subscribe(func(state *store.AppState) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if state == s.lastSaved {
			return
		}
		if err := s.Save(context.Background(), state); err != nil {
			slog.Warn("failed to save snapshot", "path", s.path, "error", err)
			return
		}
		s.lastSaved = state
	})
}

// Close releases the database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}
