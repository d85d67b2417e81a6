package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okian/heropick/internal/domain/model"
)

// SQLiteStore keeps a snapshot of the catalog and the matchup table.
type SQLiteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema exists. ":memory:" is accepted for tests.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: create data directory: %w", ErrStore, err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStore, path, err)
	}
	// one connection: a second one would see a different :memory: database
	// and SQLite serialises writers anyway
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrStore, path, err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS heroes (
			name TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			stratz_tags TEXT NOT NULL,
			custom_tags TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS matchups (
			hero TEXT NOT NULL,
			kind TEXT NOT NULL,
			other TEXT NOT NULL,
			value REAL NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (hero, kind, other)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matchups_hero ON matchups(hero)`,
	}
	for _, q := range queries {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("%w: migrate: %w", ErrStore, err)
		}
	}
	return nil
}

func (s *SQLiteStore) conn() (*sql.DB, error) {
	if s.closed {
		return nil, ErrClosed
	}
	return s.db, nil
}

// SaveCatalog replaces the stored catalog with entries, keeping their order.
func (s *SQLiteStore) SaveCatalog(ctx context.Context, entries []CatalogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrStore, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM heroes`); err != nil {
		return fmt.Errorf("%w: clear heroes: %w", ErrStore, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO heroes (name, position, stratz_tags, custom_tags, updated_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare: %w", ErrStore, err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, e := range entries {
		stratz, err := json.Marshal(nonNil(e.StratzTags))
		if err != nil {
			return fmt.Errorf("%w: encode tags of %q: %w", ErrStore, e.Name, err)
		}
		custom, err := json.Marshal(nonNil(e.CustomTags))
		if err != nil {
			return fmt.Errorf("%w: encode tags of %q: %w", ErrStore, e.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, e.Name, i, string(stratz), string(custom), now); err != nil {
			return fmt.Errorf("%w: insert hero %q: %w", ErrStore, e.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrStore, err)
	}
	return nil
}

// LoadCatalog returns the stored catalog entries in saved order.
func (s *SQLiteStore) LoadCatalog(ctx context.Context) ([]CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT name, stratz_tags, custom_tags FROM heroes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: query heroes: %w", ErrStore, err)
	}
	defer rows.Close()

	var out []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		var stratz, custom string
		if err := rows.Scan(&e.Name, &stratz, &custom); err != nil {
			return nil, fmt.Errorf("%w: scan hero: %w", ErrStore, err)
		}
		if err := json.Unmarshal([]byte(stratz), &e.StratzTags); err != nil {
			return nil, fmt.Errorf("%w: decode tags of %q: %w", ErrStore, e.Name, err)
		}
		if err := json.Unmarshal([]byte(custom), &e.CustomTags); err != nil {
			return nil, fmt.Errorf("%w: decode tags of %q: %w", ErrStore, e.Name, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate heroes: %w", ErrStore, err)
	}
	return out, nil
}

// SaveMatchups replaces the stored matchup table.
func (s *SQLiteStore) SaveMatchups(ctx context.Context, records map[string]model.MatchupRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, err := s.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrStore, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM matchups`); err != nil {
		return fmt.Errorf("%w: clear matchups: %w", ErrStore, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO matchups (hero, kind, other, value, updated_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare: %w", ErrStore, err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, hero := range SortedNames(records) {
		rec := records[hero]
		for _, kind := range model.MatchupKinds() {
			for other, v := range rec.Kind(kind) {
				if _, err := stmt.ExecContext(ctx, hero, kind, other, v, now); err != nil {
					return fmt.Errorf("%w: insert matchup %s/%s/%s: %w", ErrStore, hero, kind, other, err)
				}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrStore, err)
	}
	return nil
}

// LoadMatchups returns the stored matchup table. An empty table yields an
// empty map.
func (s *SQLiteStore) LoadMatchups(ctx context.Context) (map[string]model.MatchupRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT hero, kind, other, value FROM matchups`)
	if err != nil {
		return nil, fmt.Errorf("%w: query matchups: %w", ErrStore, err)
	}
	defer rows.Close()

	out := make(map[string]model.MatchupRecord)
	for rows.Next() {
		var hero, kind, other string
		var v float64
		if err := rows.Scan(&hero, &kind, &other, &v); err != nil {
			return nil, fmt.Errorf("%w: scan matchup: %w", ErrStore, err)
		}
		rec := out[hero]
		rec.Set(kind, other, v)
		out[hero] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate matchups: %w", ErrStore, err)
	}
	return out, nil
}

// Close releases the database. Further calls fail with ErrClosed.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
