// Package store persists transcriptions in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yusuftas/PRGAVI/internal/captions"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
	hash       TEXT PRIMARY KEY,
	engine     TEXT NOT NULL,
	words      TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// Store caches transcriptions keyed by audio content hash.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default cache location.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "prgavi", "transcripts.sqlite")
}

// Open opens or creates the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached words for hash. ok is false on a cache miss.
func (s *Store) Get(ctx context.Context, hash string) ([]captions.Word, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT words FROM transcripts WHERE hash = ?`, hash).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query transcript: %w", err)
	}

	var words []captions.Word
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		return nil, false, fmt.Errorf("decode cached transcript: %w", err)
	}
	return words, true, nil
}

// Put stores words for hash, replacing any previous entry.
func (s *Store) Put(ctx context.Context, hash, engine string, words []captions.Word) error {
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transcripts (hash, engine, words, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(hash) DO UPDATE SET
			engine = excluded.engine,
			words = excluded.words,
			created_at = excluded.created_at
	`, hash, engine, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store transcript: %w", err)
	}
	return nil
}

// Count returns the number of cached transcripts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transcripts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transcripts: %w", err)
	}
	return n, nil
}
