package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

func openSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

// SQLiteStore keeps one JSON document per row in its own table.
type SQLiteStore[T any] struct {
	db    *sql.DB
	table string
}

// NewSQLiteStore creates table if needed and returns a store over it. The
// caller guarantees table is a safe identifier.
func NewSQLiteStore[T any](ctx context.Context, db *sql.DB, table string) (*SQLiteStore[T], error) {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+table+` (
		id         TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create table %s: %w", table, err)
	}
	return &SQLiteStore[T]{db: db, table: table}, nil
}

func (s *SQLiteStore[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM `+s.table+` WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("get %s %s: %w", s.table, id, err)
	}
	var v T
	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		return zero, false, fmt.Errorf("decode %s %s: %w", s.table, id, err)
	}
	return v, true, nil
}

func (s *SQLiteStore[T]) Put(ctx context.Context, id string, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", s.table, id, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+s.table+` (id, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		id, string(payload), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put %s %s: %w", s.table, id, err)
	}
	return nil
}

// List returns every record ordered by ID.
func (s *SQLiteStore[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, payload FROM `+s.table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		var v T
		if err := json.Unmarshal([]byte(payload), &v); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", s.table, id, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLiteStore[T]) NewID() string {
	return uuid.NewString()
}
