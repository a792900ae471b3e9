// Package store persists game records (animals, wallets, events) keyed by
// ID. Records are opaque to the store; SQLite keeps them as JSON documents.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

// Store is a keyed collection of records of one type.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	List(ctx context.Context) ([]T, error)
	NewID() string
}

// Backend kinds accepted by OpenBackend.
const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

// Backend is a storage engine shared by the typed stores opened on it.
// A memory backend has no database handle.
type Backend struct {
	kind string
	db   *sql.DB
}

// OpenBackend opens the named backend. path is only used by SQLite.
func OpenBackend(kind, path string) (*Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindMemory:
		return &Backend{kind: KindMemory}, nil
	case KindSQLite:
		db, err := openSQLite(path)
		if err != nil {
			return nil, err
		}
		return &Backend{kind: KindSQLite, db: db}, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}

// Kind reports which engine backs b.
func (b *Backend) Kind() string { return b.kind }

// Close releases the database handle, if any.
func (b *Backend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

var tableName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Open returns a store for T on b. For SQLite, table is created if needed.
func Open[T any](ctx context.Context, b *Backend, table string) (Store[T], error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if b.db == nil {
		return NewMemoryStore[T](), nil
	}
	return NewSQLiteStore[T](ctx, b.db, table)
}
