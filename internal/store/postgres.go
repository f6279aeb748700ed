package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGSlots stores slots as rows of the store_slots table.
// The schema is created by the goose migrations in package migrations.
type PGSlots struct {
	db db
}

// NewPGSlots constructs a PGSlots backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPGSlots(db db) *PGSlots {
	return &PGSlots{db: db}
}

func (s *PGSlots) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM store_slots WHERE key = @key`

	var value string
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store.PGSlots.Get: %w", err)
	}
	return value, true, nil
}

// Put inserts or overwrites the slot in a single statement.
func (s *PGSlots) Put(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO store_slots (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value}); err != nil {
		return fmt.Errorf("store.PGSlots.Put: %w", err)
	}
	return nil
}
