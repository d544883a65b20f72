// Package store holds the PostgreSQL queries of the tracker.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	wrabitDB "github.com/writewithwrabit/tracker/db"
	"github.com/writewithwrabit/tracker/tracker"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

const uniqueViolation = "23505"

type Store struct {
	conn *sql.DB
	q    wrabitDB.Querier
}

func New(conn *sql.DB) *Store {
	return &Store{conn: conn, q: conn}
}

// Snapshot calls fn with a repository whose reads share one read-only
// repeatable read transaction.
func (s *Store) Snapshot(ctx context.Context, fn func(tracker.Repository) error) error {
	if s.conn == nil {
		return fn(s)
	}
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	return wrabitDB.InTx(ctx, s.conn, opts, func(tx *sql.Tx) error {
		return fn(&Store{q: tx})
	})
}

// inTx is Snapshot for writes.
func (s *Store) inTx(ctx context.Context, fn func(q wrabitDB.Querier) error) error {
	if s.conn == nil {
		return fn(s.q)
	}
	return wrabitDB.InTx(ctx, s.conn, nil, func(tx *sql.Tx) error {
		return fn(tx)
	})
}

func (s *Store) Ping(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	return s.conn.PingContext(ctx)
}

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

type scanner interface {
	Scan(dest ...interface{}) error
}
