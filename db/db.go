package db

import (
	"context"
	"database/sql"

	"github.com/writewithwrabit/tracker/logger"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func LogAndQuery(ctx context.Context, q Querier, query string, args ...interface{}) (*sql.Rows, error) {
	logger.Debug("query", "sql", query, "args", args)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("query failed", "sql", query, "error", err)
		return nil, err
	}

	return rows, nil
}

func LogAndQueryRow(ctx context.Context, q Querier, query string, args ...interface{}) *sql.Row {
	logger.Debug("query row", "sql", query, "args", args)

	return q.QueryRowContext(ctx, query, args...)
}

func LogAndExec(ctx context.Context, q Querier, query string, args ...interface{}) (sql.Result, error) {
	logger.Debug("exec", "sql", query, "args", args)

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error("exec failed", "sql", query, "error", err)
		return nil, err
	}

	return res, nil
}

// InTx runs fn inside a transaction, committing when fn returns nil.
func InTx(ctx context.Context, conn *sql.DB, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := conn.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Warn("rollback failed", "error", rbErr)
		}
		return err
	}

	return tx.Commit()
}
