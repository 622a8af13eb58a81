package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/colts18seth/jobly/internal/querybuilder"
)

// DBTX is the slice of pgx the repositories need. *pgxpool.Pool, *pgx.Conn
// and pgx.Tx all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// queryAll runs stmt and scans every row.
func queryAll[T any](ctx context.Context, db DBTX, stmt querybuilder.Statement, scan pgx.RowToFunc[T]) ([]T, error) {
	rows, err := db.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// queryOne runs stmt and scans its single row. Zero rows yields pgx.ErrNoRows.
func queryOne[T any](ctx context.Context, db DBTX, stmt querybuilder.Statement, scan pgx.RowToFunc[T]) (*T, error) {
	rows, err := db.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, err
	}
	item, err := pgx.CollectExactlyOneRow(rows, scan)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// execAffectingOne runs stmt and reports pgx.ErrNoRows when nothing changed.
func execAffectingOne(ctx context.Context, db DBTX, stmt querybuilder.Statement) error {
	tag, err := db.Exec(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
