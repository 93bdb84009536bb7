// Package dbbridge is the sync DB driver bridge recipe spec.md gestures at
// with "integration recipes for a particular ORM": a handful of blocking,
// classic database/sql helpers, built the way the teacher module's
// internal/svc/mysql and internal/svc/sqlite services talk to their
// drivers, meant to be suspended on via corowait.Await from deep inside an
// otherwise-synchronous call stack.
package dbbridge

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"corowait"
)

// Driver names a database/sql driver registered by this package's blank
// imports.
type Driver string

const (
	SQLite   Driver = "sqlite3"
	MySQL    Driver = "mysql"
	Postgres Driver = "postgres"
)

// Row is one result row, decoded into plain Go values.
type Row []any

// SyncExec runs a blocking statement against dsn using driver. This is the
// ordinary, synchronous shape every classic DBAPI driver call has.
func SyncExec(driver Driver, dsn, query string, args ...any) (sql.Result, error) {
	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Exec(query, args...)
}

// SyncQuery runs a blocking query and materializes every row. Rows must be
// fully drained here rather than streamed back across Await's goroutine
// boundary, since *sql.Rows is not safe to hand to a different goroutine
// than the one that opened it.
func SyncQuery(driver Driver, dsn, query string, args ...any) ([]Row, error) {
	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, Row(raw))
	}
	return out, rows.Err()
}

// AwaitQuery is the actual recipe: a plain synchronous function, at any
// depth inside a corowait.Async-adopted call stack, runs a blocking SQL
// query by suspending on a FuncAwaitable wrapping SyncQuery. Nothing in its
// signature, or any of its callers', needs to mention context.Context or
// "async" for this to work.
func AwaitQuery(driver Driver, dsn, query string, args ...any) ([]Row, error) {
	return corowait.Await[[]Row](corowait.Func(func(ctx context.Context) ([]Row, error) {
		return SyncQuery(driver, dsn, query, args...)
	}))
}

// AwaitExec is AwaitQuery's counterpart for statements that don't return
// rows.
func AwaitExec(driver Driver, dsn, query string, args ...any) (sql.Result, error) {
	return corowait.Await[sql.Result](corowait.Func(func(ctx context.Context) (sql.Result, error) {
		return SyncExec(driver, dsn, query, args...)
	}))
}
