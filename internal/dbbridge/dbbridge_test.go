package dbbridge

import (
	"context"
	"path/filepath"
	"testing"

	"corowait"
)

func TestSyncQueryAgainstSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "greeting.db")

	if _, err := SyncExec(SQLite, dsn, `CREATE TABLE greeting (msg TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := SyncExec(SQLite, dsn, `INSERT INTO greeting(msg) VALUES (?)`, "hi"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rows, err := SyncQuery(SQLite, dsn, `SELECT msg FROM greeting`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "hi" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

// This is the recipe itself: a plain synchronous function, nested a few
// calls deep under corowait.Async, runs a blocking SQLite query through
// AwaitQuery without its signature ever mentioning context.Context.
func TestAwaitQueryFromNestedSyncCall(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "users.db")

	if _, err := SyncExec(SQLite, dsn, `CREATE TABLE users (name TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := SyncExec(SQLite, dsn, `INSERT INTO users(name) VALUES (?)`, "ada"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	loadUserNames := func() ([]string, error) {
		rows, err := AwaitQuery(SQLite, dsn, `SELECT name FROM users`)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(rows))
		for i, r := range rows {
			names[i] = r[0].(string)
		}
		return names, nil
	}

	// A middle frame that knows nothing about corowait or sql.
	handler := func() ([]string, error) {
		return loadUserNames()
	}

	names, err := corowait.Async(context.Background(), handler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 1 || names[0] != "ada" {
		t.Fatalf("unexpected names: %#v", names)
	}
}
