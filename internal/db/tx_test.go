package db

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.Exec(`CREATE TABLE items (name TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	return conn
}

func countItems(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func TestWithTxCommits(t *testing.T) {
	conn := setupTestDB(t)

	err := WithTx(conn, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO items (name) VALUES (?)`, "a")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	if n := countItems(t, conn); n != 1 {
		t.Errorf("got %d rows, want 1", n)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	conn := setupTestDB(t)
	boom := errors.New("boom")

	err := WithTx(conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO items (name) VALUES (?)`, "a"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}

	if n := countItems(t, conn); n != 0 {
		t.Errorf("got %d rows after rollback, want 0", n)
	}
}

func TestNullStringValue(t *testing.T) {
	if got := NullStringValue(sql.NullString{String: "x", Valid: true}); got != "x" {
		t.Errorf("valid = %q, want %q", got, "x")
	}
	if got := NullStringValue(sql.NullString{String: "x", Valid: false}); got != "" {
		t.Errorf("invalid = %q, want empty", got)
	}
}
