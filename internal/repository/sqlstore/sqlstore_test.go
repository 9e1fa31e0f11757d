package sqlstore

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TESTING WITH IN-MEMORY SQLITE:
// ":memory:" gives every test a fresh, migrated database that disappears
// when the connection closes. No files, no cleanup, no shared state.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), Options{
		Driver: DriverSQLite,
		DSN:    ":memory:",
		Logger: slog.New(slog.DiscardHandler),
	})
	require.NoError(t, err, "failed to open test db")
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_AppliesMigrations(t *testing.T) {
	db := newTestDB(t)

	for _, table := range []string{"users", "articles"} {
		var name string
		err := db.conn.QueryRowContext(context.Background(),
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	var idx string
	err := db.conn.QueryRowContext(context.Background(),
		`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_users_email'`,
	).Scan(&idx)
	require.NoError(t, err, "unique email index should exist")
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mysql", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestOpen_BadPostgresDSN(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: DriverPostgres, DSN: "://not a dsn"})
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
}

func TestRebind(t *testing.T) {
	tests := []struct {
		driver string
		query  string
		want   string
	}{
		{DriverSQLite, `SELECT * FROM users WHERE id = ? AND name = ?`, `SELECT * FROM users WHERE id = ? AND name = ?`},
		{DriverPostgres, `SELECT * FROM users WHERE id = ? AND name = ?`, `SELECT * FROM users WHERE id = $1 AND name = $2`},
		{DriverPostgres, `SELECT COUNT(*) FROM users`, `SELECT COUNT(*) FROM users`},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			db := &DB{driver: tt.driver}
			assert.Equal(t, tt.want, db.rebind(tt.query))
		})
	}
}
