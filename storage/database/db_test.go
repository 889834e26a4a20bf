package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/sessionbook/core"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		url        string
		wantEngine string
		wantDSN    string
		wantErr    bool
	}{
		{url: "postgres://u:p@localhost:5432/book?sslmode=disable", wantEngine: EnginePostgres, wantDSN: "postgres://u:p@localhost:5432/book?sslmode=disable"},
		{url: "postgresql://localhost/book", wantEngine: EnginePostgres, wantDSN: "postgresql://localhost/book"},
		{url: "sqlite://./app.db", wantEngine: EngineSQLite, wantDSN: "./app.db?_pragma=busy_timeout(5000)"},
		{url: "sqlite:///./app.db", wantEngine: EngineSQLite, wantDSN: "./app.db?_pragma=busy_timeout(5000)"},
		{url: "sqlite:////var/lib/app.db", wantEngine: EngineSQLite, wantDSN: "/var/lib/app.db?_pragma=busy_timeout(5000)"},
		{url: "sqlite3://app.db?_pragma=foreign_keys(1)", wantEngine: EngineSQLite, wantDSN: "app.db?_pragma=foreign_keys(1)"},
		{url: "sqlite://:memory:", wantEngine: EngineSQLite, wantDSN: ":memory:"},
		{url: "memory://", wantEngine: EngineMemory},
		{url: "sqlite://", wantErr: true},
		{url: "mysql://localhost/book", wantErr: true},
		{url: "app.db", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			engine, dsn, err := ParseURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEngine, engine)
			assert.Equal(t, tt.wantDSN, dsn)
		})
	}
}

func openMigrated(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestConnectAndMigrate(t *testing.T) {
	conf := &core.Config{Database: core.DatabaseConfig{URL: "sqlite://:memory:"}}
	db, err := Connect(context.Background(), conf)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	// idempotent
	require.NoError(t, Migrate(db))

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND name != 'goose_db_version' ORDER BY name`))
	assert.Equal(t, []string{"contacts", "schools", "session_edits", "sessions", "users"}, tables)
}

func TestConnect_unsupported(t *testing.T) {
	_, err := Connect(context.Background(), &core.Config{Database: core.DatabaseConfig{URL: "memory://"}})
	assert.Error(t, err)
}

func TestUniqueViolation(t *testing.T) {
	db := openMigrated(t)
	insert := `INSERT INTO users (email, password, account_type) VALUES (?, 'x', 'client')`

	_, err := db.Exec(insert, "a@acme.test")
	require.NoError(t, err)
	col, ok := UniqueViolation(err)
	assert.False(t, ok)
	assert.Empty(t, col)

	_, err = db.Exec(insert, "a@acme.test")
	require.Error(t, err)
	col, ok = UniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "email", col)

	// other constraint failures are not unique violations
	_, err = db.Exec(`INSERT INTO users (email, password, account_type) VALUES ('b@acme.test', NULL, 'client')`)
	require.Error(t, err)
	_, ok = UniqueViolation(err)
	assert.False(t, ok)
}

func TestConstraintColumn(t *testing.T) {
	assert.Equal(t, "domain", constraintColumn("schools", "schools_domain_key"))
	assert.Equal(t, "email", constraintColumn("users", "users_email_key"))
	assert.Equal(t, "custom", constraintColumn("users", "custom"))
}

func TestInTx(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	insert := `INSERT INTO contacts (name, email, message) VALUES ('Ada', 'ada@example.test', 'hi')`

	err := InTx(ctx, db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insert); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)

	require.NoError(t, InTx(ctx, db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, insert)
		return err
	}))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM contacts`))
	assert.Equal(t, 1, count)
}
