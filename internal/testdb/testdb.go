// Package testdb creates throwaway databases for tests.
package testdb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eleven-am/bistro/internal/migrator"
	"github.com/jmoiron/sqlx"
)

// PostgresEnv names the variable holding a server URL for Postgres tests
const PostgresEnv = "BISTRO_TEST_POSTGRES_URL"

var lookupEnv = os.Getenv

// SQLite returns settings for a database file in the test's temp dir
func SQLite(t *testing.T) *migrator.DBConfig {
	t.Helper()
	return migrator.NewDBConfig(migrator.DriverSQLite, filepath.Join(t.TempDir(), "bistro.db"))
}

// Postgres returns settings for a fresh database on the server named by
// BISTRO_TEST_POSTGRES_URL and drops it when the test ends. The test is
// skipped when the variable is unset.
func Postgres(t *testing.T) *migrator.DBConfig {
	t.Helper()

	base := strings.TrimSpace(lookupEnv(PostgresEnv))
	if base == "" {
		t.Skipf("%s not set", PostgresEnv)
	}

	u, err := url.Parse(base)
	if err != nil {
		t.Fatalf("invalid %s: %v", PostgresEnv, err)
	}
	dbName := fmt.Sprintf("bistro_test_%d", time.Now().UnixNano())
	u.Path = "/" + dbName

	cfg := migrator.NewDBConfig(migrator.DriverPostgres, u.String())
	if err := migrator.EnsureDatabaseExists(context.Background(), cfg); err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	u.Path = "/postgres"
	adminURL := u.String()
	t.Cleanup(func() { drop(t, adminURL, dbName) })

	return cfg
}

func drop(t *testing.T, adminURL, dbName string) {
	db, err := sqlx.Connect(migrator.DriverPostgres, adminURL)
	if err != nil {
		t.Logf("Failed to connect for cleanup: %v", err)
		return
	}
	defer db.Close()

	_, err = db.Exec(`
		SELECT pg_terminate_backend(pg_stat_activity.pid)
		FROM pg_stat_activity
		WHERE pg_stat_activity.datname = $1
		AND pid <> pg_backend_pid()
	`, dbName)
	if err != nil {
		t.Logf("Failed to terminate connections: %v", err)
	}

	if _, err := db.Exec(`DROP DATABASE IF EXISTS "` + dbName + `"`); err != nil {
		t.Logf("Failed to drop test database: %v", err)
	}
}

// TableExists checks if a table exists in the current schema
func TableExists(ctx context.Context, db *sqlx.DB, tableName string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.tables
			WHERE table_schema = current_schema()
			AND table_name = $1
		)
	`
	if db.DriverName() != migrator.DriverPostgres {
		query = `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)`
	}
	err := db.GetContext(ctx, &exists, query, tableName)
	return exists, err
}

// IndexExists checks if an index exists
func IndexExists(ctx context.Context, db *sqlx.DB, indexName string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM pg_indexes
			WHERE schemaname = current_schema()
			AND indexname = $1
		)
	`
	if db.DriverName() != migrator.DriverPostgres {
		query = `SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'index' AND name = ?)`
	}
	err := db.GetContext(ctx, &exists, query, indexName)
	return exists, err
}
