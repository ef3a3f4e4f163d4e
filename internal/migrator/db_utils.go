package migrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eleven-am/bistro/internal/logger"
	"github.com/jmoiron/sqlx"
)

// EnsureDatabaseExists prepares the storage target before the first connect.
// For SQLite the parent directory of the file is created, for Postgres the
// database itself is created through the admin "postgres" database.
func EnsureDatabaseExists(ctx context.Context, cfg *DBConfig) error {
	switch cfg.Driver {
	case DriverSQLite:
		return ensureSQLiteDir(cfg.URL)
	case DriverPostgres:
		return ensurePostgresDatabase(ctx, cfg.URL)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func ensureSQLiteDir(path string) error {
	path = strings.TrimSpace(path)
	if path == "" || path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

func ensurePostgresDatabase(ctx context.Context, dsn string) error {
	dbName, adminDSN, err := parseDSNForDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse DSN: %w", err)
	}

	db, err := sqlx.ConnectContext(ctx, DriverPostgres, adminDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to admin database: %w", err)
	}
	defer db.Close()

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	if err := db.GetContext(ctx, &exists, query, dbName); err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}
	if exists {
		return nil
	}

	log := logger.Migration().WithField("database", dbName)
	log.Info("database does not exist, creating")

	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+quoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("failed to create database '%s': %w", dbName, err)
	}

	log.Info("database created")
	return nil
}

// parseDSNForDB extracts the database name and builds a DSN for the admin database
func parseDSNForDB(dsn string) (dbName string, adminDSN string, err error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		parts := strings.Split(dsn, "/")
		if len(parts) < 4 {
			return "", "", fmt.Errorf("invalid database URL format")
		}

		dbPart := parts[len(parts)-1]
		base := strings.Join(parts[:len(parts)-1], "/")
		if idx := strings.Index(dbPart, "?"); idx != -1 {
			dbName = dbPart[:idx]
			adminDSN = base + "/postgres?" + dbPart[idx+1:]
		} else {
			dbName = dbPart
			adminDSN = base + "/postgres"
		}
		if dbName == "" {
			return "", "", fmt.Errorf("no database name found in URL")
		}
		return dbName, adminDSN, nil
	}

	var adminParts []string
	for _, kv := range strings.Fields(dsn) {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if key == "dbname" {
			dbName = value
			value = "postgres"
		}
		adminParts = append(adminParts, key+"="+value)
	}
	if dbName == "" {
		return "", "", fmt.Errorf("no database name found in DSN")
	}

	return dbName, strings.Join(adminParts, " "), nil
}

// quoteIdentifier quotes a PostgreSQL identifier
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
