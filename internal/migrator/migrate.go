package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/eleven-am/bistro/internal/logger"
	"github.com/jmoiron/sqlx"
)

const migrationTable = "schema_migrations"

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// ApplyMigrations executes the .sql files under root in lexical order, each at
// most once, and returns the names applied by this call.
func ApplyMigrations(ctx context.Context, db *sqlx.DB, migrationFS fs.FS, root string) ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("sql db is required")
	}

	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}

	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at BIGINT NOT NULL
);
`, migrationTable)
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return nil, fmt.Errorf("ensure migration table: %w", err)
	}

	log := logger.Migration()
	var applied []string

	for _, file := range sqlFiles {
		content, err := fs.ReadFile(migrationFS, path.Join(root, file))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}

		done, err := isApplied(ctx, db, file)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", file, err)
		}
		if done {
			log.Debug("migration already applied", "name", file)
			continue
		}

		upSQL := ExtractUpMigration(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("begin migration transaction %s: %w", file, err)
		}

		if _, err := tx.ExecContext(ctx, upSQL); err != nil {
			if !IsAlreadyExistsError(err) {
				_ = tx.Rollback()
				return applied, fmt.Errorf("exec migration %s: %w", file, err)
			}
		}

		recordSQL := db.Rebind(fmt.Sprintf("INSERT INTO %s (name, applied_at) VALUES (?, ?)", migrationTable))
		if _, err := tx.ExecContext(ctx, recordSQL, file, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("record migration %s: %w", file, err)
		}

		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %s: %w", file, err)
		}

		log.Info("migration applied", "name", file)
		applied = append(applied, file)
	}

	return applied, nil
}

// ExtractUpMigration returns the SQL in the -- +migrate Up section, or the
// whole content when no markers are present.
func ExtractUpMigration(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		if downIdx := strings.Index(content, downMarker); downIdx != -1 {
			return content[:downIdx]
		}
		return content
	}
	rest := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(rest, downMarker); downIdx != -1 {
		return rest[:downIdx]
	}
	return rest
}

// IsAlreadyExistsError reports whether this error indicates idempotent DDL success.
func IsAlreadyExistsError(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}

func isApplied(ctx context.Context, db *sqlx.DB, name string) (bool, error) {
	var found int
	err := db.GetContext(ctx, &found, db.Rebind("SELECT 1 FROM "+migrationTable+" WHERE name = ?"), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AppliedMigrations lists the recorded migration names in order
func AppliedMigrations(ctx context.Context, db *sqlx.DB) ([]string, error) {
	var names []string
	if err := db.SelectContext(ctx, &names, "SELECT name FROM "+migrationTable+" ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	return names, nil
}

// ExtractDownMigration returns the SQL in the -- +migrate Down section
func ExtractDownMigration(content string) string {
	downIdx := strings.Index(content, downMarker)
	if downIdx == -1 {
		return ""
	}
	return content[downIdx+len(downMarker):]
}

// RollbackMigrations runs the Down section of the most recently applied
// migrations, newest first, and forgets them. steps <= 0 rolls back everything.
func RollbackMigrations(ctx context.Context, db *sqlx.DB, migrationFS fs.FS, root string, steps int) ([]string, error) {
	applied, err := AppliedMigrations(ctx, db)
	if err != nil {
		return nil, err
	}

	if root = strings.TrimSpace(root); root == "" {
		root = "."
	}

	log := logger.Migration()
	var rolledBack []string

	for i := len(applied) - 1; i >= 0; i-- {
		if steps > 0 && len(rolledBack) >= steps {
			break
		}
		file := applied[i]

		content, err := fs.ReadFile(migrationFS, path.Join(root, file))
		if err != nil {
			return rolledBack, fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return rolledBack, fmt.Errorf("begin rollback transaction %s: %w", file, err)
		}

		if downSQL := ExtractDownMigration(string(content)); strings.TrimSpace(downSQL) != "" {
			if _, err := tx.ExecContext(ctx, downSQL); err != nil {
				_ = tx.Rollback()
				return rolledBack, fmt.Errorf("exec rollback %s: %w", file, err)
			}
		} else {
			log.Warn("migration has no down section", "name", file)
		}

		forgetSQL := db.Rebind("DELETE FROM " + migrationTable + " WHERE name = ?")
		if _, err := tx.ExecContext(ctx, forgetSQL, file); err != nil {
			_ = tx.Rollback()
			return rolledBack, fmt.Errorf("forget migration %s: %w", file, err)
		}

		if err := tx.Commit(); err != nil {
			return rolledBack, fmt.Errorf("commit rollback %s: %w", file, err)
		}

		log.Info("migration rolled back", "name", file)
		rolledBack = append(rolledBack, file)
	}

	return rolledBack, nil
}
