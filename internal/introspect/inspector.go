package introspect

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Inspector provides methods to inspect database schema
type Inspector struct {
	db     *sqlx.DB
	driver string
}

// NewInspector creates a new database inspector
func NewInspector(db *sqlx.DB, driver string) *Inspector {
	return &Inspector{
		db:     db,
		driver: driver,
	}
}

// GetSchema returns every user table with its columns, keys, indexes and row count
func (i *Inspector) GetSchema(ctx context.Context) (*DatabaseSchema, error) {
	schema := &DatabaseSchema{
		Driver: i.driver,
		Tables: make(map[string]*TableSchema),
	}

	var err error
	switch i.driver {
	case "sqlite":
		schema.Name, schema.Metadata.Version, err = i.getSQLiteInfo(ctx)
	case "postgres":
		schema.Name, schema.Metadata.Version, err = i.getPostgreSQLInfo(ctx)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", i.driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get database info: %w", err)
	}

	tables, err := i.GetTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	for _, table := range tables {
		schema.Tables[table.Name] = table
		schema.Metadata.IndexCount += len(table.Indexes)
	}
	schema.Metadata.TableCount = len(tables)
	schema.Metadata.InspectedAt = time.Now().UTC()

	return schema, nil
}

// GetTables returns all tables in the database ordered by name
func (i *Inspector) GetTables(ctx context.Context) ([]*TableSchema, error) {
	var names []string
	var err error
	switch i.driver {
	case "sqlite":
		names, err = i.getSQLiteTableNames(ctx)
	case "postgres":
		names, err = i.getPostgreSQLTableNames(ctx)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", i.driver)
	}
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	tables := make([]*TableSchema, 0, len(names))
	for _, name := range names {
		table, err := i.GetTable(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to get table %s: %w", name, err)
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// GetTable returns schema for a specific table
func (i *Inspector) GetTable(ctx context.Context, tableName string) (*TableSchema, error) {
	var table *TableSchema
	var err error
	switch i.driver {
	case "sqlite":
		table, err = i.getSQLiteTable(ctx, tableName)
	case "postgres":
		table, err = i.getPostgreSQLTable(ctx, tableName)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", i.driver)
	}
	if err != nil {
		return nil, err
	}

	if err := i.db.GetContext(ctx, &table.RowCount, "SELECT COUNT(*) FROM "+quoteIdentifier(tableName)); err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}
	return table, nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
