package introspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

func (i *Inspector) getPostgreSQLInfo(ctx context.Context) (name, version string, err error) {
	if err := i.db.QueryRowContext(ctx, "SELECT current_database()").Scan(&name); err != nil {
		return "", "", fmt.Errorf("failed to get database name: %w", err)
	}
	if err := i.db.QueryRowContext(ctx, "SELECT version()").Scan(&version); err != nil {
		return "", "", fmt.Errorf("failed to get version: %w", err)
	}
	return name, version, nil
}

func (i *Inspector) getPostgreSQLTableNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	var names []string
	if err := i.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	return names, nil
}

func (i *Inspector) getPostgreSQLTable(ctx context.Context, tableName string) (*TableSchema, error) {
	table := &TableSchema{
		Name:    tableName,
		Columns: make([]*ColumnSchema, 0),
		Indexes: make([]*IndexSchema, 0),
	}

	columns, err := i.getPostgreSQLColumns(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}
	table.Columns = columns

	pk, err := i.getPostgreSQLPrimaryKey(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get primary key: %w", err)
	}
	table.PrimaryKey = pk

	indexes, err := i.getPostgreSQLIndexes(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get indexes: %w", err)
	}
	table.Indexes = indexes

	return table, nil
}

func (i *Inspector) getPostgreSQLColumns(ctx context.Context, tableName string) ([]*ColumnSchema, error) {
	query := `
		SELECT
			column_name,
			ordinal_position,
			data_type,
			is_nullable = 'YES' AS is_nullable,
			column_default
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position
	`

	rows, err := i.db.QueryContext(ctx, query, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var columns []*ColumnSchema
	for rows.Next() {
		col := &ColumnSchema{}
		var defaultValue sql.NullString

		if err := rows.Scan(&col.Name, &col.OrdinalPosition, &col.DataType, &col.IsNullable, &defaultValue); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		if defaultValue.Valid {
			col.DefaultValue = &defaultValue.String
		}
		columns = append(columns, col)
	}

	return columns, rows.Err()
}

func (i *Inspector) getPostgreSQLPrimaryKey(ctx context.Context, tableName string) (*PrimaryKeySchema, error) {
	query := `
		SELECT
			tc.constraint_name,
			array_agg(kcu.column_name ORDER BY kcu.ordinal_position) AS columns
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
			AND tc.table_name = kcu.table_name
		WHERE tc.constraint_type = 'PRIMARY KEY'
		AND tc.table_schema = current_schema()
		AND tc.table_name = $1
		GROUP BY tc.constraint_name
	`

	var pk PrimaryKeySchema
	var columns pq.StringArray

	err := i.db.QueryRowContext(ctx, query, tableName).Scan(&pk.Name, &columns)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query primary key: %w", err)
	}

	pk.Columns = []string(columns)
	return &pk, nil
}

func (i *Inspector) getPostgreSQLIndexes(ctx context.Context, tableName string) ([]*IndexSchema, error) {
	query := `
		SELECT
			i.relname AS index_name,
			idx.indisunique AS is_unique,
			ARRAY(
				SELECT pg_get_indexdef(idx.indexrelid, k + 1, true)
				FROM generate_subscripts(idx.indkey, 1) AS k
				ORDER BY k
			) AS columns
		FROM pg_index idx
		JOIN pg_class i ON i.oid = idx.indexrelid
		JOIN pg_class t ON t.oid = idx.indrelid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		WHERE n.nspname = current_schema()
		AND t.relname = $1
		AND NOT idx.indisprimary
		ORDER BY i.relname
	`

	rows, err := i.db.QueryContext(ctx, query, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query indexes: %w", err)
	}
	defer rows.Close()

	indexes := make([]*IndexSchema, 0)
	for rows.Next() {
		idx := &IndexSchema{}
		var columns pq.StringArray

		if err := rows.Scan(&idx.Name, &idx.IsUnique, &columns); err != nil {
			return nil, fmt.Errorf("failed to scan index: %w", err)
		}
		idx.Columns = []string(columns)
		indexes = append(indexes, idx)
	}

	return indexes, rows.Err()
}
