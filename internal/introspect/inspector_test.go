package introspect

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

func newSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
CREATE TABLE categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
);
CREATE TABLE dishes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    price INTEGER NOT NULL DEFAULT 0,
    category_id INTEGER
);
CREATE INDEX idx_dishes_category_id ON dishes (category_id);
CREATE UNIQUE INDEX idx_dishes_name ON dishes (name);
INSERT INTO categories (name) VALUES ('Beverages'), ('Desserts');
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteSchema(t *testing.T) {
	db := newSQLiteDB(t)
	inspector := NewInspector(db, "sqlite")

	schema, err := inspector.GetSchema(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", schema.Driver)
	assert.True(t, strings.HasPrefix(schema.Metadata.Version, "SQLite "))
	assert.Equal(t, 2, schema.Metadata.TableCount, "sqlite_sequence is skipped")
	assert.Equal(t, 2, schema.Metadata.IndexCount)
	require.Contains(t, schema.Tables, "categories")
	require.Contains(t, schema.Tables, "dishes")

	categories := schema.Tables["categories"]
	assert.Equal(t, int64(2), categories.RowCount)
	require.NotNil(t, categories.PrimaryKey)
	assert.Equal(t, []string{"id"}, categories.PrimaryKey.Columns)
	assert.Empty(t, categories.Indexes)

	dishes := schema.Tables["dishes"]
	require.Len(t, dishes.Columns, 4)
	assert.Equal(t, "price", dishes.Columns[2].Name)
	assert.Equal(t, 3, dishes.Columns[2].OrdinalPosition)
	assert.Equal(t, "INTEGER", dishes.Columns[2].DataType)
	assert.False(t, dishes.Columns[2].IsNullable)
	require.NotNil(t, dishes.Columns[2].DefaultValue)
	assert.Equal(t, "0", *dishes.Columns[2].DefaultValue)
	assert.True(t, dishes.Columns[3].IsNullable)
	assert.False(t, dishes.Columns[0].IsNullable, "primary key columns are not nullable")

	require.Len(t, dishes.Indexes, 2)
	assert.Equal(t, "idx_dishes_category_id", dishes.Indexes[0].Name)
	assert.Equal(t, []string{"category_id"}, dishes.Indexes[0].Columns)
	assert.False(t, dishes.Indexes[0].IsUnique)
	assert.True(t, dishes.Indexes[1].IsUnique)
}

func TestSQLiteMissingTable(t *testing.T) {
	db := newSQLiteDB(t)

	_, err := NewInspector(db, "sqlite").GetTable(context.Background(), "orders")
	assert.ErrorContains(t, err, "does not exist")
}

func TestUnsupportedDriver(t *testing.T) {
	inspector := NewInspector(nil, "mysql")

	_, err := inspector.GetSchema(context.Background())
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = inspector.GetTables(context.Background())
	assert.Error(t, err)
}

func TestPostgreSQLSchema(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "postgres")

	mock.ExpectQuery(`SELECT current_database\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"current_database"}).AddRow("bistro"))
	mock.ExpectQuery(`SELECT version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("PostgreSQL 16.2"))
	mock.ExpectQuery(`FROM information_schema.tables`).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("clients"))
	mock.ExpectQuery(`FROM information_schema.columns`).
		WithArgs("clients").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "ordinal_position", "data_type", "is_nullable", "column_default"}).
			AddRow("id", 1, "bigint", false, "nextval('clients_id_seq'::regclass)").
			AddRow("name", 2, "text", false, nil).
			AddRow("phone", 3, "text", false, nil))
	mock.ExpectQuery(`PRIMARY KEY`).
		WithArgs("clients").
		WillReturnRows(sqlmock.NewRows([]string{"constraint_name", "columns"}).AddRow("clients_pkey", "{id}"))
	mock.ExpectQuery(`FROM pg_index`).
		WithArgs("clients").
		WillReturnRows(sqlmock.NewRows([]string{"index_name", "is_unique", "columns"}).AddRow("idx_clients_phone", true, "{phone}"))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "clients"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	schema, err := NewInspector(db, "postgres").GetSchema(context.Background())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, "bistro", schema.Name)
	assert.Equal(t, "PostgreSQL 16.2", schema.Metadata.Version)
	assert.Equal(t, 1, schema.Metadata.TableCount)
	assert.Equal(t, 1, schema.Metadata.IndexCount)

	clients := schema.Tables["clients"]
	require.NotNil(t, clients)
	assert.Equal(t, int64(3), clients.RowCount)
	assert.Equal(t, "clients_pkey", clients.PrimaryKey.Name)
	assert.Equal(t, []string{"id"}, clients.PrimaryKey.Columns)
	assert.Equal(t, []string{"phone"}, clients.Indexes[0].Columns)
	require.NotNil(t, clients.Columns[0].DefaultValue)
	assert.Nil(t, clients.Columns[1].DefaultValue)
}

func TestExportSchema(t *testing.T) {
	db := newSQLiteDB(t)
	schema, err := NewInspector(db, "sqlite").GetSchema(context.Background())
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		output, err := ExportSchema(schema, ExportFormatJSON)
		require.NoError(t, err)

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(output, &result))
		assert.Equal(t, "sqlite", result["driver"])
		assert.Len(t, result["tables"], 2)
	})

	t.Run("yaml", func(t *testing.T) {
		output, err := ExportSchema(schema, ExportFormatYAML)
		require.NoError(t, err)

		var result DatabaseSchema
		require.NoError(t, yaml.Unmarshal(output, &result))
		assert.Equal(t, int64(2), result.Tables["categories"].RowCount)
	})

	t.Run("markdown", func(t *testing.T) {
		output, err := ExportSchema(schema, ExportFormatMarkdown)
		require.NoError(t, err)

		md := string(output)
		assert.Contains(t, md, "## categories")
		assert.Contains(t, md, "| price | INTEGER | NO | 0 |")
		assert.Contains(t, md, "- **idx_dishes_name** (UNIQUE): name")
		assert.Less(t, strings.Index(md, "## categories"), strings.Index(md, "## dishes"))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ExportSchema(schema, ExportFormat("dot"))
		assert.Error(t, err)
	})
}

func TestParseExportFormat(t *testing.T) {
	tests := map[string]ExportFormat{
		"json":     ExportFormatJSON,
		"YAML":     ExportFormatYAML,
		"yml":      ExportFormatYAML,
		"md":       ExportFormatMarkdown,
		"":         ExportFormatMarkdown,
		"markdown": ExportFormatMarkdown,
	}
	for input, want := range tests {
		got, err := ParseExportFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseExportFormat("sql")
	assert.Error(t, err)
}
