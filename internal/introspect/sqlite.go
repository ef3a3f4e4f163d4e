package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
)

func (i *Inspector) getSQLiteInfo(ctx context.Context) (name, version string, err error) {
	if err := i.db.GetContext(ctx, &version, "SELECT sqlite_version()"); err != nil {
		return "", "", fmt.Errorf("failed to get version: %w", err)
	}

	var databases []struct {
		Seq  int            `db:"seq"`
		Name string         `db:"name"`
		File sql.NullString `db:"file"`
	}
	if err := i.db.SelectContext(ctx, &databases, "PRAGMA database_list"); err != nil {
		return "", "", fmt.Errorf("failed to list databases: %w", err)
	}
	for _, db := range databases {
		if db.Name == "main" {
			name = db.File.String
		}
	}
	if name == "" {
		name = "main"
	}
	return name, "SQLite " + version, nil
}

func (i *Inspector) getSQLiteTableNames(ctx context.Context) ([]string, error) {
	var names []string
	query := `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
	if err := i.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	return names, nil
}

type sqliteColumn struct {
	CID          int            `db:"cid"`
	Name         string         `db:"name"`
	Type         string         `db:"type"`
	NotNull      bool           `db:"notnull"`
	DefaultValue sql.NullString `db:"dflt_value"`
	PK           int            `db:"pk"`
}

type sqliteIndex struct {
	Seq     int    `db:"seq"`
	Name    string `db:"name"`
	Unique  bool   `db:"unique"`
	Origin  string `db:"origin"`
	Partial bool   `db:"partial"`
}

type sqliteIndexColumn struct {
	SeqNo int            `db:"seqno"`
	CID   int            `db:"cid"`
	Name  sql.NullString `db:"name"`
}

func (i *Inspector) getSQLiteTable(ctx context.Context, tableName string) (*TableSchema, error) {
	table := &TableSchema{
		Name:    tableName,
		Columns: make([]*ColumnSchema, 0),
		Indexes: make([]*IndexSchema, 0),
	}

	var columns []sqliteColumn
	if err := i.db.SelectContext(ctx, &columns, "SELECT cid, name, type, \"notnull\", dflt_value, pk FROM pragma_table_info(?)", tableName); err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}

	type keyColumn struct {
		position int
		name     string
	}
	var keys []keyColumn
	for _, c := range columns {
		col := &ColumnSchema{
			Name:            c.Name,
			OrdinalPosition: c.CID + 1,
			DataType:        c.Type,
			IsNullable:      !c.NotNull && c.PK == 0,
		}
		if c.DefaultValue.Valid {
			col.DefaultValue = &c.DefaultValue.String
		}
		table.Columns = append(table.Columns, col)
		if c.PK > 0 {
			keys = append(keys, keyColumn{position: c.PK, name: c.Name})
		}
	}
	if len(keys) > 0 {
		sort.Slice(keys, func(a, b int) bool { return keys[a].position < keys[b].position })
		table.PrimaryKey = &PrimaryKeySchema{}
		for _, k := range keys {
			table.PrimaryKey.Columns = append(table.PrimaryKey.Columns, k.name)
		}
	}

	var indexes []sqliteIndex
	if err := i.db.SelectContext(ctx, &indexes, "SELECT seq, name, \"unique\", origin, partial FROM pragma_index_list(?)", tableName); err != nil {
		return nil, fmt.Errorf("failed to query indexes: %w", err)
	}
	sort.Slice(indexes, func(a, b int) bool { return indexes[a].Name < indexes[b].Name })

	for _, idx := range indexes {
		if idx.Origin == "pk" {
			continue
		}
		var indexColumns []sqliteIndexColumn
		if err := i.db.SelectContext(ctx, &indexColumns, "SELECT seqno, cid, name FROM pragma_index_info(?)", idx.Name); err != nil {
			return nil, fmt.Errorf("failed to query index %s: %w", idx.Name, err)
		}
		sort.Slice(indexColumns, func(a, b int) bool { return indexColumns[a].SeqNo < indexColumns[b].SeqNo })

		index := &IndexSchema{Name: idx.Name, IsUnique: idx.Unique, Columns: make([]string, 0, len(indexColumns))}
		for _, c := range indexColumns {
			if c.Name.Valid {
				index.Columns = append(index.Columns, c.Name.String)
			} else {
				index.Columns = append(index.Columns, "<expression>")
			}
		}
		table.Indexes = append(table.Indexes, index)
	}

	return table, nil
}
