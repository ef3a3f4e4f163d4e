package introspect

import (
	"time"
)

// DatabaseSchema represents the inspected schema of a database
type DatabaseSchema struct {
	Name     string                  `json:"name" yaml:"name"`
	Driver   string                  `json:"driver" yaml:"driver"`
	Tables   map[string]*TableSchema `json:"tables" yaml:"tables"`
	Metadata DatabaseMetadata        `json:"metadata" yaml:"metadata"`
}

// DatabaseMetadata contains metadata about the database
type DatabaseMetadata struct {
	Version     string    `json:"version" yaml:"version"`
	TableCount  int       `json:"table_count" yaml:"table_count"`
	IndexCount  int       `json:"index_count" yaml:"index_count"`
	InspectedAt time.Time `json:"inspected_at" yaml:"inspected_at"`
}

// TableSchema represents the schema of a single table
type TableSchema struct {
	Name       string            `json:"name" yaml:"name"`
	Columns    []*ColumnSchema   `json:"columns" yaml:"columns"`
	PrimaryKey *PrimaryKeySchema `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	Indexes    []*IndexSchema    `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	RowCount   int64             `json:"row_count" yaml:"row_count"`
}

// ColumnSchema represents a column definition
type ColumnSchema struct {
	Name            string  `json:"name" yaml:"name"`
	OrdinalPosition int     `json:"position" yaml:"position"`
	DataType        string  `json:"type" yaml:"type"`
	IsNullable      bool    `json:"nullable" yaml:"nullable"`
	DefaultValue    *string `json:"default,omitempty" yaml:"default,omitempty"`
}

// PrimaryKeySchema represents a primary key constraint
type PrimaryKeySchema struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Columns []string `json:"columns" yaml:"columns"`
}

// IndexSchema represents a secondary index
type IndexSchema struct {
	Name     string   `json:"name" yaml:"name"`
	Columns  []string `json:"columns" yaml:"columns"`
	IsUnique bool     `json:"unique" yaml:"unique"`
}

// ExportFormat represents the format for exporting schema
type ExportFormat string

const (
	ExportFormatJSON     ExportFormat = "json"
	ExportFormatYAML     ExportFormat = "yaml"
	ExportFormatMarkdown ExportFormat = "markdown"
)
