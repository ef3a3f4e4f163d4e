package introspect

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseExportFormat accepts json, yaml/yml and markdown/md
func ParseExportFormat(value string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return ExportFormatJSON, nil
	case "yaml", "yml":
		return ExportFormatYAML, nil
	case "", "markdown", "md":
		return ExportFormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", value)
	}
}

// ExportSchema exports the database schema in the specified format
func ExportSchema(schema *DatabaseSchema, format ExportFormat) ([]byte, error) {
	switch format {
	case ExportFormatJSON:
		return json.MarshalIndent(schema, "", "  ")
	case ExportFormatYAML:
		return yaml.Marshal(schema)
	case ExportFormatMarkdown:
		return exportMarkdown(schema), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

func exportMarkdown(schema *DatabaseSchema) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Database Schema: %s\n\n", schema.Name)
	fmt.Fprintf(&b, "- **Driver**: %s\n", schema.Driver)
	fmt.Fprintf(&b, "- **Version**: %s\n", schema.Metadata.Version)
	fmt.Fprintf(&b, "- **Tables**: %d\n", schema.Metadata.TableCount)
	fmt.Fprintf(&b, "- **Indexes**: %d\n\n", schema.Metadata.IndexCount)

	for _, table := range sortedTables(schema.Tables) {
		fmt.Fprintf(&b, "## %s\n\n", table.Name)
		fmt.Fprintf(&b, "Rows: %d\n\n", table.RowCount)

		b.WriteString("| Name | Type | Nullable | Default |\n")
		b.WriteString("|------|------|----------|---------|\n")
		for _, col := range table.Columns {
			nullable := "NO"
			if col.IsNullable {
				nullable = "YES"
			}
			defaultVal := ""
			if col.DefaultValue != nil {
				defaultVal = *col.DefaultValue
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", col.Name, col.DataType, nullable, defaultVal)
		}
		b.WriteString("\n")

		if table.PrimaryKey != nil {
			fmt.Fprintf(&b, "Primary key: %s\n\n", strings.Join(table.PrimaryKey.Columns, ", "))
		}

		if len(table.Indexes) > 0 {
			b.WriteString("Indexes:\n\n")
			for _, idx := range table.Indexes {
				unique := ""
				if idx.IsUnique {
					unique = " (UNIQUE)"
				}
				fmt.Fprintf(&b, "- **%s**%s: %s\n", idx.Name, unique, strings.Join(idx.Columns, ", "))
			}
			b.WriteString("\n")
		}
	}

	return []byte(b.String())
}

func sortedTables(tables map[string]*TableSchema) []*TableSchema {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]*TableSchema, 0, len(names))
	for _, name := range names {
		result = append(result, tables[name])
	}
	return result
}
