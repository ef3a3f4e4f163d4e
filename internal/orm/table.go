package orm

import "fmt"

// ModelMetadata describes how a model type maps onto its table.
// Columns lists every selected column with the primary key first.
// Values returns the insertable columns of a record, without the primary key.
type ModelMetadata[T any] struct {
	TableName     string
	PrimaryKey    string
	Columns       []string
	Values        func(record *T) map[string]interface{}
	SetPrimaryKey func(record *T, id int64)
}

// Validate checks that the metadata is usable by a repository
func (m *ModelMetadata[T]) Validate() error {
	if m == nil {
		return fmt.Errorf("metadata is required")
	}
	if m.TableName == "" {
		return fmt.Errorf("metadata table name is required")
	}
	if m.PrimaryKey == "" {
		return &Error{Op: "metadata", Table: m.TableName, Err: ErrNoPrimaryKey}
	}
	if len(m.Columns) == 0 {
		return fmt.Errorf("metadata for %s has no columns", m.TableName)
	}
	if !m.HasColumn(m.PrimaryKey) {
		return fmt.Errorf("metadata for %s does not select primary key %s", m.TableName, m.PrimaryKey)
	}
	if m.Values == nil || m.SetPrimaryKey == nil {
		return fmt.Errorf("metadata for %s is missing value accessors", m.TableName)
	}
	return nil
}

// HasColumn checks if a column belongs to the table
func (m *ModelMetadata[T]) HasColumn(column string) bool {
	for _, c := range m.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// QualifiedColumns returns the columns prefixed with the table name
func (m *ModelMetadata[T]) QualifiedColumns() []string {
	qualified := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		qualified[i] = m.TableName + "." + c
	}
	return qualified
}

// PrimaryKeyColumn returns a typed reference to the primary key column
func (m *ModelMetadata[T]) PrimaryKeyColumn() Column[int64] {
	return Column[int64]{Name: m.PrimaryKey, Table: m.TableName}
}
