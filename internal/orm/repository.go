package orm

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
)

// Repository provides CRUD operations for one model type, driven by its metadata
type Repository[T any] struct {
	db                DBExecutor
	metadata          *ModelMetadata[T]
	placeholder       squirrel.PlaceholderFormat
	middlewareManager *middlewareManager
}

// NewRepository creates a repository for T over the given executor
func NewRepository[T any](db DBExecutor, metadata *ModelMetadata[T]) (*Repository[T], error) {
	if db == nil {
		return nil, fmt.Errorf("database executor is required")
	}
	if err := metadata.Validate(); err != nil {
		return nil, err
	}

	return &Repository[T]{
		db:          db,
		metadata:    metadata,
		placeholder: PlaceholderFor(db.DriverName()),
	}, nil
}

// Metadata returns the table description the repository was built with
func (r *Repository[T]) Metadata() *ModelMetadata[T] {
	return r.metadata
}

// Columns returns the table-qualified select list
func (r *Repository[T]) Columns() []string {
	return r.metadata.QualifiedColumns()
}

// Create inserts record and stores the generated primary key back into it
func (r *Repository[T]) Create(ctx context.Context, record *T) error {
	if record == nil {
		return &Error{Op: "create", Table: r.metadata.TableName, Err: fmt.Errorf("record cannot be nil")}
	}

	values := r.metadata.Values(record)
	if len(values) == 0 {
		return &Error{Op: "create", Table: r.metadata.TableName, Err: fmt.Errorf("no columns to insert")}
	}

	insertBuilder := squirrel.Insert(r.metadata.TableName).
		SetMap(values).
		Suffix("RETURNING " + r.metadata.PrimaryKey).
		PlaceholderFormat(r.placeholder)

	return r.executeQueryMiddleware(OpCreate, ctx, record, insertBuilder, func(middlewareCtx *MiddlewareContext) error {
		finalQuery := middlewareCtx.QueryBuilder.(squirrel.InsertBuilder)

		sqlQuery, args, err := finalQuery.ToSql()
		if err != nil {
			return &Error{
				Op:    "create",
				Table: r.metadata.TableName,
				Err:   fmt.Errorf("failed to build insert query: %w", err),
			}
		}

		middlewareCtx.Query = sqlQuery
		middlewareCtx.Args = args

		var id int64
		if err := r.db.QueryRowxContext(ctx, sqlQuery, args...).Scan(&id); err != nil {
			return ParseDBError(err, "create", r.metadata.TableName)
		}

		r.metadata.SetPrimaryKey(record, id)
		return nil
	})
}

// FindByID loads one record by primary key; a missing key yields ErrNotFound
func (r *Repository[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	return r.Query(ctx).Where(r.metadata.PrimaryKeyColumn().Eq(id)).First()
}

// FindAll returns every record in primary key order, never nil
func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	records, err := r.Query(ctx).OrderBy(r.metadata.PrimaryKeyColumn().Asc()).Find()
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Exists reports whether a record with the primary key is stored
func (r *Repository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	return r.Query(ctx).Where(r.metadata.PrimaryKeyColumn().Eq(id)).Exists()
}

// UpdateByID sets the given columns on one record. Columns outside the
// metadata, or the primary key itself, are rejected.
func (r *Repository[T]) UpdateByID(ctx context.Context, id int64, updates map[string]interface{}) error {
	if err := r.checkUpdateColumns(updates); err != nil {
		return err
	}

	rowsAffected, err := r.Query(ctx).Where(r.metadata.PrimaryKeyColumn().Eq(id)).Update(updates)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &Error{Op: "update", Table: r.metadata.TableName, Err: ErrNotFound}
	}
	return nil
}

// DeleteByID removes one record; a missing key yields ErrNotFound
func (r *Repository[T]) DeleteByID(ctx context.Context, id int64) error {
	rowsAffected, err := r.Query(ctx).Where(r.metadata.PrimaryKeyColumn().Eq(id)).Delete()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &Error{Op: "delete", Table: r.metadata.TableName, Err: ErrNotFound}
	}
	return nil
}

func (r *Repository[T]) checkUpdateColumns(updates map[string]interface{}) error {
	columns := make([]string, 0, len(updates))
	for column := range updates {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		if column == r.metadata.PrimaryKey {
			return &Error{Op: "update", Table: r.metadata.TableName, Column: column, Err: fmt.Errorf("primary key is immutable")}
		}
		if !r.metadata.HasColumn(column) {
			return &Error{Op: "update", Table: r.metadata.TableName, Column: column, Err: fmt.Errorf("unknown column")}
		}
	}
	return nil
}
