package orm

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Query provides a fluent interface for building database queries
type Query[T any] struct {
	repo *Repository[T]
	err  error
	ctx  context.Context

	limit       *uint64
	orderBy     []string
	whereClause squirrel.And
	joins       []join
}

func (r *Repository[T]) Query(ctx context.Context) *Query[T] {
	return &Query[T]{
		repo:        r,
		ctx:         ctx,
		whereClause: squirrel.And{},
		joins:       make([]join, 0),
	}
}

func (q *Query[T]) Where(condition Condition) *Query[T] {
	if q.err != nil {
		return q
	}
	if condition.condition == nil {
		q.err = fmt.Errorf("empty condition")
		return q
	}
	q.whereClause = append(q.whereClause, condition.ToSqlizer())
	return q
}

func (q *Query[T]) OrderBy(expressions ...string) *Query[T] {
	if q.err != nil {
		return q
	}
	q.orderBy = append(q.orderBy, expressions...)
	return q
}

func (q *Query[T]) Limit(limit uint64) *Query[T] {
	if q.err != nil {
		return q
	}
	q.limit = &limit
	return q
}

func (q *Query[T]) Join(joinType JoinType, table, condition string) *Query[T] {
	if q.err != nil {
		return q
	}
	q.joins = append(q.joins, join{
		Type:      joinType,
		Table:     table,
		Condition: condition,
	})
	return q
}

func (q *Query[T]) InnerJoin(table, condition string) *Query[T] {
	return q.Join(InnerJoin, table, condition)
}

func (q *Query[T]) LeftJoin(table, condition string) *Query[T] {
	return q.Join(LeftJoin, table, condition)
}

// selectBuilder assembles a SELECT over columns with the query's joins and clauses
func (q *Query[T]) selectBuilder(columns []string, withOrdering bool) squirrel.SelectBuilder {
	builder := squirrel.Select(columns...).
		From(q.repo.metadata.TableName).
		PlaceholderFormat(q.repo.placeholder)

	for _, j := range q.joins {
		switch j.Type {
		case InnerJoin:
			builder = builder.InnerJoin(j.clause())
		case LeftJoin:
			builder = builder.LeftJoin(j.clause())
		}
	}

	if len(q.whereClause) > 0 {
		builder = builder.Where(q.whereClause)
	}

	if withOrdering {
		for _, orderBy := range q.orderBy {
			builder = builder.OrderBy(orderBy)
		}
		if q.limit != nil {
			builder = builder.Limit(*q.limit)
		}
	}

	return builder
}

func (q *Query[T]) Find() ([]T, error) {
	return selectInto[T, T](q, OpFind, q.repo.Columns())
}

func (q *Query[T]) First() (*T, error) {
	q.Limit(1)
	records, err := q.Find()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, &Error{
			Op:    "first",
			Table: q.repo.metadata.TableName,
			Err:   ErrNotFound,
		}
	}

	return &records[0], nil
}

// Project runs the query with a custom select list and scans rows into R.
// It is the way to read joined columns that do not belong to T.
func Project[T any, R any](q *Query[T], columns ...string) ([]R, error) {
	if len(columns) == 0 {
		return nil, &Error{Op: "project", Table: q.repo.metadata.TableName, Err: fmt.Errorf("no columns selected")}
	}
	records, err := selectInto[T, R](q, OpQuery, columns)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []R{}
	}
	return records, nil
}

func selectInto[T any, R any](q *Query[T], op OperationType, columns []string) ([]R, error) {
	if q.err != nil {
		return nil, &Error{Op: string(op), Table: q.repo.metadata.TableName, Err: q.err}
	}

	var records []R
	err := q.repo.executeQueryMiddleware(op, q.ctx, nil, q.selectBuilder(columns, true), func(middlewareCtx *MiddlewareContext) error {
		finalQuery := middlewareCtx.QueryBuilder.(squirrel.SelectBuilder)

		sqlQuery, args, err := finalQuery.ToSql()
		if err != nil {
			return &Error{
				Op:    string(op),
				Table: q.repo.metadata.TableName,
				Err:   fmt.Errorf("failed to build query: %w", err),
			}
		}

		middlewareCtx.Query = sqlQuery
		middlewareCtx.Args = args

		if err := q.repo.db.SelectContext(q.ctx, &records, sqlQuery, args...); err != nil {
			return ParseDBError(err, string(op), q.repo.metadata.TableName)
		}

		return nil
	})

	return records, err
}

func (q *Query[T]) Count() (int64, error) {
	if q.err != nil {
		return 0, &Error{Op: "count", Table: q.repo.metadata.TableName, Err: q.err}
	}

	countBuilder := q.selectBuilder([]string{"COUNT(*)"}, false)

	var count int64
	err := q.repo.executeQueryMiddleware(OpQuery, q.ctx, nil, countBuilder, func(middlewareCtx *MiddlewareContext) error {
		finalQuery := middlewareCtx.QueryBuilder.(squirrel.SelectBuilder)

		sqlQuery, args, err := finalQuery.ToSql()
		if err != nil {
			return &Error{
				Op:    "count",
				Table: q.repo.metadata.TableName,
				Err:   fmt.Errorf("failed to build count query: %w", err),
			}
		}

		middlewareCtx.Query = sqlQuery
		middlewareCtx.Args = args

		if err := q.repo.db.GetContext(q.ctx, &count, sqlQuery, args...); err != nil {
			return ParseDBError(err, "count", q.repo.metadata.TableName)
		}

		return nil
	})

	return count, err
}

func (q *Query[T]) Exists() (bool, error) {
	count, err := q.Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (q *Query[T]) Delete() (int64, error) {
	if q.err != nil {
		return 0, &Error{Op: "delete", Table: q.repo.metadata.TableName, Err: q.err}
	}

	deleteBuilder := squirrel.Delete(q.repo.metadata.TableName).
		PlaceholderFormat(q.repo.placeholder)

	if len(q.whereClause) > 0 {
		deleteBuilder = deleteBuilder.Where(q.whereClause)
	}

	var rowsAffected int64
	err := q.repo.executeQueryMiddleware(OpDelete, q.ctx, nil, deleteBuilder, func(middlewareCtx *MiddlewareContext) error {
		finalQuery := middlewareCtx.QueryBuilder.(squirrel.DeleteBuilder)

		sqlQuery, args, err := finalQuery.ToSql()
		if err != nil {
			return &Error{
				Op:    "delete",
				Table: q.repo.metadata.TableName,
				Err:   fmt.Errorf("failed to build delete query: %w", err),
			}
		}

		middlewareCtx.Query = sqlQuery
		middlewareCtx.Args = args

		result, err := q.repo.db.ExecContext(q.ctx, sqlQuery, args...)
		if err != nil {
			return ParseDBError(err, "delete", q.repo.metadata.TableName)
		}

		return readRowsAffected(result, "delete", q.repo.metadata.TableName, &rowsAffected)
	})

	return rowsAffected, err
}

func (q *Query[T]) Update(updates map[string]interface{}) (int64, error) {
	if q.err != nil {
		return 0, &Error{Op: "update", Table: q.repo.metadata.TableName, Err: q.err}
	}
	if len(updates) == 0 {
		return 0, &Error{
			Op:    "update",
			Table: q.repo.metadata.TableName,
			Err:   fmt.Errorf("no updates provided"),
		}
	}

	updateBuilder := squirrel.Update(q.repo.metadata.TableName).
		SetMap(updates).
		PlaceholderFormat(q.repo.placeholder)

	if len(q.whereClause) > 0 {
		updateBuilder = updateBuilder.Where(q.whereClause)
	}

	var rowsAffected int64
	err := q.repo.executeQueryMiddleware(OpUpdate, q.ctx, updates, updateBuilder, func(middlewareCtx *MiddlewareContext) error {
		finalQuery := middlewareCtx.QueryBuilder.(squirrel.UpdateBuilder)

		sqlQuery, args, err := finalQuery.ToSql()
		if err != nil {
			return &Error{
				Op:    "update",
				Table: q.repo.metadata.TableName,
				Err:   fmt.Errorf("failed to build update query: %w", err),
			}
		}

		middlewareCtx.Query = sqlQuery
		middlewareCtx.Args = args

		result, err := q.repo.db.ExecContext(q.ctx, sqlQuery, args...)
		if err != nil {
			return ParseDBError(err, "update", q.repo.metadata.TableName)
		}

		return readRowsAffected(result, "update", q.repo.metadata.TableName, &rowsAffected)
	})

	return rowsAffected, err
}

func readRowsAffected(result sql.Result, op, table string, dest *int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return &Error{
			Op:    op,
			Table: table,
			Err:   fmt.Errorf("failed to get rows affected: %w", err),
		}
	}
	*dest = n
	return nil
}
