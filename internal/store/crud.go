package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/eleven-am/bistro/internal/orm"
)

func getByID[T any](ctx context.Context, repo *orm.Repository[T], id int64) (T, bool, error) {
	var zero T

	record, err := repo.FindByID(ctx, id)
	if err != nil {
		if orm.IsNotFound(err) {
			return zero, false, nil
		}
		return zero, false, err
	}
	return *record, true, nil
}

func create[T any](ctx context.Context, repo *orm.Repository[T], record T) (T, error) {
	if err := repo.Create(ctx, &record); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// updateByID writes the changed columns and reads the record back.
// An empty change set only reads.
func updateByID[T any](ctx context.Context, repo *orm.Repository[T], id int64, changes map[string]interface{}) (T, bool, error) {
	if len(changes) == 0 {
		return getByID(ctx, repo, id)
	}

	if err := repo.UpdateByID(ctx, id, changes); err != nil {
		var zero T
		if orm.IsNotFound(err) {
			return zero, false, nil
		}
		return zero, false, err
	}
	return getByID(ctx, repo, id)
}

func deleteByID[T any](ctx context.Context, repo *orm.Repository[T], id int64) (bool, error) {
	if err := repo.DeleteByID(ctx, id); err != nil {
		if orm.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// requireReference fails with ErrForeignKey when id does not resolve in target
func requireReference[T any](ctx context.Context, op, table, column string, target *orm.Repository[T], id int64) error {
	exists, err := target.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &orm.Error{
			Op:     op,
			Table:  table,
			Column: column,
			Err:    fmt.Errorf("%w: %s %d does not exist", orm.ErrForeignKey, target.Metadata().TableName, id),
		}
	}
	return nil
}

// presence collects required-field failures
type presence struct {
	errs orm.ValidationErrors
}

func (p *presence) text(field, value string) {
	if strings.TrimSpace(value) == "" {
		p.errs = append(p.errs, orm.ValidationError{Field: field, Message: "is required"})
	}
}

func (p *presence) id(field string, value int64) {
	if value <= 0 {
		p.errs = append(p.errs, orm.ValidationError{Field: field, Message: "must be a positive id"})
	}
}

func (p *presence) date(field string, value Date) {
	if value.IsZero() {
		p.errs = append(p.errs, orm.ValidationError{Field: field, Message: "is required"})
	}
}

func (p *presence) err() error {
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs
}
