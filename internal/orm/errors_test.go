package orm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestError(t *testing.T) {
	baseErr := errors.New("base error")
	ormErr := &Error{
		Op:    "create",
		Table: "dishes",
		Err:   baseErr,
	}

	t.Run("Error method", func(t *testing.T) {
		assert.Equal(t, "orm: create: table=dishes: base error", ormErr.Error())
	})

	t.Run("Error method with column and constraint", func(t *testing.T) {
		err := &Error{Op: "update", Table: "orders", Column: "dish_id", Constraint: "orders_dish_fk", Err: ErrForeignKey}
		assert.Equal(t, "orm: update: table=orders: column=dish_id: constraint=orders_dish_fk: foreign key violation", err.Error())
	})

	t.Run("Unwrap method", func(t *testing.T) {
		assert.Equal(t, baseErr, errors.Unwrap(ormErr))
	})

	t.Run("Is method", func(t *testing.T) {
		assert.True(t, errors.Is(ormErr, baseErr))
		assert.True(t, errors.Is(ormErr, &Error{Op: "create"}))
		assert.False(t, errors.Is(ormErr, &Error{Op: "delete"}))
	})

	t.Run("wrapped sentinel", func(t *testing.T) {
		err := &Error{Op: "create", Err: fmt.Errorf("%w: clients 3 does not exist", ErrForeignKey)}
		assert.True(t, errors.Is(err, ErrForeignKey))
		assert.True(t, IsConstraintError(err))
		wrapped := fmt.Errorf("create order: %w", err)
		assert.True(t, errors.Is(wrapped, ErrForeignKey))
	})
}

func TestParseDBError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantErr   error
		wantMsg   string
		retryable bool
	}{
		{
			name:    "no rows",
			err:     sql.ErrNoRows,
			wantErr: ErrNotFound,
			wantMsg: "orm: find: table=dishes: record not found",
		},
		{
			name:      "deadline",
			err:       context.DeadlineExceeded,
			wantErr:   ErrTimeout,
			retryable: true,
		},
		{
			name:    "canceled",
			err:     fmt.Errorf("query: %w", context.Canceled),
			wantErr: ErrCanceled,
		},
		{
			name: "pq unique violation",
			err: &pq.Error{
				Code:    "23505",
				Message: "duplicate key value violates unique constraint \"dishes_name_key\"",
			},
			wantErr: ErrDuplicateKey,
			wantMsg: "orm: find: table=dishes: constraint=dishes_name_key: duplicate key violation",
		},
		{
			name: "pq foreign key violation",
			err: &pq.Error{
				Code:    "23503",
				Message: "insert or update on table \"dishes\" violates foreign key constraint \"dishes_category_id_fkey\"",
			},
			wantErr: ErrForeignKey,
			wantMsg: "orm: find: table=dishes: constraint=dishes_category_id_fkey: foreign key violation",
		},
		{
			name: "pq not null violation",
			err: &pq.Error{
				Code:    "23502",
				Message: "null value in column \"name\" violates not-null constraint",
			},
			wantErr: ErrNotNull,
			wantMsg: "orm: find: table=dishes: column=name: not null constraint violation",
		},
		{
			name: "pq check violation",
			err: &pq.Error{
				Code:    "23514",
				Message: "new row for relation \"dishes\" violates check constraint \"dishes_price_check\"",
			},
			wantErr: ErrCheckConstraint,
		},
		{
			name:    "pq query canceled",
			err:     &pq.Error{Code: "57014", Message: "canceling statement due to user request"},
			wantErr: ErrCanceled,
		},
		{
			name:      "pq connection class",
			err:       &pq.Error{Code: "08006", Message: "connection failure"},
			wantErr:   ErrConnectionFailed,
			retryable: true,
		},
		{
			name:      "closed database",
			err:       errors.New("sql: database is closed"),
			wantErr:   ErrConnectionFailed,
			retryable: true,
		},
		{
			name:    "unknown error is kept",
			err:     errors.New("some other error"),
			wantMsg: "orm: find: table=dishes: some other error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseDBError(tt.err, "find", "dishes")
			require.Error(t, err)

			var ormErr *Error
			require.True(t, errors.As(err, &ormErr))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
			assert.Equal(t, tt.retryable, IsRetryable(err))
		})
	}

	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, ParseDBError(nil, "find", "dishes"))
	})
}

func TestParseSQLiteError(t *testing.T) {
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE dishes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		price INTEGER NOT NULL CHECK (price >= 0)
	)`)
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO dishes (name, price) VALUES ('Cola', 5)")
	require.NoError(t, err)

	t.Run("not null", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO dishes (name, price) VALUES (NULL, 5)")
		parsed := ParseDBError(err, "create", "dishes")
		assert.ErrorIs(t, parsed, ErrNotNull)
		assert.Equal(t, "name", GetColumnName(parsed))
	})

	t.Run("unique", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO dishes (name, price) VALUES ('Cola', 6)")
		parsed := ParseDBError(err, "create", "dishes")
		assert.ErrorIs(t, parsed, ErrDuplicateKey)
		assert.Equal(t, "name", GetColumnName(parsed))
		assert.True(t, IsConstraintError(parsed))
	})

	t.Run("check", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO dishes (name, price) VALUES ('Tea', -1)")
		parsed := ParseDBError(err, "create", "dishes")
		assert.ErrorIs(t, parsed, ErrCheckConstraint)
	})
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsNotFound(&Error{Op: "first", Err: ErrNotFound}))
	assert.False(t, IsNotFound(errors.New("boom")))
	assert.Empty(t, GetColumnName(errors.New("boom")))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestValidationErrors(t *testing.T) {
	single := ValidationErrors{{Field: "name", Message: "is required"}}
	assert.Equal(t, "validation failed for name: is required", single.Error())

	multiple := ValidationErrors{
		{Field: "name", Message: "is required"},
		{Field: "phone", Message: "is required"},
	}
	assert.Equal(t, "validation failed: validation failed for name: is required; validation failed for phone: is required", multiple.Error())
}

func TestExtractNames(t *testing.T) {
	assert.Equal(t, "users_email_key", extractConstraintName(`duplicate key value violates unique constraint "users_email_key"`))
	assert.Empty(t, extractConstraintName("no constraint here"))
	assert.Equal(t, "phone", extractColumnName(`null value in column "phone" violates not-null constraint`))
	assert.Equal(t, "name", extractSQLiteColumn("NOT NULL constraint failed: dishes.name (1299)"))
	assert.Equal(t, "name", extractSQLiteColumn("UNIQUE constraint failed: dishes.name, dishes.price"))
	assert.Equal(t, "price >= 0", extractSQLiteCheckName("CHECK constraint failed: price >= 0"))
}
