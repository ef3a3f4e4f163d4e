package orm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Common errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrNoPrimaryKey     = errors.New("no primary key defined")
	ErrDuplicateKey     = errors.New("duplicate key violation")
	ErrForeignKey       = errors.New("foreign key violation")
	ErrCheckConstraint  = errors.New("check constraint violation")
	ErrNotNull          = errors.New("not null constraint violation")
	ErrConnectionFailed = errors.New("database connection failed")
	ErrTimeout          = errors.New("operation timeout")
	ErrCanceled         = errors.New("operation canceled")
)

// Error provides detailed error information
type Error struct {
	Op         string // Operation that failed
	Table      string // Table involved
	Err        error  // Underlying error
	Constraint string // Constraint name (if applicable)
	Column     string // Column name (if applicable)
	Retryable  bool   // Whether the operation can be retried
}

func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("orm: %s", e.Op))

	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("constraint=%s", e.Constraint))
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for Error type
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return errors.Is(e.Err, target)
	}

	if t.Op != "" && e.Op == t.Op {
		return true
	}

	return errors.Is(e.Err, t.Err)
}

// ParseDBError converts driver errors from SQLite or PostgreSQL into ORM errors
func ParseDBError(err error, op, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Op: op, Table: table, Err: ErrNotFound}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Op: op, Table: table, Err: ErrTimeout, Retryable: true}
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Op: op, Table: table, Err: ErrCanceled}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return parsePostgreSQLError(pqErr, op, table)
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return parseSQLiteError(sqliteErr, op, table)
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "database is closed") {
		return &Error{Op: op, Table: table, Err: ErrConnectionFailed, Retryable: true}
	}

	return &Error{Op: op, Table: table, Err: err}
}

func parsePostgreSQLError(err *pq.Error, op, table string) error {
	switch err.Code {
	case "23505":
		return &Error{Op: op, Table: table, Err: ErrDuplicateKey, Constraint: extractConstraintName(err.Message)}
	case "23503":
		return &Error{Op: op, Table: table, Err: ErrForeignKey, Constraint: extractConstraintName(err.Message)}
	case "23502":
		return &Error{Op: op, Table: table, Err: ErrNotNull, Column: extractColumnName(err.Message)}
	case "23514":
		return &Error{Op: op, Table: table, Err: ErrCheckConstraint, Constraint: extractConstraintName(err.Message)}
	case "57014":
		return &Error{Op: op, Table: table, Err: ErrCanceled}
	}

	if strings.HasPrefix(string(err.Code), "08") {
		return &Error{Op: op, Table: table, Err: ErrConnectionFailed, Retryable: true}
	}

	return &Error{Op: op, Table: table, Err: err}
}

func parseSQLiteError(err *msqlite.Error, op, table string) error {
	msg := err.Error()

	switch err.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
		return &Error{Op: op, Table: table, Err: ErrDuplicateKey, Column: extractSQLiteColumn(msg)}
	case sqlite3lib.SQLITE_CONSTRAINT_NOTNULL:
		return &Error{Op: op, Table: table, Err: ErrNotNull, Column: extractSQLiteColumn(msg)}
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return &Error{Op: op, Table: table, Err: ErrForeignKey}
	case sqlite3lib.SQLITE_CONSTRAINT_CHECK:
		return &Error{Op: op, Table: table, Err: ErrCheckConstraint, Constraint: extractSQLiteCheckName(msg)}
	case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
		return &Error{Op: op, Table: table, Err: err, Retryable: true}
	case sqlite3lib.SQLITE_CANTOPEN:
		return &Error{Op: op, Table: table, Err: ErrConnectionFailed}
	case sqlite3lib.SQLITE_CONSTRAINT:
		return classifySQLiteConstraint(err, msg, op, table)
	}

	return &Error{Op: op, Table: table, Err: err}
}

// classifySQLiteConstraint reads the constraint kind from the message when
// the driver only reports the primary result code.
func classifySQLiteConstraint(err error, msg, op, table string) error {
	switch {
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return &Error{Op: op, Table: table, Err: ErrNotNull, Column: extractSQLiteColumn(msg)}
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &Error{Op: op, Table: table, Err: ErrDuplicateKey, Column: extractSQLiteColumn(msg)}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &Error{Op: op, Table: table, Err: ErrForeignKey}
	case strings.Contains(msg, "CHECK constraint failed"):
		return &Error{Op: op, Table: table, Err: ErrCheckConstraint, Constraint: extractSQLiteCheckName(msg)}
	}
	return &Error{Op: op, Table: table, Err: err}
}

// trimSQLiteCode drops the trailing " (2067)" result code of driver messages
func trimSQLiteCode(value string) string {
	if idx := strings.LastIndex(value, " ("); idx != -1 && strings.HasSuffix(value, ")") {
		return value[:idx]
	}
	return value
}

func extractConstraintName(errStr string) string {
	start := strings.LastIndex(errStr, "constraint \"")
	if start == -1 {
		return ""
	}
	start += len("constraint \"")
	end := strings.Index(errStr[start:], "\"")
	if end == -1 {
		return ""
	}
	return errStr[start : start+end]
}

func extractColumnName(errStr string) string {
	columnIdx := strings.Index(errStr, "column \"")
	if columnIdx == -1 {
		return ""
	}
	start := columnIdx + 8
	end := strings.Index(errStr[start:], "\"")
	if end == -1 {
		return ""
	}
	return errStr[start : start+end]
}

// extractSQLiteColumn reads "NOT NULL constraint failed: dishes.name" style messages.
func extractSQLiteColumn(errStr string) string {
	idx := strings.LastIndex(errStr, "constraint failed: ")
	if idx == -1 {
		return ""
	}
	target := trimSQLiteCode(errStr[idx+len("constraint failed: "):])
	if comma := strings.Index(target, ","); comma != -1 {
		target = target[:comma]
	}
	if dot := strings.LastIndex(target, "."); dot != -1 {
		target = target[dot+1:]
	}
	return strings.TrimSpace(target)
}

func extractSQLiteCheckName(errStr string) string {
	idx := strings.Index(errStr, "CHECK constraint failed: ")
	if idx == -1 {
		return ""
	}
	return strings.TrimSpace(trimSQLiteCode(errStr[idx+len("CHECK constraint failed: "):]))
}

// ValidationError represents validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// IsNotFound reports whether err carries ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	var ormErr *Error
	if errors.As(err, &ormErr) {
		return ormErr.Retryable
	}
	return false
}

// IsConstraintError checks if an error is a constraint violation
func IsConstraintError(err error) bool {
	return errors.Is(err, ErrDuplicateKey) ||
		errors.Is(err, ErrForeignKey) ||
		errors.Is(err, ErrCheckConstraint) ||
		errors.Is(err, ErrNotNull)
}

// GetColumnName extracts the column name from an error
func GetColumnName(err error) string {
	var ormErr *Error
	if errors.As(err, &ormErr) {
		return ormErr.Column
	}
	return ""
}
