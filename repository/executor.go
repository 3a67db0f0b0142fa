package repository

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"time"

	"pizzastore/internal/apperr"
	"pizzastore/internal/db"
	"pizzastore/internal/table"
)

// DefaultTimeout bounds a single statement when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Queryer is satisfied by *sql.DB and *sql.Tx.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Result is a fully materialized query result. Every cell is kept as text;
// SQL NULL is an invalid NullString.
type Result struct {
	Columns []string
	Rows    [][]sql.NullString
}

// Len returns the number of rows.
func (r *Result) Len() int { return len(r.Rows) }

// First returns the first cell of the first row.
func (r *Result) First() (string, bool) {
	if len(r.Rows) == 0 || len(r.Rows[0]) == 0 || !r.Rows[0][0].Valid {
		return "", false
	}
	return r.Rows[0][0].String, true
}

// Column returns the non-null values of column i, in row order.
func (r *Result) Column(i int) []string {
	out := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		if i < len(row) && row[i].Valid {
			out = append(out, row[i].String)
		}
	}
	return out
}

// Executor issues parameterized statements against the backend. Statements are
// written with `?` placeholders and rebound for the connected dialect. Every
// failure is returned as an apperr backend error carrying the driver message.
type Executor struct {
	conn    *db.DB // nil when bound to a transaction
	q       Queryer
	dialect db.Dialect
	timeout time.Duration
}

// NewExecutor returns an executor over an open backend connection.
func NewExecutor(d *db.DB, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{conn: d, q: d.DB, dialect: d.Dialect, timeout: timeout}
}

// ExecuteWrite runs an INSERT/UPDATE/DELETE and returns the affected row count.
func (e *Executor) ExecuteWrite(ctx context.Context, stmt string, args ...any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	res, err := e.q.ExecContext(ctx, e.dialect.Rebind(stmt), args...)
	if err != nil {
		return 0, apperr.Backend("execute write", "", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperr.Backend("rows affected", "", err)
	}
	return n, nil
}

// ExecuteRead runs a query and returns all of its rows.
func (e *Executor) ExecuteRead(ctx context.Context, stmt string, args ...any) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	rows, err := e.q.QueryContext(ctx, e.dialect.Rebind(stmt), args...)
	if err != nil {
		return nil, apperr.Backend("execute read", "", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, apperr.Backend("read columns", "", err)
	}
	out := &Result{Columns: cols}
	for rows.Next() {
		record := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range record {
			dest[i] = &record[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, apperr.Backend("scan row", "", err)
		}
		out.Rows = append(out.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Backend("iterate rows", "", err)
	}
	return out, nil
}

// ExecuteReadCount runs a query and returns how many rows it produced.
func (e *Executor) ExecuteReadCount(ctx context.Context, stmt string, args ...any) (int, error) {
	res, err := e.ExecuteRead(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return res.Len(), nil
}

// ExecuteReadAndPrint runs a query and renders the rows to w as an aligned
// table. It returns the row count.
func (e *Executor) ExecuteReadAndPrint(ctx context.Context, w io.Writer, stmt string, args ...any) (int, error) {
	res, err := e.ExecuteRead(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return table.Format(w, res.Columns, res.Rows), nil
}

// InTx runs fn against an executor bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (e *Executor) InTx(ctx context.Context, fn func(tx *Executor) error) error {
	if e.conn == nil {
		return errors.New("nested transactions are not supported")
	}
	sqlTx, err := e.conn.BeginTx(ctx, e.dialect.TxOptions())
	if err != nil {
		return apperr.Backend("begin transaction", "", err)
	}
	txe := &Executor{q: sqlTx, dialect: e.dialect, timeout: e.timeout}
	if err := fn(txe); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return apperr.Backend("commit transaction", "", err)
	}
	return nil
}
