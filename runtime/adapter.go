// Package runtime executes compiled queries against an injected database
// connection and maps result rows to typed records. Connection lifecycle
// and pooling belong to the caller; the adapter performs no retries and
// surfaces every driver failure.
package runtime

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/quern-dev/quern/query"
	"github.com/quern-dev/quern/query/compile"
)

// Conn is the slice of database/sql the adapter needs. Both *sql.DB and
// *sql.Tx satisfy it.
type Conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Adapter compiles and executes queries on a connection. Safe for
// concurrent use when the underlying connection is.
type Adapter struct {
	conn     Conn
	compiler *compile.Compiler
	logger   *zap.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger attaches a logger for statement-level debug logging.
func WithLogger(l *zap.Logger) Option {
	return func(a *Adapter) { a.logger = l }
}

// New creates an adapter for the given connection and dialect.
func New(conn Conn, dialect compile.Dialect, opts ...Option) *Adapter {
	a := &Adapter{
		conn:     conn,
		compiler: compile.New(dialect),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithConn returns an adapter bound to a different connection, typically a
// transaction, sharing the compiler and logger.
func (a *Adapter) WithConn(conn Conn) *Adapter {
	return &Adapter{conn: conn, compiler: a.compiler, logger: a.logger}
}

// Compiler exposes the adapter's compiler for callers that want the SQL
// without executing it.
func (a *Adapter) Compiler() *compile.Compiler { return a.compiler }

// Exec compiles and executes a statement, returning the affected row count.
func (a *Adapter) Exec(ctx context.Context, q *query.Query) (int64, error) {
	compiled, err := a.compiler.Compile(q)
	if err != nil {
		return 0, err
	}
	a.logger.Debug("exec", zap.String("sql", compiled.SQL), zap.Int("args", len(compiled.Args)))

	res, err := a.conn.ExecContext(ctx, compiled.SQL, compiled.Args...)
	if err != nil {
		return 0, &DriverError{Stmt: compiled.SQL, Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		// Some drivers cannot report the count; the statement itself succeeded.
		return 0, nil
	}
	return affected, nil
}

// Query compiles and runs a statement, returning the raw rows. Callers own
// closing the rows; most callers want All or One instead.
func (a *Adapter) Query(ctx context.Context, q *query.Query) (*sql.Rows, error) {
	compiled, err := a.compiler.Compile(q)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("query", zap.String("sql", compiled.SQL), zap.Int("args", len(compiled.Args)))

	rows, err := a.conn.QueryContext(ctx, compiled.SQL, compiled.Args...)
	if err != nil {
		return nil, &DriverError{Stmt: compiled.SQL, Err: err}
	}
	return rows, nil
}

// All executes a query and maps every row into T.
func All[T any](ctx context.Context, a *Adapter, q *query.Query) ([]T, error) {
	rows, err := a.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return ScanRows[T](rows)
}

// One executes a query and maps the first row into T. Returns (nil, nil)
// when the result set is empty.
func One[T any](ctx context.Context, a *Adapter, q *query.Query) (*T, error) {
	results, err := All[T](ctx, a, q)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}
