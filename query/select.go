package query

import (
	"github.com/quern-dev/quern/query/expr"

	"github.com/quern-dev/quern/schema"
)

// SelectBuilder builds a select statement. The zero value is not usable;
// start with Select.
type SelectBuilder struct {
	q Query
}

// Select starts a select statement. With no columns the projection
// compiles to *.
func Select(columns ...expr.Expr) SelectBuilder {
	return SelectBuilder{q: Query{Kind: KindSelect, Columns: columns}}
}

// From sets the target table.
func (b SelectBuilder) From(table string) SelectBuilder {
	b.q.Table = table
	return b
}

// Where adds a filter. Successive calls are joined with AND.
func (b SelectBuilder) Where(condition expr.Expr) SelectBuilder {
	b.q.Where = andWhere(b.q.Where, condition)
	return b
}

// Join adds an inner join.
func (b SelectBuilder) Join(table string, on expr.Expr) SelectBuilder {
	b.q.Joins = appendCopy(b.q.Joins, Join{Table: table, Kind: JoinInner, On: on})
	return b
}

// LeftJoin adds a left outer join.
func (b SelectBuilder) LeftJoin(table string, on expr.Expr) SelectBuilder {
	b.q.Joins = appendCopy(b.q.Joins, Join{Table: table, Kind: JoinLeft, On: on})
	return b
}

// RightJoin adds a right outer join.
func (b SelectBuilder) RightJoin(table string, on expr.Expr) SelectBuilder {
	b.q.Joins = appendCopy(b.q.Joins, Join{Table: table, Kind: JoinRight, On: on})
	return b
}

// GroupBy adds grouping columns.
func (b SelectBuilder) GroupBy(columns ...expr.Column) SelectBuilder {
	b.q.GroupBy = appendCopy(b.q.GroupBy, columns...)
	return b
}

// Having adds a post-grouping filter. Successive calls are joined with AND.
func (b SelectBuilder) Having(condition expr.Expr) SelectBuilder {
	b.q.Having = andWhere(b.q.Having, condition)
	return b
}

// OrderBy appends an ascending ORDER BY term.
func (b SelectBuilder) OrderBy(column expr.Column) SelectBuilder {
	b.q.OrderBy = appendCopy(b.q.OrderBy, Ordering{Column: column})
	return b
}

// OrderByDesc appends a descending ORDER BY term.
func (b SelectBuilder) OrderByDesc(column expr.Column) SelectBuilder {
	b.q.OrderBy = appendCopy(b.q.OrderBy, Ordering{Column: column, Desc: true})
	return b
}

// Limit caps the number of returned rows.
func (b SelectBuilder) Limit(n int) SelectBuilder {
	b.q.Limit = &n
	return b
}

// Offset skips the first n rows.
func (b SelectBuilder) Offset(n int) SelectBuilder {
	b.q.Offset = &n
	return b
}

// Build validates the statement against the registry and returns the
// immutable Query. Column references are resolved here, never at
// execution time.
func (b SelectBuilder) Build(reg *schema.Registry) (*Query, error) {
	q := b.q
	if q.Table == "" {
		return nil, incomplete("select has no from clause")
	}
	if err := resolve(reg, &q); err != nil {
		return nil, err
	}
	return &q, nil
}
