package query

import (
	"fmt"

	"github.com/quern-dev/quern/query/expr"

	"github.com/quern-dev/quern/schema"
)

// InsertBuilder builds an insert statement. Start with Insert.
type InsertBuilder struct {
	q   Query
	err error
}

// Insert starts an insert into the given table.
func Insert(table string) InsertBuilder {
	return InsertBuilder{q: Query{Kind: KindInsert, Table: table}}
}

// Columns sets the column list. Every Values row must match its length.
func (b InsertBuilder) Columns(names ...string) InsertBuilder {
	b.q.InsertColumns = appendCopy(b.q.InsertColumns[:0], names...)
	return b
}

// Values appends one row. Plain Go values become bound parameters;
// expr values are compiled in place.
func (b InsertBuilder) Values(values ...any) InsertBuilder {
	if b.err != nil {
		return b
	}
	if len(b.q.InsertColumns) > 0 && len(values) != len(b.q.InsertColumns) {
		b.err = incomplete(fmt.Sprintf("insert row has %d values for %d columns",
			len(values), len(b.q.InsertColumns)))
		return b
	}
	row := make([]expr.Expr, len(values))
	for i, v := range values {
		row[i] = asExpr(v)
	}
	b.q.InsertRows = appendCopy(b.q.InsertRows, row)
	return b
}

// Returning names the columns the database should return for each
// inserted row.
func (b InsertBuilder) Returning(columns ...string) InsertBuilder {
	b.q.Returning = appendCopy(b.q.Returning[:0], columns...)
	return b
}

// Build validates and returns the immutable Query. Inserts without a
// Values row fail with ErrIncompleteQuery.
func (b InsertBuilder) Build(reg *schema.Registry) (*Query, error) {
	if b.err != nil {
		return nil, b.err
	}
	q := b.q
	if len(q.InsertRows) == 0 {
		return nil, incomplete("insert has no values")
	}
	if err := resolve(reg, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateBuilder builds an update statement. Start with Update.
type UpdateBuilder struct {
	q Query
}

// Update starts an update of the given table.
func Update(table string) UpdateBuilder {
	return UpdateBuilder{q: Query{Kind: KindUpdate, Table: table}}
}

// Set assigns a value to a column. Assignments compile in call order.
func (b UpdateBuilder) Set(column string, value any) UpdateBuilder {
	b.q.Assignments = appendCopy(b.q.Assignments, Assignment{Column: column, Value: asExpr(value)})
	return b
}

// Where adds a filter. Successive calls are joined with AND.
func (b UpdateBuilder) Where(condition expr.Expr) UpdateBuilder {
	b.q.Where = andWhere(b.q.Where, condition)
	return b
}

// Returning names columns to return for each updated row.
func (b UpdateBuilder) Returning(columns ...string) UpdateBuilder {
	b.q.Returning = appendCopy(b.q.Returning[:0], columns...)
	return b
}

// Build validates and returns the immutable Query. Updates without a
// Set clause fail with ErrIncompleteQuery.
func (b UpdateBuilder) Build(reg *schema.Registry) (*Query, error) {
	q := b.q
	if len(q.Assignments) == 0 {
		return nil, incomplete("update has no set clause")
	}
	if err := resolve(reg, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// DeleteBuilder builds a delete statement. Start with Delete.
type DeleteBuilder struct {
	q Query
}

// Delete starts a delete from the given table.
func Delete(table string) DeleteBuilder {
	return DeleteBuilder{q: Query{Kind: KindDelete, Table: table}}
}

// Where adds a filter. Successive calls are joined with AND.
func (b DeleteBuilder) Where(condition expr.Expr) DeleteBuilder {
	b.q.Where = andWhere(b.q.Where, condition)
	return b
}

// Returning names columns to return for each deleted row.
func (b DeleteBuilder) Returning(columns ...string) DeleteBuilder {
	b.q.Returning = appendCopy(b.q.Returning[:0], columns...)
	return b
}

// Build validates and returns the immutable Query. A delete without a
// Where clause fails with ErrIncompleteQuery; deleting every row must be
// spelled out with an explicit always-true filter.
func (b DeleteBuilder) Build(reg *schema.Registry) (*Query, error) {
	q := b.q
	if q.Where == nil {
		return nil, incomplete("delete has no where clause")
	}
	if err := resolve(reg, &q); err != nil {
		return nil, err
	}
	return &q, nil
}
