// Package query composes select, insert, update, and delete statements into
// an intermediate representation. Builders are copy-on-write: every method
// returns a new value, so a partially built query can be branched and
// reused safely across goroutines.
package query

import (
	"errors"

	"github.com/quern-dev/quern/query/expr"
)

// ErrIncompleteQuery is returned by Build when a clause required for the
// statement kind is missing.
var ErrIncompleteQuery = errors.New("incomplete query")

// Kind is the statement kind of a Query.
type Kind string

const (
	KindSelect Kind = "select"
	KindInsert Kind = "insert"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// JoinKind selects the join operator.
type JoinKind string

const (
	JoinInner JoinKind = "INNER JOIN"
	JoinLeft  JoinKind = "LEFT JOIN"
	JoinRight JoinKind = "RIGHT JOIN"
)

// Join is one joined table with its condition. Joins compile in
// declaration order.
type Join struct {
	Table string
	Kind  JoinKind
	On    expr.Expr
}

// Ordering is a single ORDER BY term.
type Ordering struct {
	Column expr.Column
	Desc   bool
}

// Assignment is one SET clause of an update, kept in Set call order.
type Assignment struct {
	Column string
	Value  expr.Expr
}

// Query is the validated intermediate representation produced by a
// builder's Build call. It is immutable once built; compiling the same
// Query twice yields identical SQL text and parameter order.
type Query struct {
	Kind    Kind
	Table   string
	Columns []expr.Expr
	Joins   []Join
	Where   expr.Expr
	GroupBy []expr.Column
	Having  expr.Expr
	OrderBy []Ordering
	Limit   *int
	Offset  *int

	// Insert state. Every row follows InsertColumns' order.
	InsertColumns []string
	InsertRows    [][]expr.Expr

	Assignments []Assignment

	Returning []string
}
