// Package expr builds typed, immutable expression trees for query filters
// and projections. Every user-supplied literal becomes a bound parameter
// during compilation; literals are never inlined into SQL text.
package expr

// Expr is the tagged-variant interface implemented by all expression nodes.
// Trees are immutable and safe to share across queries and goroutines.
type Expr interface {
	isExpr()
}

// CompareOp is a binary comparison operator.
type CompareOp string

const (
	OpEq   CompareOp = "="
	OpNe   CompareOp = "<>"
	OpLt   CompareOp = "<"
	OpLe   CompareOp = "<="
	OpGt   CompareOp = ">"
	OpGe   CompareOp = ">="
	OpLike CompareOp = "LIKE"
)

// LogicalOp joins boolean expressions.
type LogicalOp string

const (
	OpAnd LogicalOp = "AND"
	OpOr  LogicalOp = "OR"
)

// Column references a registered column by table and name.
type Column struct {
	Table string
	Name  string
}

// Literal wraps a user-supplied value. It compiles to a placeholder.
type Literal struct {
	Value any
}

// Comparison applies a CompareOp to two operands.
type Comparison struct {
	Op    CompareOp
	Left  Expr
	Right Expr
}

// Logical joins two or more boolean operands with AND or OR.
type Logical struct {
	Op       LogicalOp
	Operands []Expr
}

// Negation inverts a boolean operand.
type Negation struct {
	Operand Expr
}

// InList tests membership of Left in Values.
type InList struct {
	Left    Expr
	Values  []Expr
	Negated bool
}

// NullCheck renders IS NULL, or IS NOT NULL when Negated.
type NullCheck struct {
	Operand Expr
	Negated bool
}

// Raw is an opaque SQL fragment. Each '?' in Template is replaced by the
// compiled form of the corresponding Args entry, so parameters stay bound.
type Raw struct {
	Template string
	Args     []Expr
}

func (Column) isExpr()     {}
func (Literal) isExpr()    {}
func (Comparison) isExpr() {}
func (Logical) isExpr()    {}
func (Negation) isExpr()   {}
func (InList) isExpr()     {}
func (NullCheck) isExpr()  {}
func (Raw) isExpr()        {}
