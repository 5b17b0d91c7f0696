package expr

// Col references a column on a registered table.
func Col(table, name string) Column {
	return Column{Table: table, Name: name}
}

// Val wraps a literal value.
func Val(v any) Literal {
	return Literal{Value: v}
}

// operand accepts Exprs or plain Go values; plain values are wrapped as
// literals so call sites can write Eq(Col("users", "id"), 1).
func operand(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return Literal{Value: v}
}

func compare(op CompareOp, left, right any) Comparison {
	return Comparison{Op: op, Left: operand(left), Right: operand(right)}
}

// Eq builds left = right.
func Eq(left, right any) Comparison { return compare(OpEq, left, right) }

// Ne builds left <> right.
func Ne(left, right any) Comparison { return compare(OpNe, left, right) }

// Lt builds left < right.
func Lt(left, right any) Comparison { return compare(OpLt, left, right) }

// Le builds left <= right.
func Le(left, right any) Comparison { return compare(OpLe, left, right) }

// Gt builds left > right.
func Gt(left, right any) Comparison { return compare(OpGt, left, right) }

// Ge builds left >= right.
func Ge(left, right any) Comparison { return compare(OpGe, left, right) }

// Like builds left LIKE right.
func Like(left, right any) Comparison { return compare(OpLike, left, right) }

// And joins operands with AND.
func And(operands ...Expr) Logical {
	return Logical{Op: OpAnd, Operands: operands}
}

// Or joins operands with OR.
func Or(operands ...Expr) Logical {
	return Logical{Op: OpOr, Operands: operands}
}

// Not inverts an operand.
func Not(operand Expr) Negation {
	return Negation{Operand: operand}
}

// In tests membership of left in the given values.
func In(left Expr, values ...any) InList {
	vs := make([]Expr, len(values))
	for i, v := range values {
		vs[i] = operand(v)
	}
	return InList{Left: left, Values: vs}
}

// NotIn tests non-membership of left in the given values.
func NotIn(left Expr, values ...any) InList {
	in := In(left, values...)
	in.Negated = true
	return in
}

// IsNull tests operand IS NULL.
func IsNull(operand Expr) NullCheck {
	return NullCheck{Operand: operand}
}

// IsNotNull tests operand IS NOT NULL.
func IsNotNull(operand Expr) NullCheck {
	return NullCheck{Operand: operand, Negated: true}
}

// SQL builds a raw fragment. Each '?' in template consumes one arg; args
// keep their parameters tracked through compilation.
func SQL(template string, args ...Expr) Raw {
	return Raw{Template: template, Args: args}
}
