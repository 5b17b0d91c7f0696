package query

import (
	"fmt"

	"github.com/quern-dev/quern/query/expr"
)

// appendCopy appends onto a fresh backing array so sibling builders
// branched from the same value never observe each other's clauses.
func appendCopy[T any](s []T, v ...T) []T {
	out := make([]T, len(s), len(s)+len(v))
	copy(out, s)
	return append(out, v...)
}

func andWhere(existing, added expr.Expr) expr.Expr {
	if existing == nil {
		return added
	}
	return expr.And(existing, added)
}

func asExpr(v any) expr.Expr {
	if e, ok := v.(expr.Expr); ok {
		return e
	}
	return expr.Val(v)
}

func incomplete(msg string) error {
	return fmt.Errorf("%w: %s", ErrIncompleteQuery, msg)
}
