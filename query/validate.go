package query

import (
	"fmt"

	"github.com/quern-dev/quern/query/expr"

	"github.com/quern-dev/quern/schema"
)

// resolve checks every table and column reference in the query against the
// registry. Queries never reach the compiler with unresolved references.
func resolve(reg *schema.Registry, q *Query) error {
	if _, err := reg.Table(q.Table); err != nil {
		return err
	}
	for _, j := range q.Joins {
		if _, err := reg.Table(j.Table); err != nil {
			return fmt.Errorf("join %s: %w", j.Table, err)
		}
		if err := resolveExpr(reg, j.On); err != nil {
			return err
		}
	}
	for _, c := range q.Columns {
		if err := resolveExpr(reg, c); err != nil {
			return err
		}
	}
	if err := resolveExpr(reg, q.Where); err != nil {
		return err
	}
	for _, c := range q.GroupBy {
		if err := resolveExpr(reg, c); err != nil {
			return err
		}
	}
	if err := resolveExpr(reg, q.Having); err != nil {
		return err
	}
	for _, o := range q.OrderBy {
		if err := resolveExpr(reg, o.Column); err != nil {
			return err
		}
	}
	for _, name := range q.InsertColumns {
		if _, err := reg.Column(q.Table, name); err != nil {
			return err
		}
	}
	for _, row := range q.InsertRows {
		for _, v := range row {
			if err := resolveExpr(reg, v); err != nil {
				return err
			}
		}
	}
	for _, a := range q.Assignments {
		if _, err := reg.Column(q.Table, a.Column); err != nil {
			return err
		}
		if err := resolveExpr(reg, a.Value); err != nil {
			return err
		}
	}
	for _, name := range q.Returning {
		if _, err := reg.Column(q.Table, name); err != nil {
			return err
		}
	}
	return nil
}

func resolveExpr(reg *schema.Registry, e expr.Expr) error {
	switch v := e.(type) {
	case nil:
		return nil
	case expr.Column:
		_, err := reg.Column(v.Table, v.Name)
		return err
	case expr.Literal:
		return nil
	case expr.Comparison:
		if err := resolveExpr(reg, v.Left); err != nil {
			return err
		}
		return resolveExpr(reg, v.Right)
	case expr.Logical:
		for _, op := range v.Operands {
			if err := resolveExpr(reg, op); err != nil {
				return err
			}
		}
		return nil
	case expr.Negation:
		return resolveExpr(reg, v.Operand)
	case expr.InList:
		if err := resolveExpr(reg, v.Left); err != nil {
			return err
		}
		for _, val := range v.Values {
			if err := resolveExpr(reg, val); err != nil {
				return err
			}
		}
		return nil
	case expr.NullCheck:
		return resolveExpr(reg, v.Operand)
	case expr.Raw:
		for _, arg := range v.Args {
			if err := resolveExpr(reg, arg); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported expression %T", e)
	}
}
