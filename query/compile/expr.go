package compile

import (
	"fmt"
	"strings"

	"github.com/quern-dev/quern/query/expr"
)

func (p *printer) printExpr(e expr.Expr) error {
	switch v := e.(type) {
	case expr.Column:
		p.write(p.quote(v.Table))
		p.write(".")
		p.write(p.quote(v.Name))
		return nil

	case expr.Literal:
		p.placeholder(v.Value)
		return nil

	case expr.Comparison:
		if err := p.printExpr(v.Left); err != nil {
			return err
		}
		p.write(" " + string(v.Op) + " ")
		return p.printExpr(v.Right)

	case expr.Logical:
		if len(v.Operands) == 0 {
			return fmt.Errorf("%s expression has no operands", v.Op)
		}
		p.write("(")
		for i, op := range v.Operands {
			if i > 0 {
				p.write(" " + string(v.Op) + " ")
			}
			if err := p.printExpr(op); err != nil {
				return err
			}
		}
		p.write(")")
		return nil

	case expr.Negation:
		p.write("NOT (")
		if err := p.printExpr(v.Operand); err != nil {
			return err
		}
		p.write(")")
		return nil

	case expr.InList:
		if len(v.Values) == 0 {
			return fmt.Errorf("IN list has no values")
		}
		if err := p.printExpr(v.Left); err != nil {
			return err
		}
		if v.Negated {
			p.write(" NOT IN (")
		} else {
			p.write(" IN (")
		}
		for i, val := range v.Values {
			if i > 0 {
				p.write(", ")
			}
			if err := p.printExpr(val); err != nil {
				return err
			}
		}
		p.write(")")
		return nil

	case expr.NullCheck:
		if err := p.printExpr(v.Operand); err != nil {
			return err
		}
		if v.Negated {
			p.write(" IS NOT NULL")
		} else {
			p.write(" IS NULL")
		}
		return nil

	case expr.Raw:
		return p.printRaw(v)

	default:
		return fmt.Errorf("unsupported expression %T", e)
	}
}

// printRaw interpolates compiled args into the template's '?' slots. The
// template text itself is emitted verbatim; only the slots carry values, so
// raw fragments never inline user input.
func (p *printer) printRaw(r expr.Raw) error {
	parts := strings.Split(r.Template, "?")
	if len(parts)-1 != len(r.Args) {
		return fmt.Errorf("raw fragment %q has %d slots for %d args",
			r.Template, len(parts)-1, len(r.Args))
	}
	for i, part := range parts {
		p.write(part)
		if i < len(r.Args) {
			if err := p.printExpr(r.Args[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
