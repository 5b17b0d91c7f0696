package compile

import (
	"fmt"

	"github.com/quern-dev/quern/query"
	"github.com/quern-dev/quern/query/expr"
)

func (p *printer) printSelect(q *query.Query) error {
	p.write("SELECT ")
	if len(q.Columns) == 0 {
		p.write("*")
	} else {
		for i, col := range q.Columns {
			if i > 0 {
				p.write(", ")
			}
			if err := p.printExpr(col); err != nil {
				return err
			}
		}
	}

	p.write(" FROM ")
	p.write(p.quote(q.Table))

	for _, j := range q.Joins {
		p.write(" " + string(j.Kind) + " ")
		p.write(p.quote(j.Table))
		p.write(" ON ")
		if err := p.printExpr(j.On); err != nil {
			return err
		}
	}

	if err := p.printWhere(q.Where); err != nil {
		return err
	}

	if len(q.GroupBy) > 0 {
		p.write(" GROUP BY ")
		for i, col := range q.GroupBy {
			if i > 0 {
				p.write(", ")
			}
			if err := p.printExpr(col); err != nil {
				return err
			}
		}
	}

	if q.Having != nil {
		p.write(" HAVING ")
		if err := p.printExpr(q.Having); err != nil {
			return err
		}
	}

	if len(q.OrderBy) > 0 {
		p.write(" ORDER BY ")
		for i, o := range q.OrderBy {
			if i > 0 {
				p.write(", ")
			}
			if err := p.printExpr(o.Column); err != nil {
				return err
			}
			if o.Desc {
				p.write(" DESC")
			} else {
				p.write(" ASC")
			}
		}
	}

	if q.Limit != nil {
		p.write(" LIMIT ")
		p.placeholder(*q.Limit)
	}
	if q.Offset != nil {
		p.write(" OFFSET ")
		p.placeholder(*q.Offset)
	}
	return nil
}

func (p *printer) printInsert(q *query.Query) error {
	p.write("INSERT INTO ")
	p.write(p.quote(q.Table))

	if len(q.InsertColumns) > 0 {
		p.write(" (")
		for i, name := range q.InsertColumns {
			if i > 0 {
				p.write(", ")
			}
			p.write(p.quote(name))
		}
		p.write(")")
	}

	p.write(" VALUES ")
	for i, row := range q.InsertRows {
		if i > 0 {
			p.write(", ")
		}
		p.write("(")
		for j, v := range row {
			if j > 0 {
				p.write(", ")
			}
			if err := p.printExpr(v); err != nil {
				return err
			}
		}
		p.write(")")
	}

	return p.printReturning(q.Returning)
}

func (p *printer) printUpdate(q *query.Query) error {
	p.write("UPDATE ")
	p.write(p.quote(q.Table))
	p.write(" SET ")
	for i, a := range q.Assignments {
		if i > 0 {
			p.write(", ")
		}
		p.write(p.quote(a.Column))
		p.write(" = ")
		if err := p.printExpr(a.Value); err != nil {
			return err
		}
	}
	if err := p.printWhere(q.Where); err != nil {
		return err
	}
	return p.printReturning(q.Returning)
}

func (p *printer) printDelete(q *query.Query) error {
	p.write("DELETE FROM ")
	p.write(p.quote(q.Table))
	if err := p.printWhere(q.Where); err != nil {
		return err
	}
	return p.printReturning(q.Returning)
}

func (p *printer) printWhere(where expr.Expr) error {
	if where == nil {
		return nil
	}
	p.write(" WHERE ")
	return p.printExpr(where)
}

func (p *printer) printReturning(columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	if p.dialect == MySQL {
		return fmt.Errorf("returning is not supported by the mysql dialect")
	}
	p.write(" RETURNING ")
	for i, name := range columns {
		if i > 0 {
			p.write(", ")
		}
		p.write(p.quote(name))
	}
	return nil
}
