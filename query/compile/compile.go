// Package compile renders query IR into dialect-specific SQL text plus an
// ordered parameter list. Compilation is a pure function of the query and
// dialect: the same query always yields byte-identical SQL and the same
// parameter order.
package compile

import (
	"fmt"
	"strings"

	"github.com/quern-dev/quern/query"
)

// Dialect selects placeholder style, identifier quoting, and column type
// mapping.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// Compiled is an executable statement: SQL text plus bound parameters in
// placeholder order.
type Compiled struct {
	SQL  string
	Args []any
}

// Compiler compiles queries for one dialect.
type Compiler struct {
	dialect Dialect
}

// New creates a compiler for the given dialect.
func New(dialect Dialect) *Compiler {
	return &Compiler{dialect: dialect}
}

// Dialect returns the compiler's dialect.
func (c *Compiler) Dialect() Dialect { return c.dialect }

// Compile renders a built query.
func (c *Compiler) Compile(q *query.Query) (*Compiled, error) {
	p := &printer{dialect: c.dialect}

	var err error
	switch q.Kind {
	case query.KindSelect:
		err = p.printSelect(q)
	case query.KindInsert:
		err = p.printInsert(q)
	case query.KindUpdate:
		err = p.printUpdate(q)
	case query.KindDelete:
		err = p.printDelete(q)
	default:
		return nil, fmt.Errorf("unsupported query kind %q", q.Kind)
	}
	if err != nil {
		return nil, err
	}

	return &Compiled{SQL: p.sb.String(), Args: p.args}, nil
}

// printer accumulates SQL text and bound parameters for one statement.
type printer struct {
	dialect Dialect
	sb      strings.Builder
	args    []any
	n       int
}

func (p *printer) write(s string) {
	p.sb.WriteString(s)
}

// placeholder appends one bound value and writes its placeholder.
func (p *printer) placeholder(v any) {
	p.n++
	p.args = append(p.args, v)
	if p.dialect == Postgres {
		fmt.Fprintf(&p.sb, "$%d", p.n)
	} else {
		p.sb.WriteString("?")
	}
}

func (p *printer) quote(ident string) string {
	return quoteIdent(p.dialect, ident)
}

func quoteIdent(d Dialect, ident string) string {
	if d == MySQL {
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
