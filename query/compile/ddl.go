package compile

import (
	"fmt"
	"strings"

	"github.com/quern-dev/quern/schema"
)

// TypeSQL maps a logical column type to the dialect's column type.
func TypeSQL(d Dialect, c schema.Column) string {
	switch c.Type {
	case schema.TypeSerial:
		switch d {
		case MySQL:
			return "INT AUTO_INCREMENT"
		case SQLite:
			return "INTEGER"
		default:
			return "SERIAL"
		}
	case schema.TypeInteger:
		if d == MySQL {
			return "INT"
		}
		return "INTEGER"
	case schema.TypeText:
		return "TEXT"
	case schema.TypeBoolean:
		return "BOOLEAN"
	case schema.TypeFloat:
		switch d {
		case Postgres:
			return "DOUBLE PRECISION"
		case MySQL:
			return "DOUBLE"
		default:
			return "REAL"
		}
	case schema.TypeTimestamp:
		switch d {
		case Postgres:
			return "TIMESTAMPTZ"
		case MySQL:
			return "DATETIME"
		default:
			return "TIMESTAMP"
		}
	case schema.TypeEnum:
		if d == MySQL {
			vals := make([]string, len(c.EnumValues))
			for i, v := range c.EnumValues {
				vals[i] = quoteString(v)
			}
			return fmt.Sprintf("ENUM(%s)", strings.Join(vals, ", "))
		}
		return "TEXT"
	default:
		return strings.ToUpper(string(c.Type))
	}
}

// ColumnSQL renders the full column clause for CREATE TABLE and ADD COLUMN.
func ColumnSQL(d Dialect, c schema.Column) string {
	var sb strings.Builder
	sb.WriteString(quoteIdent(d, c.Name))
	sb.WriteString(" ")
	sb.WriteString(TypeSQL(d, c))

	// SQLite autoincrement keys must be declared inline.
	if d == SQLite && c.Type == schema.TypeSerial && c.PrimaryKey {
		sb.WriteString(" PRIMARY KEY AUTOINCREMENT")
		return sb.String()
	}

	if !c.Nullable {
		sb.WriteString(" NOT NULL")
	}
	if c.Default != nil {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(literalSQL(c.Default))
	}
	if c.Unique {
		sb.WriteString(" UNIQUE")
	}
	if c.Type == schema.TypeEnum && d != MySQL {
		vals := make([]string, len(c.EnumValues))
		for i, v := range c.EnumValues {
			vals[i] = quoteString(v)
		}
		fmt.Fprintf(&sb, " CHECK (%s IN (%s))", quoteIdent(d, c.Name), strings.Join(vals, ", "))
	}
	return sb.String()
}

// CreateTableSQL renders a CREATE TABLE statement for a registered table.
func CreateTableSQL(d Dialect, t *schema.Table) string {
	var clauses []string
	inlinePK := false
	for _, c := range t.Columns {
		clauses = append(clauses, "  "+ColumnSQL(d, c))
		if d == SQLite && c.Type == schema.TypeSerial && c.PrimaryKey {
			inlinePK = true
		}
	}

	if pk := t.PrimaryKey(); len(pk) > 0 && !inlinePK {
		quoted := make([]string, len(pk))
		for i, name := range pk {
			quoted[i] = quoteIdent(d, name)
		}
		clauses = append(clauses, fmt.Sprintf("  PRIMARY KEY (%s)", strings.Join(quoted, ", ")))
	}

	for _, c := range t.Columns {
		if c.References == nil {
			continue
		}
		clauses = append(clauses, fmt.Sprintf("  FOREIGN KEY (%s) REFERENCES %s (%s)",
			quoteIdent(d, c.Name),
			quoteIdent(d, c.References.Table),
			quoteIdent(d, c.References.Column)))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n)", quoteIdent(d, t.Name), strings.Join(clauses, ",\n"))
}

// AddColumnSQL renders an ALTER TABLE ... ADD COLUMN statement.
func AddColumnSQL(d Dialect, table string, c schema.Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", quoteIdent(d, table), ColumnSQL(d, c))
}

// DropColumnSQL renders an ALTER TABLE ... DROP COLUMN statement.
func DropColumnSQL(d Dialect, table, column string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", quoteIdent(d, table), quoteIdent(d, column))
}

// DropTableSQL renders a DROP TABLE statement.
func DropTableSQL(d Dialect, table string) string {
	return fmt.Sprintf("DROP TABLE %s", quoteIdent(d, table))
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func literalSQL(v any) string {
	switch t := v.(type) {
	case string:
		return quoteString(t)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", t)
	}
}
