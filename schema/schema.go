// Package schema defines tables and columns and the registry that holds them.
package schema

// ColumnType is the logical scalar type of a column. Dialect-specific
// column types are derived from it during SQL and DDL generation.
type ColumnType string

const (
	TypeInteger   ColumnType = "integer"
	TypeText      ColumnType = "text"
	TypeBoolean   ColumnType = "boolean"
	TypeFloat     ColumnType = "float"
	TypeSerial    ColumnType = "serial"
	TypeTimestamp ColumnType = "timestamp"
	TypeEnum      ColumnType = "enum"
)

// Reference points a column at another table's column (foreign key).
type Reference struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

// Column describes a single column. Identity is (table, name).
type Column struct {
	Name       string     `json:"name"`
	Type       ColumnType `json:"type"`
	Nullable   bool       `json:"nullable,omitempty"`
	Default    any        `json:"default,omitempty"`
	PrimaryKey bool       `json:"primary_key,omitempty"`
	Unique     bool       `json:"unique,omitempty"`
	EnumValues []string   `json:"enum_values,omitempty"`
	References *Reference `json:"references,omitempty"`
}

// Table is an immutable table definition. Construct via Registry.Register.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`

	index map[string]int
}

// Column returns the named column definition.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.Columns[i], true
}

// PrimaryKey returns the names of the primary key columns in declaration order.
func (t *Table) PrimaryKey() []string {
	var pk []string
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pk = append(pk, c.Name)
		}
	}
	return pk
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c.Name] = i
	}
}
