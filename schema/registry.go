package schema

import "fmt"

// Registry holds all registered table definitions. It is populated once
// during startup and treated as read-only afterwards, so lookups are safe
// for concurrent use without locking.
type Registry struct {
	tables map[string]*Table
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Register adds a table definition and returns its handle. Registering the
// same name twice fails with ErrDuplicateDefinition. Column names must be
// unique within the table, enum columns must list their values, and foreign
// key references must point at a previously registered column.
func (r *Registry) Register(name string, cols ...Column) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty table name", ErrInvalidDefinition)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: table %q has no columns", ErrInvalidDefinition, name)
	}
	if _, exists := r.tables[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateDefinition, name)
	}

	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: table %q has an unnamed column", ErrInvalidDefinition, name)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: table %q declares column %q twice", ErrInvalidDefinition, name, c.Name)
		}
		seen[c.Name] = true
		if c.Type == TypeEnum && len(c.EnumValues) == 0 {
			return nil, fmt.Errorf("%w: enum column %q.%q has no values", ErrInvalidDefinition, name, c.Name)
		}
		if ref := c.References; ref != nil {
			if _, err := r.Column(ref.Table, ref.Column); err != nil {
				return nil, fmt.Errorf("column %q.%q references %s.%s: %w",
					name, c.Name, ref.Table, ref.Column, err)
			}
		}
	}

	t := &Table{Name: name, Columns: append([]Column(nil), cols...)}
	t.buildIndex()
	r.tables[name] = t
	r.order = append(r.order, name)
	return t, nil
}

// Table returns the named table, or ErrUnknownTable.
func (r *Registry) Table(name string) (*Table, error) {
	t, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// Column resolves a column by table and column name.
func (r *Registry) Column(table, column string) (Column, error) {
	t, err := r.Table(table)
	if err != nil {
		return Column{}, err
	}
	c, ok := t.Column(column)
	if !ok {
		return Column{}, fmt.Errorf("%w: %q.%q", ErrUnknownColumn, table, column)
	}
	return c, nil
}

// Tables returns all registered tables in registration order.
func (r *Registry) Tables() []*Table {
	out := make([]*Table, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tables[name])
	}
	return out
}
