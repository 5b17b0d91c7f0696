package migrate

import (
	"fmt"

	"github.com/quern-dev/quern/query/compile"
	"github.com/quern-dev/quern/schema"
)

// ChangeType classifies a single schema change.
type ChangeType string

const (
	ChangeCreateTable ChangeType = "CreateTable"
	ChangeDropTable   ChangeType = "DropTable"
	ChangeAddColumn   ChangeType = "AddColumn"
	ChangeDropColumn  ChangeType = "DropColumn"
)

// Change is one DDL statement of a migration plan.
type Change struct {
	Type        ChangeType
	Table       string
	Column      string
	SQL         string
	Destructive bool
}

// Description names the change for conflict reports and CLI output.
func (c Change) Description() string {
	if c.Column != "" {
		return fmt.Sprintf("%s %s.%s", c.Type, c.Table, c.Column)
	}
	return fmt.Sprintf("%s %s", c.Type, c.Table)
}

// Plan is an ordered set of changes produced by a diff.
type Plan struct {
	Changes []Change
}

// Empty reports whether the plan contains no changes.
func (p *Plan) Empty() bool { return len(p.Changes) == 0 }

// Destructive returns the subset of changes that drop or rewrite data.
func (p *Plan) Destructive() []Change {
	var out []Change
	for _, c := range p.Changes {
		if c.Destructive {
			out = append(out, c)
		}
	}
	return out
}

// Statements returns the plan's DDL in execution order.
func (p *Plan) Statements() []string {
	out := make([]string, len(p.Changes))
	for i, c := range p.Changes {
		out[i] = c.SQL
	}
	return out
}

// diff compares the desired registry state against the last recorded
// snapshot. New tables come first in registration order (so foreign keys
// resolve), drops come last in reverse order.
func diff(reg *schema.Registry, snap *Snapshot, d compile.Dialect) *Plan {
	plan := &Plan{}

	old := make(map[string]*schema.Table, len(snap.Tables))
	for _, t := range snap.Tables {
		old[t.Name] = t
	}
	desired := make(map[string]bool)

	for _, t := range reg.Tables() {
		desired[t.Name] = true
		prev, ok := old[t.Name]
		if !ok {
			plan.Changes = append(plan.Changes, Change{
				Type:  ChangeCreateTable,
				Table: t.Name,
				SQL:   compile.CreateTableSQL(d, t),
			})
			continue
		}
		diffTable(plan, prev, t, d)
	}

	for i := len(snap.Tables) - 1; i >= 0; i-- {
		t := snap.Tables[i]
		if !desired[t.Name] {
			plan.Changes = append(plan.Changes, Change{
				Type:        ChangeDropTable,
				Table:       t.Name,
				SQL:         compile.DropTableSQL(d, t.Name),
				Destructive: true,
			})
		}
	}

	return plan
}

func diffTable(plan *Plan, prev, next *schema.Table, d compile.Dialect) {
	prevCols := make(map[string]schema.Column, len(prev.Columns))
	for _, c := range prev.Columns {
		prevCols[c.Name] = c
	}
	nextCols := make(map[string]bool)

	for _, c := range next.Columns {
		nextCols[c.Name] = true
		old, ok := prevCols[c.Name]
		if !ok {
			plan.Changes = append(plan.Changes, Change{
				Type:   ChangeAddColumn,
				Table:  next.Name,
				Column: c.Name,
				SQL:    compile.AddColumnSQL(d, next.Name, c),
				// Adding a required column without a default cannot be
				// applied to a table that already holds rows.
				Destructive: !c.Nullable && c.Default == nil && c.Type != schema.TypeSerial,
			})
			continue
		}
		if !columnsEqual(old, c) {
			// Column rewrites are expressed as drop-and-add; both halves
			// need explicit confirmation.
			plan.Changes = append(plan.Changes, Change{
				Type:        ChangeDropColumn,
				Table:       next.Name,
				Column:      c.Name,
				SQL:         compile.DropColumnSQL(d, next.Name, c.Name),
				Destructive: true,
			})
			plan.Changes = append(plan.Changes, Change{
				Type:        ChangeAddColumn,
				Table:       next.Name,
				Column:      c.Name,
				SQL:         compile.AddColumnSQL(d, next.Name, c),
				Destructive: true,
			})
		}
	}

	for _, c := range prev.Columns {
		if !nextCols[c.Name] {
			plan.Changes = append(plan.Changes, Change{
				Type:        ChangeDropColumn,
				Table:       next.Name,
				Column:      c.Name,
				SQL:         compile.DropColumnSQL(d, next.Name, c.Name),
				Destructive: true,
			})
		}
	}
}

// columnsEqual compares definitions. Defaults are compared by rendered
// value so JSON round-tripped snapshots (which decode numbers as float64)
// do not produce phantom changes.
func columnsEqual(a, b schema.Column) bool {
	if a.Type != b.Type || a.Nullable != b.Nullable || a.Unique != b.Unique || a.PrimaryKey != b.PrimaryKey {
		return false
	}
	if fmt.Sprint(a.Default) != fmt.Sprint(b.Default) {
		return false
	}
	if len(a.EnumValues) != len(b.EnumValues) {
		return false
	}
	for i := range a.EnumValues {
		if a.EnumValues[i] != b.EnumValues[i] {
			return false
		}
	}
	refA, refB := a.References, b.References
	if (refA == nil) != (refB == nil) {
		return false
	}
	if refA != nil && *refA != *refB {
		return false
	}
	return true
}
