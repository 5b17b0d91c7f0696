package sdl

import (
	"fmt"
	"math"

	"github.com/quern-dev/quern/schema"
)

var typeNames = map[string]schema.ColumnType{
	"serial":    schema.TypeSerial,
	"integer":   schema.TypeInteger,
	"int":       schema.TypeInteger,
	"text":      schema.TypeText,
	"string":    schema.TypeText,
	"boolean":   schema.TypeBoolean,
	"bool":      schema.TypeBoolean,
	"float":     schema.TypeFloat,
	"double":    schema.TypeFloat,
	"timestamp": schema.TypeTimestamp,
	"enum":      schema.TypeEnum,
}

// Apply registers every table of a parsed file, in declaration order.
func Apply(f *File, reg *schema.Registry) error {
	for _, decl := range f.Tables {
		cols := make([]schema.Column, 0, len(decl.Columns))
		for _, cd := range decl.Columns {
			col, err := convertColumn(cd)
			if err != nil {
				return err
			}
			cols = append(cols, col)
		}
		if _, err := reg.Register(decl.Name, cols...); err != nil {
			return fmt.Errorf("%s: %w", decl.Pos, err)
		}
	}
	return nil
}

// LoadString parses and registers a schema in one step, returning the
// populated registry.
func LoadString(filename, input string) (*schema.Registry, error) {
	f, err := ParseString(filename, input)
	if err != nil {
		return nil, err
	}
	reg := schema.NewRegistry()
	if err := Apply(f, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func convertColumn(cd *ColumnDecl) (schema.Column, error) {
	typ, ok := typeNames[cd.Type]
	if !ok {
		return schema.Column{}, fmt.Errorf("%s: unknown column type %q", cd.Pos, cd.Type)
	}
	if typ == schema.TypeEnum && len(cd.Enum) == 0 {
		return schema.Column{}, fmt.Errorf("%s: enum column %q has no values", cd.Pos, cd.Name)
	}
	if typ != schema.TypeEnum && len(cd.Enum) > 0 {
		return schema.Column{}, fmt.Errorf("%s: column type %q takes no value list", cd.Pos, cd.Type)
	}

	col := schema.Column{
		Name:       cd.Name,
		Type:       typ,
		EnumValues: cd.Enum,
	}

	for _, attr := range cd.Attrs {
		switch attr.Name {
		case "pk":
			col.PrimaryKey = true
		case "unique":
			col.Unique = true
		case "nullable":
			col.Nullable = true
		case "default":
			if len(attr.Args) != 1 {
				return schema.Column{}, fmt.Errorf("%s: @default takes exactly one argument", attr.Pos)
			}
			col.Default = argValue(attr.Args[0])
		case "references":
			if len(attr.Args) != 1 || attr.Args[0].Ref == nil || attr.Args[0].Ref.Column == nil {
				return schema.Column{}, fmt.Errorf("%s: @references takes a table.column argument", attr.Pos)
			}
			col.References = &schema.Reference{
				Table:  attr.Args[0].Ref.Table,
				Column: *attr.Args[0].Ref.Column,
			}
		default:
			return schema.Column{}, fmt.Errorf("%s: unknown attribute @%s", attr.Pos, attr.Name)
		}
	}
	return col, nil
}

func argValue(arg *AttrArg) any {
	switch {
	case arg.Str != nil:
		return *arg.Str
	case arg.Number != nil:
		n := *arg.Number
		if n == math.Trunc(n) {
			return int64(n)
		}
		return n
	case arg.Ref != nil:
		switch arg.Ref.Table {
		case "true":
			return true
		case "false":
			return false
		default:
			// Bare identifiers (enum members) are string defaults.
			return arg.Ref.Table
		}
	default:
		return nil
	}
}
