package runtime

import (
	"database/sql"
	"reflect"
	"strings"
	"unicode"
)

// ScanRows maps every row into a struct of type T. Columns match struct
// fields by `db` tag first, then by snake_case of the field name. Columns
// without a matching field are discarded.
func ScanRows[T any](rows *sql.Rows) ([]T, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []T
	for rows.Next() {
		var result T
		val := reflect.ValueOf(&result).Elem()

		targets := make([]any, len(columns))
		for i, colName := range columns {
			if f := fieldForColumn(val, colName); f.IsValid() && f.CanAddr() {
				targets[i] = f.Addr().Interface()
			} else {
				targets[i] = new(sql.RawBytes)
			}
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func fieldForColumn(structVal reflect.Value, column string) reflect.Value {
	typ := structVal.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		if tag, ok := field.Tag.Lookup("db"); ok {
			if tag == column {
				return structVal.Field(i)
			}
			continue
		}
		if snakeCase(field.Name) == column {
			return structVal.Field(i)
		}
	}
	return reflect.Value{}
}

// snakeCase converts FullName to full_name and UserID to user_id; runs of
// uppercase letters form one word.
func snakeCase(name string) string {
	var sb strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && !unicode.IsUpper(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
