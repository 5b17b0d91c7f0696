package schema

import "errors"

var (
	// ErrDuplicateDefinition is returned when a table name is registered twice.
	ErrDuplicateDefinition = errors.New("duplicate table definition")

	// ErrUnknownTable is returned when a lookup names a table that was
	// never registered.
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnknownColumn is returned when a lookup names a column the table
	// does not have.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidDefinition is returned for definitions the registry
	// rejects outright, such as a table without columns.
	ErrInvalidDefinition = errors.New("invalid table definition")
)
