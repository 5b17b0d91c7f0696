package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quern-dev/quern/schema"
)

func usersColumns() []schema.Column {
	return []schema.Column{
		{Name: "id", Type: schema.TypeSerial, PrimaryKey: true},
		{Name: "full_name", Type: schema.TypeText},
		{Name: "age", Type: schema.TypeInteger, Nullable: true},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := schema.NewRegistry()

	users, err := reg.Register("users", usersColumns()...)
	require.NoError(t, err)
	require.Equal(t, "users", users.Name)

	// Every registered column must resolve.
	for _, c := range usersColumns() {
		got, err := reg.Column("users", c.Name)
		require.NoError(t, err)
		assert.Equal(t, c.Type, got.Type)
	}

	assert.Equal(t, []string{"id"}, users.PrimaryKey())
}

func TestRegistry_DuplicateDefinition(t *testing.T) {
	reg := schema.NewRegistry()

	_, err := reg.Register("users", usersColumns()...)
	require.NoError(t, err)

	_, err = reg.Register("users", usersColumns()...)
	require.ErrorIs(t, err, schema.ErrDuplicateDefinition)
}

func TestRegistry_UnknownLookups(t *testing.T) {
	reg := schema.NewRegistry()
	_, err := reg.Register("users", usersColumns()...)
	require.NoError(t, err)

	_, err = reg.Column("posts", "id")
	assert.ErrorIs(t, err, schema.ErrUnknownTable)

	_, err = reg.Column("users", "email")
	assert.ErrorIs(t, err, schema.ErrUnknownColumn)
}

func TestRegistry_InvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		fn   func(r *schema.Registry) error
	}{
		{
			name: "no columns",
			fn: func(r *schema.Registry) error {
				_, err := r.Register("empty")
				return err
			},
		},
		{
			name: "duplicate column",
			fn: func(r *schema.Registry) error {
				_, err := r.Register("t",
					schema.Column{Name: "a", Type: schema.TypeText},
					schema.Column{Name: "a", Type: schema.TypeText})
				return err
			},
		},
		{
			name: "enum without values",
			fn: func(r *schema.Registry) error {
				_, err := r.Register("t", schema.Column{Name: "role", Type: schema.TypeEnum})
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fn(schema.NewRegistry()), schema.ErrInvalidDefinition)
		})
	}
}

func TestRegistry_ForeignKeyMustResolve(t *testing.T) {
	reg := schema.NewRegistry()

	_, err := reg.Register("posts", schema.Column{
		Name: "author_id", Type: schema.TypeInteger,
		References: &schema.Reference{Table: "users", Column: "id"},
	})
	require.ErrorIs(t, err, schema.ErrUnknownTable)

	_, err = reg.Register("users", usersColumns()...)
	require.NoError(t, err)

	_, err = reg.Register("posts",
		schema.Column{Name: "id", Type: schema.TypeSerial, PrimaryKey: true},
		schema.Column{
			Name: "author_id", Type: schema.TypeInteger,
			References: &schema.Reference{Table: "users", Column: "id"},
		})
	require.NoError(t, err)
}

func TestRegistry_TablesKeepRegistrationOrder(t *testing.T) {
	reg := schema.NewRegistry()
	for _, name := range []string{"users", "teams", "posts"} {
		_, err := reg.Register(name, schema.Column{Name: "id", Type: schema.TypeSerial, PrimaryKey: true})
		require.NoError(t, err)
	}

	var names []string
	for _, tbl := range reg.Tables() {
		names = append(names, tbl.Name)
	}
	assert.Equal(t, []string{"users", "teams", "posts"}, names)
}
