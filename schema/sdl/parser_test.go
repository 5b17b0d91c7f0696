package sdl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quern-dev/quern/schema"
	"github.com/quern-dev/quern/schema/sdl"
)

const sampleSchema = `
// Users of the system.
table users {
    id        serial  @pk
    full_name text
    age       integer @nullable
    role      enum(admin, member) @default(member)
}

table posts {
    id        serial  @pk
    title     text
    author_id integer @references(users.id)
}
`

func TestParse_Sample(t *testing.T) {
	f, err := sdl.ParseString("schema.quern", sampleSchema)
	require.NoError(t, err)
	require.Len(t, f.Tables, 2)

	users := f.Tables[0]
	assert.Equal(t, "users", users.Name)
	require.Len(t, users.Columns, 4)

	role := users.Columns[3]
	assert.Equal(t, "enum", role.Type)
	assert.Equal(t, []string{"admin", "member"}, role.Enum)
	require.Len(t, role.Attrs, 1)
	assert.Equal(t, "default", role.Attrs[0].Name)
}

func TestLoadString_RegistersTables(t *testing.T) {
	reg, err := sdl.LoadString("schema.quern", sampleSchema)
	require.NoError(t, err)

	id, err := reg.Column("users", "id")
	require.NoError(t, err)
	assert.Equal(t, schema.TypeSerial, id.Type)
	assert.True(t, id.PrimaryKey)

	age, err := reg.Column("users", "age")
	require.NoError(t, err)
	assert.True(t, age.Nullable)

	role, err := reg.Column("users", "role")
	require.NoError(t, err)
	assert.Equal(t, schema.TypeEnum, role.Type)
	assert.Equal(t, "member", role.Default)

	author, err := reg.Column("posts", "author_id")
	require.NoError(t, err)
	require.NotNil(t, author.References)
	assert.Equal(t, schema.Reference{Table: "users", Column: "id"}, *author.References)
}

func TestLoadString_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "unknown type",
			input:   "table t {\n  a blob\n}",
			wantErr: "unknown column type",
		},
		{
			name:    "unknown attribute",
			input:   "table t {\n  a text @indexed\n}",
			wantErr: "unknown attribute",
		},
		{
			name:    "enum without values",
			input:   "table t {\n  a enum\n}",
			wantErr: "has no values",
		},
		{
			name:    "bad references argument",
			input:   "table t {\n  a integer @references(users)\n}",
			wantErr: "table.column",
		},
		{
			name:    "duplicate table",
			input:   "table t {\n  a text\n}\ntable t {\n  a text\n}",
			wantErr: "duplicate table definition",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sdl.LoadString("schema.quern", tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := sdl.ParseString("schema.quern", "table {\n  a text\n}")
	require.Error(t, err)
}

func TestParse_DefaultValues(t *testing.T) {
	reg, err := sdl.LoadString("schema.quern", `
table settings {
    id      serial  @pk
    retries integer @default(3)
    ratio   float   @default(0.5)
    label   text    @default("none")
    active  boolean @default(true)
}
`)
	require.NoError(t, err)

	retries, err := reg.Column("settings", "retries")
	require.NoError(t, err)
	assert.Equal(t, int64(3), retries.Default)

	ratio, err := reg.Column("settings", "ratio")
	require.NoError(t, err)
	assert.Equal(t, 0.5, ratio.Default)

	label, err := reg.Column("settings", "label")
	require.NoError(t, err)
	assert.Equal(t, "none", label.Default)

	active, err := reg.Column("settings", "active")
	require.NoError(t, err)
	assert.Equal(t, true, active.Default)
}
