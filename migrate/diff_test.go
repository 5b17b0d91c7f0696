package migrate

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quern-dev/quern/query/compile"
	"github.com/quern-dev/quern/schema"
)

func registryWith(t *testing.T, tables ...func(*schema.Registry)) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	for _, add := range tables {
		add(reg)
	}
	return reg
}

func usersTable(cols ...schema.Column) func(*schema.Registry) {
	if len(cols) == 0 {
		cols = []schema.Column{
			{Name: "id", Type: schema.TypeSerial, PrimaryKey: true},
			{Name: "full_name", Type: schema.TypeText},
		}
	}
	return func(reg *schema.Registry) {
		if _, err := reg.Register("users", cols...); err != nil {
			panic(err)
		}
	}
}

func newTestEngine(t *testing.T, reg *schema.Registry) *Engine {
	t.Helper()
	return NewEngine(nil, reg, compile.Postgres,
		WithFs(afero.NewMemMapFs()),
		WithDir("migrations"),
		WithClock(func() time.Time {
			return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		}))
}

func TestPlan_EmptySnapshotCreatesEverything(t *testing.T) {
	reg := registryWith(t, usersTable())
	e := newTestEngine(t, reg)

	plan, err := e.Plan()
	require.NoError(t, err)
	require.Len(t, plan.Changes, 1)
	assert.Equal(t, ChangeCreateTable, plan.Changes[0].Type)
	assert.Empty(t, plan.Destructive())
	assert.Contains(t, plan.Changes[0].SQL, `CREATE TABLE "users"`)
}

func TestGenerate_WritesFileAndSnapshot(t *testing.T) {
	reg := registryWith(t, usersTable())
	e := newTestEngine(t, reg)

	m, err := e.Generate("init", false)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "20240601120000", m.Version)
	assert.Equal(t, "init", m.Name)

	exists, err := afero.Exists(e.fs, m.Path)
	require.NoError(t, err)
	assert.True(t, exists)

	// Regenerating against the fresh snapshot finds nothing to do.
	m2, err := e.Generate("noop", false)
	require.NoError(t, err)
	assert.Nil(t, m2)
}

func TestGenerate_AddColumnAfterSnapshot(t *testing.T) {
	reg := registryWith(t, usersTable())
	e := newTestEngine(t, reg)
	_, err := e.Generate("init", false)
	require.NoError(t, err)

	// Same engine directory, evolved registry.
	evolved := registryWith(t, usersTable(
		schema.Column{Name: "id", Type: schema.TypeSerial, PrimaryKey: true},
		schema.Column{Name: "full_name", Type: schema.TypeText},
		schema.Column{Name: "bio", Type: schema.TypeText, Nullable: true},
	))
	e.reg = evolved

	plan, err := e.Plan()
	require.NoError(t, err)
	require.Len(t, plan.Changes, 1)
	assert.Equal(t, ChangeAddColumn, plan.Changes[0].Type)
	assert.Equal(t, "bio", plan.Changes[0].Column)
	assert.False(t, plan.Changes[0].Destructive)
}

func TestGenerate_DestructiveRequiresConfirmation(t *testing.T) {
	reg := registryWith(t, usersTable())
	e := newTestEngine(t, reg)
	_, err := e.Generate("init", false)
	require.NoError(t, err)

	// Dropping full_name is destructive.
	e.reg = registryWith(t, usersTable(
		schema.Column{Name: "id", Type: schema.TypeSerial, PrimaryKey: true},
	))

	_, err = e.Generate("drop_name", false)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Changes, 1)
	assert.Equal(t, ChangeDropColumn, conflict.Changes[0].Type)

	m, err := e.Generate("drop_name", true)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Contains(t, m.Statements[0], "DROP COLUMN")
}

func TestPlan_RequiredColumnWithoutDefaultIsDestructive(t *testing.T) {
	reg := registryWith(t, usersTable())
	e := newTestEngine(t, reg)
	_, err := e.Generate("init", false)
	require.NoError(t, err)

	e.reg = registryWith(t, usersTable(
		schema.Column{Name: "id", Type: schema.TypeSerial, PrimaryKey: true},
		schema.Column{Name: "full_name", Type: schema.TypeText},
		schema.Column{Name: "email", Type: schema.TypeText},
	))

	plan, err := e.Plan()
	require.NoError(t, err)
	require.Len(t, plan.Changes, 1)
	assert.True(t, plan.Changes[0].Destructive)
}

func TestPlan_SnapshotRoundTripIsStable(t *testing.T) {
	// Defaults survive the JSON round trip without producing phantom diffs.
	reg := registryWith(t, usersTable(
		schema.Column{Name: "id", Type: schema.TypeSerial, PrimaryKey: true},
		schema.Column{Name: "retries", Type: schema.TypeInteger, Default: 3},
		schema.Column{Name: "role", Type: schema.TypeEnum,
			EnumValues: []string{"admin", "member"}, Default: "member"},
	))
	e := newTestEngine(t, reg)
	_, err := e.Generate("init", false)
	require.NoError(t, err)

	plan, err := e.Plan()
	require.NoError(t, err)
	assert.True(t, plan.Empty(), "unchanged schema must produce an empty plan")
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("CREATE TABLE a (x TEXT DEFAULT 'a;b');\n\nDROP TABLE b;\n")
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (x TEXT DEFAULT 'a;b')", stmts[0])
	assert.Equal(t, "DROP TABLE b", stmts[1])
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "add_users_table", slugify("Add Users Table"))
	assert.Equal(t, "init", slugify("init"))
	assert.Equal(t, "fix_2", slugify("--fix 2--"))
}
