package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quern-dev/quern/migrate/history"
	"github.com/quern-dev/quern/query/compile"
	"github.com/quern-dev/quern/schema"
)

func newSQLiteEngine(t *testing.T) *Engine {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	reg := schema.NewRegistry()
	_, err = reg.Register("users",
		schema.Column{Name: "id", Type: schema.TypeSerial, PrimaryKey: true},
		schema.Column{Name: "full_name", Type: schema.TypeText},
	)
	require.NoError(t, err)

	version := 0
	return NewEngine(db, reg, compile.SQLite,
		WithFs(afero.NewMemMapFs()),
		WithDir("migrations"),
		WithClock(func() time.Time {
			version++
			return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(version) * time.Second)
		}))
}

func writeRawMigration(t *testing.T, e *Engine, version, name, sql string) {
	t.Helper()
	path := fmt.Sprintf("migrations/%s_%s.sql", version, name)
	require.NoError(t, e.fs.MkdirAll("migrations", 0o755))
	require.NoError(t, afero.WriteFile(e.fs, path, []byte(sql), 0o644))
}

func TestApply_GeneratedMigration(t *testing.T) {
	e := newSQLiteEngine(t)
	ctx := context.Background()

	m, err := e.Generate("init", false)
	require.NoError(t, err)
	require.NotNil(t, m)

	result, err := e.Apply(ctx)
	require.NoError(t, err)
	require.Len(t, result.Applied, 1)
	assert.Equal(t, m.Version, result.Applied[0].Version)

	// The users table now exists.
	_, err = e.db.ExecContext(ctx, `INSERT INTO "users" ("full_name") VALUES ('Ada')`)
	require.NoError(t, err)

	// Applying again is a no-op.
	result, err = e.Apply(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Applied)
}

func TestApply_BatchIsAllOrNothing(t *testing.T) {
	e := newSQLiteEngine(t)
	ctx := context.Background()

	writeRawMigration(t, e, "20240601120001", "create_a",
		"CREATE TABLE a (id INTEGER PRIMARY KEY);\n")
	writeRawMigration(t, e, "20240601120002", "broken",
		"CREATE TABLE b (id INTEGER PRIMARY KEY);\nCREATE TABLE b (id INTEGER PRIMARY KEY);\n")

	_, err := e.Apply(ctx)
	require.Error(t, err)

	var stmtErr *StatementError
	require.ErrorAs(t, err, &stmtErr)
	assert.Equal(t, "20240601120002", stmtErr.Version)
	assert.Equal(t, 1, stmtErr.Index)

	// The whole batch rolled back: no ledger rows, and table a is gone.
	mgr := history.NewManager(e.db, compile.SQLite)
	versions, err := mgr.AppliedVersions(ctx)
	require.NoError(t, err)
	assert.Empty(t, versions)

	_, err = e.db.ExecContext(ctx, "INSERT INTO a (id) VALUES (1)")
	require.Error(t, err, "table a must not survive the rolled-back batch")
}

func TestApply_ResumesAfterFix(t *testing.T) {
	e := newSQLiteEngine(t)
	ctx := context.Background()

	writeRawMigration(t, e, "20240601120001", "create_a",
		"CREATE TABLE a (id INTEGER PRIMARY KEY);\n")
	writeRawMigration(t, e, "20240601120002", "broken",
		"CREATE TABLE b (oops;\n")

	_, err := e.Apply(ctx)
	require.Error(t, err)

	// Fix the broken migration in place and re-apply.
	writeRawMigration(t, e, "20240601120002", "broken",
		"CREATE TABLE b (id INTEGER PRIMARY KEY);\n")

	result, err := e.Apply(ctx)
	require.NoError(t, err)
	require.Len(t, result.Applied, 2)
}

func TestStatus_ReportsAppliedAndPending(t *testing.T) {
	e := newSQLiteEngine(t)
	ctx := context.Background()

	_, err := e.Generate("init", false)
	require.NoError(t, err)
	_, err = e.Apply(ctx)
	require.NoError(t, err)

	writeRawMigration(t, e, "20240601130000", "later",
		"CREATE TABLE later (id INTEGER PRIMARY KEY);\n")

	entries, err := e.Status(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Applied)
	assert.False(t, entries[0].AppliedAt.IsZero())
	assert.False(t, entries[1].Applied)
	assert.Equal(t, "later", entries[1].Name)
}

func TestPending_OrderedByVersion(t *testing.T) {
	e := newSQLiteEngine(t)
	ctx := context.Background()

	writeRawMigration(t, e, "20240601120005", "second", "CREATE TABLE s (id INTEGER);\n")
	writeRawMigration(t, e, "20240601120001", "first", "CREATE TABLE f (id INTEGER);\n")

	pending, err := e.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "first", pending[0].Name)
	assert.Equal(t, "second", pending[1].Name)
}
