// Package migrate diffs registered schema state against its last recorded
// snapshot, emits timestamped DDL migration files, and applies pending
// files to the database in version order. Application is all-or-nothing:
// the whole pending batch runs in one transaction, and a failure anywhere
// rolls back every statement and every ledger row of the batch.
//
// Application expects a single writer. The engine takes no cross-process
// lock; running concurrent migrations is a deployment error.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/quern-dev/quern/migrate/history"
	"github.com/quern-dev/quern/query/compile"
	"github.com/quern-dev/quern/schema"
)

// DefaultDir is the default migrations directory.
const DefaultDir = "migrations"

// Engine generates and applies migrations.
type Engine struct {
	db      *sql.DB
	reg     *schema.Registry
	dialect compile.Dialect
	history *history.Manager
	fs      afero.Fs
	dir     string
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithFs replaces the filesystem used for migration files and snapshots.
func WithFs(fs afero.Fs) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithDir sets the migrations directory.
func WithDir(dir string) Option {
	return func(e *Engine) { e.dir = dir }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock overrides the version clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a migration engine for the given database, registry,
// and dialect. The database connection is injected; its lifecycle belongs
// to the caller.
func NewEngine(db *sql.DB, reg *schema.Registry, dialect compile.Dialect, opts ...Option) *Engine {
	e := &Engine{
		db:      db,
		reg:     reg,
		dialect: dialect,
		history: history.NewManager(db, dialect),
		fs:      afero.NewOsFs(),
		dir:     DefaultDir,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) snapshotPath() string {
	return filepath.Join(e.dir, snapshotFile)
}

// Plan diffs the registry against the last snapshot without writing
// anything.
func (e *Engine) Plan() (*Plan, error) {
	snap, err := e.loadSnapshot()
	if err != nil {
		return nil, err
	}
	return diff(e.reg, snap, e.dialect), nil
}

// Generate diffs and writes a new migration file plus the updated
// snapshot. Returns (nil, nil) when the schema is unchanged. Plans with
// destructive changes fail with *ConflictError unless allowDestructive is
// set; the conflict is never resolved silently.
func (e *Engine) Generate(name string, allowDestructive bool) (*Migration, error) {
	plan, err := e.Plan()
	if err != nil {
		return nil, err
	}
	if plan.Empty() {
		return nil, nil
	}
	if destructive := plan.Destructive(); len(destructive) > 0 && !allowDestructive {
		return nil, &ConflictError{Changes: destructive}
	}

	version := newVersion(e.now())
	m, err := e.writeMigration(version, name, plan.Statements())
	if err != nil {
		return nil, err
	}
	if err := e.saveSnapshot(snapshotOf(e.reg)); err != nil {
		return nil, err
	}

	e.logger.Info("generated migration",
		zap.String("version", m.Version),
		zap.String("name", m.Name),
		zap.Int("statements", len(m.Statements)))
	return m, nil
}

// ApplyResult reports what an Apply call did.
type ApplyResult struct {
	Applied []Migration
}

// Pending returns migrations present on disk but absent from the ledger,
// in version order.
func (e *Engine) Pending(ctx context.Context) ([]Migration, error) {
	if err := e.history.InitTable(ctx); err != nil {
		return nil, err
	}
	available, err := e.ListMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := e.history.AppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	appliedSet := make(map[string]bool, len(applied))
	for _, v := range applied {
		appliedSet[v] = true
	}
	var pending []Migration
	for _, m := range available {
		if !appliedSet[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// Apply runs every pending migration inside a single transaction. On a
// mid-sequence failure the whole batch is rolled back and the returned
// *StatementError names the failing statement; the ledger then shows zero
// newly applied migrations from the batch.
func (e *Engine) Apply(ctx context.Context) (*ApplyResult, error) {
	pending, err := e.Pending(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return &ApplyResult{}, nil
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	result := &ApplyResult{}
	for _, m := range pending {
		start := e.now()
		for i, stmt := range m.Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return nil, &StatementError{
					Version:   m.Version,
					Index:     i,
					Statement: stmt,
					Err:       err,
				}
			}
		}

		record := history.Record{
			Version:       m.Version,
			Name:          m.Name,
			Checksum:      history.Checksum(strings.Join(m.Statements, ";\n")),
			ExecutionTime: time.Since(start).Milliseconds(),
			AppliedAt:     e.now().UTC(),
		}
		if err := e.history.RecordApplied(ctx, tx, record); err != nil {
			_ = tx.Rollback()
			return nil, err
		}

		e.logger.Info("applied migration",
			zap.String("version", m.Version),
			zap.String("name", m.Name))
		result.Applied = append(result.Applied, m)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit migration batch: %w", err)
	}
	return result, nil
}

// StatusEntry pairs a migration on disk with its ledger state.
type StatusEntry struct {
	Version   string
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// Status lists every migration on disk with whether and when it was
// applied.
func (e *Engine) Status(ctx context.Context) ([]StatusEntry, error) {
	if err := e.history.InitTable(ctx); err != nil {
		return nil, err
	}
	available, err := e.ListMigrations()
	if err != nil {
		return nil, err
	}
	records, err := e.history.Entries(ctx)
	if err != nil {
		return nil, err
	}

	appliedAt := make(map[string]time.Time, len(records))
	for _, r := range records {
		appliedAt[r.Version] = r.AppliedAt
	}

	entries := make([]StatusEntry, 0, len(available))
	for _, m := range available {
		at, ok := appliedAt[m.Version]
		entries = append(entries, StatusEntry{
			Version:   m.Version,
			Name:      m.Name,
			Applied:   ok,
			AppliedAt: at,
		})
	}
	return entries, nil
}
