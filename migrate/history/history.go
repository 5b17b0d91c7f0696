// Package history manages the migrations-applied ledger table.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/quern-dev/quern/query/compile"
)

// TableName is the ledger table recording applied migrations.
const TableName = "_quern_migrations"

// Record is one ledger row.
type Record struct {
	Version       string
	Name          string
	Checksum      string
	ExecutionTime int64 // milliseconds
	AppliedAt     time.Time
}

// execer is satisfied by *sql.DB and *sql.Tx, so records can be written
// inside the migration transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Manager reads and writes the ledger.
type Manager struct {
	db      *sql.DB
	dialect compile.Dialect
}

// NewManager creates a ledger manager.
func NewManager(db *sql.DB, dialect compile.Dialect) *Manager {
	return &Manager{db: db, dialect: dialect}
}

// InitTable creates the ledger table if it does not exist.
func (m *Manager) InitTable(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, m.createTableSQL()); err != nil {
		return fmt.Errorf("failed to create migrations ledger: %w", err)
	}
	return nil
}

// AppliedVersions returns the versions of all applied migrations in
// version order.
func (m *Manager) AppliedVersions(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx,
		fmt.Sprintf("SELECT version FROM %s ORDER BY version", TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations ledger: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// Entries returns all ledger rows in version order.
func (m *Manager) Entries(ctx context.Context) ([]Record, error) {
	rows, err := m.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT version, name, checksum, execution_time_ms, applied_at FROM %s ORDER BY version",
		TableName))
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations ledger: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Version, &r.Name, &r.Checksum, &r.ExecutionTime, &r.AppliedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// RecordApplied writes a ledger row on the given connection, typically the
// transaction that applied the migration, so a rollback removes the row
// along with the DDL.
func (m *Manager) RecordApplied(ctx context.Context, conn execer, r Record) error {
	var stmt string
	if m.dialect == compile.Postgres {
		stmt = fmt.Sprintf(
			"INSERT INTO %s (version, name, checksum, execution_time_ms, applied_at) VALUES ($1, $2, $3, $4, $5)",
			TableName)
	} else {
		stmt = fmt.Sprintf(
			"INSERT INTO %s (version, name, checksum, execution_time_ms, applied_at) VALUES (?, ?, ?, ?, ?)",
			TableName)
	}
	_, err := conn.ExecContext(ctx, stmt, r.Version, r.Name, r.Checksum, r.ExecutionTime, r.AppliedAt)
	if err != nil {
		return fmt.Errorf("failed to record migration %s: %w", r.Version, err)
	}
	return nil
}

func (m *Manager) createTableSQL() string {
	timestampType := "TIMESTAMP"
	switch m.dialect {
	case compile.Postgres:
		timestampType = "TIMESTAMPTZ"
	case compile.MySQL:
		timestampType = "DATETIME"
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  version VARCHAR(64) NOT NULL PRIMARY KEY,
  name VARCHAR(255) NOT NULL,
  checksum VARCHAR(64) NOT NULL,
  execution_time_ms BIGINT NOT NULL,
  applied_at %s NOT NULL
)`, TableName, timestampType)
}

// Checksum returns the hex SHA-256 of a migration's SQL.
func Checksum(sql string) string {
	sum := sha256.Sum256([]byte(sql))
	return hex.EncodeToString(sum[:])
}
