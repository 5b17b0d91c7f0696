package commands

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/quern-dev/quern/cli/internal/config"
	"github.com/quern-dev/quern/query/compile"
	"github.com/quern-dev/quern/schema"
	"github.com/quern-dev/quern/schema/sdl"
)

// loadRegistry parses the configured schema file into a fresh registry.
func loadRegistry(cfg *config.Config) (*schema.Registry, error) {
	data, err := afero.ReadFile(config.AppFs, cfg.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", cfg.SchemaPath, err)
	}
	return sdl.LoadString(cfg.SchemaPath, string(data))
}

// dialectFromURL derives the dialect, database/sql driver name, and DSN
// from a connection URL.
func dialectFromURL(url string) (compile.Dialect, string, string, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return compile.Postgres, "postgres", url, nil
	case strings.HasPrefix(url, "mysql://"):
		return compile.MySQL, "mysql", strings.TrimPrefix(url, "mysql://"), nil
	case strings.HasPrefix(url, "sqlite://"):
		return compile.SQLite, "sqlite3", strings.TrimPrefix(url, "sqlite://"), nil
	case strings.HasPrefix(url, "file:"):
		return compile.SQLite, "sqlite3", url, nil
	default:
		return "", "", "", fmt.Errorf("cannot determine database dialect from %q", url)
	}
}

// openDatabase connects using DATABASE_URL. The connection is handed to
// the engine; closing it stays with the command.
func openDatabase(cfg *config.Config) (*sql.DB, compile.Dialect, error) {
	if cfg.DatabaseURL == "" {
		return nil, "", fmt.Errorf("DATABASE_URL is not set")
	}
	dialect, driver, dsn, err := dialectFromURL(cfg.DatabaseURL)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}
	return db, dialect, nil
}
