package migrate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Migration is one generated migration unit: a timestamped SQL file with
// its parsed statements.
type Migration struct {
	Version    string
	Name       string
	Path       string
	Statements []string
}

// versionFormat is the monotonic version prefix of migration file names.
const versionFormat = "20060102150405"

var fileNamePattern = regexp.MustCompile(`^(\d{14})_([a-z0-9_]+)\.sql$`)

func newVersion(now time.Time) string {
	return now.UTC().Format(versionFormat)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	return strings.Trim(slug, "_")
}

func (e *Engine) writeMigration(version, name string, statements []string) (*Migration, error) {
	if err := e.fs.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	var sb strings.Builder
	for _, stmt := range statements {
		sb.WriteString(stmt)
		sb.WriteString(";\n\n")
	}

	path := filepath.Join(e.dir, fmt.Sprintf("%s_%s.sql", version, slugify(name)))
	if err := afero.WriteFile(e.fs, path, []byte(sb.String()), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write migration file: %w", err)
	}

	return &Migration{
		Version:    version,
		Name:       slugify(name),
		Path:       path,
		Statements: statements,
	}, nil
}

// ListMigrations reads the migrations directory and returns all units in
// version order.
func (e *Engine) ListMigrations() ([]Migration, error) {
	exists, err := afero.DirExists(e.fs, e.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}
	if !exists {
		return nil, nil
	}
	infos, err := afero.ReadDir(e.fs, e.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		m := fileNamePattern.FindStringSubmatch(info.Name())
		if m == nil {
			continue
		}
		path := filepath.Join(e.dir, info.Name())
		data, err := afero.ReadFile(e.fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", info.Name(), err)
		}
		migrations = append(migrations, Migration{
			Version:    m[1],
			Name:       m[2],
			Path:       path,
			Statements: splitStatements(string(data)),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// splitStatements splits migration SQL on semicolons, honoring single
// quoted strings so literals containing ';' survive.
func splitStatements(sql string) []string {
	var statements []string
	var sb strings.Builder
	inString := false

	for _, r := range sql {
		switch {
		case r == '\'':
			inString = !inString
			sb.WriteRune(r)
		case r == ';' && !inString:
			if stmt := strings.TrimSpace(sb.String()); stmt != "" {
				statements = append(statements, stmt)
			}
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}
	if stmt := strings.TrimSpace(sb.String()); stmt != "" {
		statements = append(statements, stmt)
	}
	return statements
}
