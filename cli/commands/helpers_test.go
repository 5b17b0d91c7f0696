package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quern-dev/quern/query/compile"
)

func TestDialectFromURL(t *testing.T) {
	tests := []struct {
		url     string
		dialect compile.Dialect
		driver  string
		dsn     string
		wantErr bool
	}{
		{url: "postgres://user:pw@localhost:5432/app", dialect: compile.Postgres, driver: "postgres", dsn: "postgres://user:pw@localhost:5432/app"},
		{url: "postgresql://localhost/app", dialect: compile.Postgres, driver: "postgres", dsn: "postgresql://localhost/app"},
		{url: "mysql://root:pw@tcp(localhost:3306)/app", dialect: compile.MySQL, driver: "mysql", dsn: "root:pw@tcp(localhost:3306)/app"},
		{url: "sqlite://app.db", dialect: compile.SQLite, driver: "sqlite3", dsn: "app.db"},
		{url: "file:app.db?cache=shared", dialect: compile.SQLite, driver: "sqlite3", dsn: "file:app.db?cache=shared"},
		{url: "oracle://localhost/app", wantErr: true},
		{url: "localhost/app", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			dialect, driver, dsn, err := dialectFromURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, dialect)
			assert.Equal(t, tt.driver, driver)
			assert.Equal(t, tt.dsn, dsn)
		})
	}
}
