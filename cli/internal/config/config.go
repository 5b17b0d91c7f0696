// Package config loads CLI configuration from quern.yaml, the
// environment, and .env files.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem the CLI reads and writes through. Tests swap in
// a memory filesystem.
var AppFs = afero.NewOsFs()

// Config holds the CLI configuration.
type Config struct {
	SchemaPath    string
	MigrationsDir string
	DatabaseURL   string
	Debug         bool
}

// Load reads configuration in priority order: flags are handled by the
// commands, then environment (QUERN_*), then quern.yaml found in the
// working directory or the home config dir, then defaults. A .env file in
// the working directory is loaded first so DATABASE_URL can live there.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName("quern")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(home, ".config", "quern"))

	viper.SetEnvPrefix("QUERN")
	viper.AutomaticEnv()

	viper.SetDefault("schema_path", "schema.quern")
	viper.SetDefault("migrations_dir", "migrations")
	viper.SetDefault("debug", false)

	// Missing config file is fine; defaults and env cover it.
	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	return &Config{
		SchemaPath:    viper.GetString("schema_path"),
		MigrationsDir: viper.GetString("migrations_dir"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Debug:         viper.GetBool("debug"),
	}, nil
}
