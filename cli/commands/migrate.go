package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quern-dev/quern/cli/internal/config"
	"github.com/quern-dev/quern/cli/internal/ui"
	"github.com/quern-dev/quern/internal/log"
	"github.com/quern-dev/quern/migrate"
	"github.com/quern-dev/quern/query/compile"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Generate and apply database migrations",
	}

	cmd.AddCommand(newMigrateDiffCommand())
	cmd.AddCommand(newMigrateApplyCommand())
	cmd.AddCommand(newMigrateStatusCommand())

	return cmd
}

func newMigrateDiffCommand() *cobra.Command {
	var name string
	var force bool
	var dialectFlag string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Generate a migration from schema changes",
		Long:  "Diff the schema file against the last snapshot and write a timestamped migration file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrateDiff(name, force, dialectFlag)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name for the migration")
	cmd.Flags().BoolVar(&force, "force", false, "Allow destructive changes without prompting")
	cmd.Flags().StringVar(&dialectFlag, "dialect", "", "Target dialect (postgres, mysql, sqlite); defaults to DATABASE_URL's")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runMigrateDiff(name string, force bool, dialectFlag string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	dialect, err := targetDialect(cfg, dialectFlag)
	if err != nil {
		return err
	}

	// Generation never touches the database; only apply needs a connection.
	engine := migrate.NewEngine(nil, reg, dialect,
		migrate.WithFs(config.AppFs),
		migrate.WithDir(cfg.MigrationsDir))

	plan, err := engine.Plan()
	if err != nil {
		return err
	}
	if plan.Empty() {
		ui.Info("schema is up to date, nothing to generate")
		return nil
	}

	allowDestructive := force
	if destructive := plan.Destructive(); len(destructive) > 0 && !force {
		ui.Warning("this migration contains destructive changes:")
		for _, c := range destructive {
			ui.Detail("%s", c.Description())
		}
		confirmed, err := ui.Confirm("Apply these destructive changes?")
		if err != nil {
			return err
		}
		if !confirmed {
			return errors.New("aborted: destructive changes were not confirmed")
		}
		allowDestructive = true
	}

	m, err := engine.Generate(name, allowDestructive)
	if err != nil {
		return err
	}
	ui.Success("created migration %s (%d statements)", m.Path, len(m.Statements))
	return nil
}

func newMigrateApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply pending migrations",
		Long:  "Apply all pending migrations in version order inside a single transaction.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrateApply(cmd.Context())
		},
	}
	return cmd
}

func runMigrateApply(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	db, dialect, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	logger, err := log.New(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	engine := migrate.NewEngine(db, reg, dialect,
		migrate.WithFs(config.AppFs),
		migrate.WithDir(cfg.MigrationsDir),
		migrate.WithLogger(logger))

	result, err := engine.Apply(ctx)
	if err != nil {
		var stmtErr *migrate.StatementError
		if errors.As(err, &stmtErr) {
			ui.Error("migration %s failed at statement %d; the batch was rolled back",
				stmtErr.Version, stmtErr.Index+1)
		}
		return err
	}
	if len(result.Applied) == 0 {
		ui.Info("no pending migrations")
		return nil
	}
	for _, m := range result.Applied {
		ui.Success("applied %s_%s", m.Version, m.Name)
	}
	return nil
}

func newMigrateStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrateStatus(cmd.Context())
		},
	}
	return cmd
}

func runMigrateStatus(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	db, dialect, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := migrate.NewEngine(db, reg, dialect,
		migrate.WithFs(config.AppFs),
		migrate.WithDir(cfg.MigrationsDir))

	entries, err := engine.Status(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ui.Info("no migrations found in %s", cfg.MigrationsDir)
		return nil
	}

	rows := make([][]string, 0, len(entries))
	pending := 0
	for _, e := range entries {
		state := "pending"
		appliedAt := ""
		if e.Applied {
			state = "applied"
			appliedAt = e.AppliedAt.Format("2006-01-02 15:04:05")
		} else {
			pending++
		}
		rows = append(rows, []string{e.Version, e.Name, state, appliedAt})
	}
	ui.Table([]string{"Version", "Name", "State", "Applied At"}, rows)
	if pending > 0 {
		ui.Warning("%d migration(s) pending", pending)
	} else {
		ui.Success("database is up to date")
	}
	return nil
}

func targetDialect(cfg *config.Config, flag string) (compile.Dialect, error) {
	switch flag {
	case "postgres":
		return compile.Postgres, nil
	case "mysql":
		return compile.MySQL, nil
	case "sqlite":
		return compile.SQLite, nil
	case "":
	default:
		return "", fmt.Errorf("unknown dialect %q", flag)
	}
	if cfg.DatabaseURL != "" {
		dialect, _, _, err := dialectFromURL(cfg.DatabaseURL)
		return dialect, err
	}
	return compile.Postgres, nil
}
