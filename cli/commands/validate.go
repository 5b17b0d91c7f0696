package commands

import (
	"github.com/spf13/cobra"

	"github.com/quern-dev/quern/cli/internal/config"
	"github.com/quern-dev/quern/cli/internal/ui"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Parse and validate the schema file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate()
		},
	}
}

func runValidate() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		ui.Error("schema is invalid")
		return err
	}

	tables := reg.Tables()
	ui.Success("%s is valid (%d tables)", cfg.SchemaPath, len(tables))
	for _, t := range tables {
		ui.Detail("%s (%d columns)", t.Name, len(t.Columns))
	}
	return nil
}
