package commands

import (
	"github.com/spf13/cobra"

	"github.com/quern-dev/quern/cli/internal/config"
	"github.com/quern-dev/quern/cli/internal/ui"
	"github.com/quern-dev/quern/cli/internal/watch"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-validate the schema file on every change",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch()
		},
	}
}

func runWatch() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ui.Info("watching %s (ctrl-c to stop)", cfg.SchemaPath)
	w, err := watch.New(cfg.SchemaPath, func() error {
		return runValidate()
	})
	if err != nil {
		return err
	}
	defer w.Stop()
	return w.Start()
}
