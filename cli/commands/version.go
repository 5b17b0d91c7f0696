package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/quern-dev/quern/cli/internal/ui"
	"github.com/quern-dev/quern/cli/internal/update"
)

func newVersionCommand(version string) *cobra.Command {
	var checkLatest bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("quern %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
			if !checkLatest {
				return nil
			}
			latest, newer, err := update.Check(version)
			if err != nil {
				ui.Warning("could not check for updates: %v", err)
				return nil
			}
			if newer {
				ui.Warning("a newer version is available: %s", latest)
				ui.Detail("go install github.com/quern-dev/quern/cmd/quern@latest")
			} else {
				ui.Success("you are on the latest version")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkLatest, "check", false, "Check for a newer release")
	return cmd
}
