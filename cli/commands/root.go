// Package commands implements the quern CLI commands.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the quern command tree.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "quern",
		Short:         "Typed SQL schema, query, and migration toolkit",
		Long:          "Quern defines database schemas, builds typed SQL queries, and manages migrations.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newInitCommand())
	root.AddCommand(newValidateCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newWatchCommand())
	root.AddCommand(newVersionCommand(version))

	return root
}
