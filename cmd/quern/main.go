// Command quern is the CLI for the quern schema and migration toolkit.
package main

import (
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/quern-dev/quern/cli/commands"
)

// Version is set by the build.
var Version = "dev"

func main() {
	root := commands.NewRootCommand(Version)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
