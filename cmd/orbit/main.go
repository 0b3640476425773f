// Package main provides the orbit CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// Global flags shared by all commands.
var (
	jsonOutput bool
	assumeYes  bool
	verbose    bool
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orbit",
	Short: "CLI client for Azure Cosmos DB",
	Long: `orbit is a CLI client for Azure Cosmos DB.

It manages containers and items, and runs SQL-like queries with
continuation-token pagination and request-unit cost reporting. Output is a
table by default; pass --json for machine-readable output.

Connection settings come from the environment (or a .env file):
  ORBIT_COSMOS_CONNECTION_STRING   connection string, or
  ORBIT_COSMOS_ENDPOINT            account endpoint plus
  ORBIT_COSMOS_KEY                 account key
  ORBIT_DATABASE_NAME              database to operate on`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON instead of tables")
	rootCmd.PersistentFlags().BoolVar(&assumeYes, "yes", false, "Skip confirmation prompts for mutation operations")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose request logging")
	rootCmd.Version = Version
}
