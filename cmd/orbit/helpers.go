package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/orbit-cli/orbit/internal/config"
	"github.com/orbit-cli/orbit/internal/cosmos"
	"github.com/orbit-cli/orbit/internal/logger"
)

// newLogger builds the CLI logger, honoring --verbose.
func newLogger() *logger.Logger {
	l := logger.Default()
	if verbose {
		l.SetLevel(logger.LevelDebug)
	}
	return l
}

// mustClient resolves settings and builds the Cosmos client, or exits with a
// remedy message when configuration is missing or ambiguous.
func mustClient() *cosmos.Client {
	settings, err := config.Load()
	switch {
	case err == nil:
	case errors.Is(err, config.ErrMissingDatabase):
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Set the %s environment variable to your database name.\n", config.DatabaseEnv)
		os.Exit(ExitConfigError)
	default:
		fmt.Fprintf(os.Stderr, "Authentication error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Set the %s environment variable with your Cosmos DB connection string.\n", config.ConnectionStringEnv)
		os.Exit(ExitConfigError)
	}

	client, err := cosmos.NewClient(settings, cosmos.WithLogger(newLogger()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication error: %v\n", err)
		os.Exit(ExitConfigError)
	}
	return client
}

// storeErrorExit renders a store failure with operation context and exits.
// Messages reaching here are credential-free by the cosmos package contract.
func storeErrorExit(err error, container string) {
	switch {
	case errors.Is(err, cosmos.ErrResourceNotFound):
		exitWithError(ExitError, "container %q not found: use 'orbit containers list' to see existing containers", container)
	case errors.Is(err, cosmos.ErrConnection):
		exitWithError(ExitError, "failed to connect to Cosmos DB: check the connection string")
	default:
		exitWithError(ExitError, "%v", err)
	}
}
