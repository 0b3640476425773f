package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/orbit-cli/orbit/internal/cosmos"
	"github.com/spf13/cobra"
)

var (
	createPartitionKey string
	createThroughput   int
)

func init() {
	containersCreateCmd.Flags().StringVar(&createPartitionKey, "partition-key", "", "Partition key path, e.g. /id (required)")
	containersCreateCmd.Flags().IntVar(&createThroughput, "throughput", cosmos.DefaultThroughput, "Manual throughput in RU/s")
	containersCreateCmd.MarkFlagRequired("partition-key")
	containersCmd.AddCommand(containersCreateCmd)
}

var containersCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a container with the given partition key",
	Args:  cobra.ExactArgs(1),
	RunE:  runContainersCreate,
}

func runContainersCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	client := mustClient()

	created, err := client.CreateContainer(context.Background(), name, createPartitionKey, createThroughput)
	switch {
	case err == nil:
	case errors.Is(err, cosmos.ErrResourceExists):
		exitWithError(ExitError, "container %q already exists", name)
	case errors.Is(err, cosmos.ErrInvalidPartitionKey), errors.Is(err, cosmos.ErrInvalidArgument):
		exitWithError(ExitDataError, "%v", err)
	case errors.Is(err, cosmos.ErrQuotaExceeded):
		exitWithError(ExitError, "%v", err)
	default:
		storeErrorExit(err, name)
	}

	if jsonOutput {
		return outputJSON(map[string]any{
			"status": "created",
			"container": ContainerSummary{
				Name:         created.ID,
				PartitionKey: created.PartitionKeyPath(),
				Throughput:   fmt.Sprintf("%d", createThroughput),
			},
		})
	}

	fmt.Printf("Created container %q with partition key %q and throughput %d RU/s\n",
		created.ID, created.PartitionKeyPath(), createThroughput)
	return nil
}
