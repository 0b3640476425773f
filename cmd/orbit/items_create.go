package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/orbit-cli/orbit/internal/cosmos"
	"github.com/spf13/cobra"
)

var (
	itemsCreateData         string
	itemsCreatePartitionKey string
)

func init() {
	itemsCreateCmd.Flags().StringVar(&itemsCreateData, "data", "", "Path to a JSON file with the item body, or '-' for stdin (required)")
	itemsCreateCmd.Flags().StringVar(&itemsCreatePartitionKey, "partition-key", "", "Partition key value (required)")
	itemsCreateCmd.MarkFlagRequired("data")
	itemsCreateCmd.MarkFlagRequired("partition-key")
	itemsCmd.AddCommand(itemsCreateCmd)
}

var itemsCreateCmd = &cobra.Command{
	Use:   "create <container>",
	Short: "Create an item from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemsCreate,
}

func runItemsCreate(cmd *cobra.Command, args []string) error {
	container := args[0]
	item := mustReadItem(itemsCreateData)
	client := mustClient()

	created, err := client.CreateItem(context.Background(), container, item, itemsCreatePartitionKey)
	switch {
	case err == nil:
	case errors.Is(err, cosmos.ErrDuplicateItem):
		exitWithError(ExitError, "item %q already exists in container %q", item["id"], container)
	case errors.Is(err, cosmos.ErrPartitionKeyMismatch):
		exitWithError(ExitDataError, "partition key mismatch: item partition key doesn't match %q", itemsCreatePartitionKey)
	default:
		storeErrorExit(err, container)
	}

	if jsonOutput {
		return outputJSON(map[string]any{"status": "created", "item": created})
	}

	fmt.Printf("Created item %q in container %q\n", item["id"], container)
	return outputJSON(created)
}
