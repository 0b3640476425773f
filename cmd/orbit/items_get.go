package main

import (
	"context"
	"errors"

	"github.com/orbit-cli/orbit/internal/cosmos"
	"github.com/spf13/cobra"
)

var itemsGetPartitionKey string

func init() {
	itemsGetCmd.Flags().StringVar(&itemsGetPartitionKey, "partition-key", "", "Partition key value (required)")
	itemsGetCmd.MarkFlagRequired("partition-key")
	itemsCmd.AddCommand(itemsGetCmd)
}

var itemsGetCmd = &cobra.Command{
	Use:   "get <container> <item-id>",
	Short: "Retrieve a single item by id and partition key",
	Args:  cobra.ExactArgs(2),
	RunE:  runItemsGet,
}

func runItemsGet(cmd *cobra.Command, args []string) error {
	container, itemID := args[0], args[1]
	client := mustClient()

	item, err := client.GetItem(context.Background(), container, itemID, itemsGetPartitionKey)
	switch {
	case err == nil:
	case errors.Is(err, cosmos.ErrItemNotFound):
		exitWithError(ExitError, "item %q not found in container %q: check the item id and partition key", itemID, container)
	case errors.Is(err, cosmos.ErrPartitionKeyMismatch):
		exitWithError(ExitError, "item %q not found with partition key %q", itemID, itemsGetPartitionKey)
	default:
		storeErrorExit(err, container)
	}

	if jsonOutput {
		return outputJSON(map[string]any{"item": item})
	}
	return outputJSON(item)
}
