package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/orbit-cli/orbit/internal/cosmos"
	"github.com/spf13/cobra"
)

var (
	itemsUpdateData         string
	itemsUpdatePartitionKey string
)

func init() {
	itemsUpdateCmd.Flags().StringVar(&itemsUpdateData, "data", "", "Path to a JSON file with the full item body, or '-' for stdin (required)")
	itemsUpdateCmd.Flags().StringVar(&itemsUpdatePartitionKey, "partition-key", "", "Partition key value (required)")
	itemsUpdateCmd.MarkFlagRequired("data")
	itemsUpdateCmd.MarkFlagRequired("partition-key")
	itemsCmd.AddCommand(itemsUpdateCmd)
}

var itemsUpdateCmd = &cobra.Command{
	Use:   "update <container> <item-id>",
	Short: "Update an item (upsert: create if not exists)",
	Args:  cobra.ExactArgs(2),
	RunE:  runItemsUpdate,
}

func runItemsUpdate(cmd *cobra.Command, args []string) error {
	container, itemID := args[0], args[1]
	item := mustReadItem(itemsUpdateData)

	if item["id"] != itemID {
		exitWithError(ExitDataError, "item 'id' field in JSON must match the item-id argument %q", itemID)
	}

	client := mustClient()
	updated, err := client.UpsertItem(context.Background(), container, itemID, item, itemsUpdatePartitionKey)
	switch {
	case err == nil:
	case errors.Is(err, cosmos.ErrPartitionKeyMismatch):
		exitWithError(ExitDataError, "partition key mismatch: item partition key doesn't match %q", itemsUpdatePartitionKey)
	default:
		storeErrorExit(err, container)
	}

	if jsonOutput {
		return outputJSON(map[string]any{"status": "updated", "item": updated})
	}

	fmt.Printf("Updated item %q in container %q\n", itemID, container)
	return outputJSON(updated)
}
