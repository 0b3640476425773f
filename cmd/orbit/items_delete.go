package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var itemsDeletePartitionKey string

func init() {
	itemsDeleteCmd.Flags().StringVar(&itemsDeletePartitionKey, "partition-key", "", "Partition key value (required)")
	itemsDeleteCmd.MarkFlagRequired("partition-key")
	itemsCmd.AddCommand(itemsDeleteCmd)
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "delete <container> <item-id>",
	Short: "Delete an item (idempotent)",
	Args:  cobra.ExactArgs(2),
	RunE:  runItemsDelete,
}

func runItemsDelete(cmd *cobra.Command, args []string) error {
	container, itemID := args[0], args[1]

	requireConfirmation(fmt.Sprintf("Delete item %q from container %q? This cannot be undone.", itemID, container))

	client := mustClient()
	if err := client.DeleteItem(context.Background(), container, itemID, itemsDeletePartitionKey); err != nil {
		storeErrorExit(err, container)
	}

	if jsonOutput {
		return outputJSON(StatusResponse{Status: "deleted", Container: container, ItemID: itemID})
	}

	fmt.Printf("Deleted item %q from container %q\n", itemID, container)
	return nil
}
