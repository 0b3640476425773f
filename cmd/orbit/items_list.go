package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/orbit-cli/orbit/internal/query"
	"github.com/spf13/cobra"
)

var itemsListMaxCount int

func init() {
	itemsListCmd.Flags().IntVar(&itemsListMaxCount, "max-count", query.DefaultMaxItems, "Maximum number of items to retrieve")
	itemsCmd.AddCommand(itemsListCmd)
}

var itemsListCmd = &cobra.Command{
	Use:   "list <container>",
	Short: "List items in a container",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemsList,
}

func runItemsList(cmd *cobra.Command, args []string) error {
	container := args[0]
	client := mustClient()

	// Listing spans all partitions, so cross-partition is always enabled here.
	executor := query.NewExecutor(client)
	stream, err := executor.Execute(context.Background(), query.Request{
		Container:      container,
		Query:          "SELECT * FROM c",
		CrossPartition: true,
		PageSize:       query.DefaultPageSize,
		MaxItems:       itemsListMaxCount,
	})
	if err != nil {
		queryErrorExit(err, container)
	}

	items := collectStream(stream)
	if err := stream.Err(); err != nil {
		queryErrorExit(err, container)
	}

	if jsonOutput {
		if items == nil {
			items = []json.RawMessage{}
		}
		return outputJSON(map[string]any{"items": items, "count": len(items)})
	}

	if len(items) == 0 {
		fmt.Printf("No items found in container %q\n", container)
		return nil
	}

	printItemsTable(decodeItems(items))
	return nil
}
