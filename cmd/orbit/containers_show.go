package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	containersCmd.AddCommand(containersShowCmd)
}

var containersShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a container's properties",
	Args:  cobra.ExactArgs(1),
	RunE:  runContainersShow,
}

func runContainersShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	client := mustClient()

	coll, err := client.GetContainer(context.Background(), name)
	if err != nil {
		storeErrorExit(err, name)
	}

	if jsonOutput {
		return outputJSON(coll)
	}

	fmt.Printf("Name:          %s\n", coll.ID)
	fmt.Printf("Partition key: %s\n", coll.PartitionKeyPath())
	if len(coll.IndexingPolicy) > 0 {
		fmt.Printf("Indexing:      %s\n", truncateString(string(coll.IndexingPolicy), 120))
	}
	return nil
}
