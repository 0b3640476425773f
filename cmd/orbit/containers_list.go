package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	containersCmd.AddCommand(containersListCmd)
}

var containersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all containers in the database",
	Args:  cobra.NoArgs,
	RunE:  runContainersList,
}

func runContainersList(cmd *cobra.Command, args []string) error {
	client := mustClient()

	containers, err := client.ListContainers(context.Background())
	if err != nil {
		storeErrorExit(err, "")
	}

	if jsonOutput {
		summaries := make([]ContainerSummary, len(containers))
		for i, c := range containers {
			summaries[i] = ContainerSummary{
				Name:         c.ID,
				PartitionKey: c.PartitionKeyPath(),
				Throughput:   "N/A", // offers are a separate resource, not read here
			}
		}
		return outputJSON(map[string]any{"containers": summaries})
	}

	if len(containers) == 0 {
		fmt.Println("No containers found")
		return nil
	}

	fmt.Printf("%-32s %s\n", "NAME", "PARTITION KEY")
	for _, c := range containers {
		fmt.Printf("%-32s %s\n", c.ID, c.PartitionKeyPath())
	}
	return nil
}
