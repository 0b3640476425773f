package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	containersCmd.AddCommand(containersDeleteCmd)
}

var containersDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a container (idempotent)",
	Args:  cobra.ExactArgs(1),
	RunE:  runContainersDelete,
}

func runContainersDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	requireConfirmation(fmt.Sprintf("Delete container %q and all its items? This cannot be undone.", name))

	client := mustClient()
	if err := client.DeleteContainer(context.Background(), name); err != nil {
		storeErrorExit(err, name)
	}

	if jsonOutput {
		return outputJSON(StatusResponse{Status: "deleted", Container: name})
	}

	fmt.Printf("Deleted container %q\n", name)
	return nil
}
