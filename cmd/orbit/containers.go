package main

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(containersCmd)
}

var containersCmd = &cobra.Command{
	Use:   "containers",
	Short: "Manage Cosmos DB containers",
}
