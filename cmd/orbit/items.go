package main

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(itemsCmd)
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage items in Cosmos DB containers",
}
