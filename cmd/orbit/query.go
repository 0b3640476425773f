package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/orbit-cli/orbit/internal/cosmos"
	"github.com/orbit-cli/orbit/internal/query"
	"github.com/spf13/cobra"
)

var (
	queryCrossPartition bool
	queryPartitionKey   string
	queryPageSize       int
	queryMaxItems       int
	queryTimeout        time.Duration
)

func init() {
	queryCmd.Flags().BoolVar(&queryCrossPartition, "cross-partition", false, "Allow the query to fan out across partitions")
	queryCmd.Flags().StringVar(&queryPartitionKey, "partition-key", "", "Partition key value to scope the query to")
	queryCmd.Flags().IntVar(&queryPageSize, "page-size", query.DefaultPageSize, "Items per page fetch")
	queryCmd.Flags().IntVar(&queryMaxItems, "max-items", query.DefaultMaxItems, "Maximum items to return")
	queryCmd.Flags().DurationVar(&queryTimeout, "timeout", 60*time.Second, "Deadline for the whole query")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <container> <query>",
	Short: "Run a SQL query against a container",
	Long: `Run a SQL query against a container, paging through results and
aggregating request-unit (RU) cost for the pages actually fetched.

Queries without a partition key scope may span partitions and require
--cross-partition.

Examples:
  orbit query orders "SELECT * FROM c" --partition-key 2024
  orbit query orders "SELECT * FROM c WHERE c.total > 10" --cross-partition --max-items 50`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	container, queryText := args[0], args[1]
	client := mustClient()

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	executor := query.NewExecutor(client)
	stream, err := executor.Execute(ctx, query.Request{
		Container:      container,
		Query:          queryText,
		CrossPartition: queryCrossPartition,
		PartitionKey:   queryPartitionKey,
		PageSize:       queryPageSize,
		MaxItems:       queryMaxItems,
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
		return outputJSON(QueryResponse{
			Items:     items,
			RUCost:    stream.RequestCharge(),
			ItemCount: len(items),
		})
	}

	if len(items) == 0 {
		fmt.Printf("No items matched in container %q\n", container)
	} else {
		printItemsTable(decodeItems(items))
	}
	fmt.Printf("\n%d items in %d pages (RU cost: %.2f)\n", len(items), stream.Pages(), stream.RequestCharge())
	return nil
}

// collectStream drains a result stream into memory for rendering. The stream
// itself stays page-bounded; only the CLI materializes, capped by max items.
func collectStream(stream *query.Stream) []json.RawMessage {
	var items []json.RawMessage
	for stream.Next() {
		item := make(json.RawMessage, len(stream.Item()))
		copy(item, stream.Item())
		items = append(items, item)
	}
	return items
}

// queryErrorExit renders a query failure with its remedy and exits.
func queryErrorExit(err error, container string) {
	switch {
	case errors.Is(err, cosmos.ErrInvalidArgument):
		exitWithError(ExitDataError, "%v", err)
	case errors.Is(err, cosmos.ErrCrossPartition):
		exitWithError(ExitError, "%v", err)
	case errors.Is(err, cosmos.ErrQuerySyntax):
		exitWithError(ExitError, "%v", err)
	case errors.Is(err, cosmos.ErrQueryTimeout):
		exitWithError(ExitError, "%v", err)
	default:
		storeErrorExit(err, container)
	}
}
