package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

const (
	// CellMaxLen is the truncation length for table cell values.
	CellMaxLen = 50
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (table mode goes
// to stderr, JSON mode emits an error object) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSON(ErrorResponse{Error: msg})
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for mutation commands.
type StatusResponse struct {
	Status    string `json:"status"`
	Container string `json:"container,omitempty"`
	ItemID    string `json:"item_id,omitempty"`
}

// ContainerSummary is one row of `orbit containers list` JSON output.
type ContainerSummary struct {
	Name         string `json:"name"`
	PartitionKey string `json:"partition_key"`
	Throughput   string `json:"throughput"`
}

// QueryResponse is the JSON shape of `orbit query` output.
type QueryResponse struct {
	Items     []json.RawMessage `json:"items"`
	RUCost    float64           `json:"ru_cost"`
	ItemCount int               `json:"item_count"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// itemColumns derives table columns from the first item: "id" first, the
// remaining keys sorted for stable output.
func itemColumns(items []map[string]any) []string {
	if len(items) == 0 {
		return nil
	}

	var cols []string
	for key := range items[0] {
		if key != "id" {
			cols = append(cols, key)
		}
	}
	sort.Strings(cols)

	if _, ok := items[0]["id"]; ok {
		cols = append([]string{"id"}, cols...)
	}
	return cols
}

// printItemsTable renders items as a fixed-width table on stdout.
func printItemsTable(items []map[string]any) {
	cols := itemColumns(items)
	if len(cols) == 0 {
		return
	}

	widths := make([]int, len(cols))
	rows := make([][]string, len(items))
	for i, col := range cols {
		widths[i] = len(col)
	}
	for r, item := range items {
		row := make([]string, len(cols))
		for i, col := range cols {
			cell := ""
			if v, ok := item[col]; ok {
				cell = truncateString(fmt.Sprintf("%v", v), CellMaxLen)
			}
			row[i] = cell
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows[r] = row
	}

	for i, col := range cols {
		fmt.Printf("%-*s  ", widths[i], col)
	}
	fmt.Println()
	for _, row := range rows {
		for i, cell := range row {
			fmt.Printf("%-*s  ", widths[i], cell)
		}
		fmt.Println()
	}
}

// decodeItems converts raw query results into maps for table rendering.
func decodeItems(raw []json.RawMessage) []map[string]any {
	items := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		var m map[string]any
		if err := json.Unmarshal(r, &m); err != nil {
			continue // Non-object results cannot be tabulated; skip the row
		}
		items = append(items, m)
	}
	return items
}
