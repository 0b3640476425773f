package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// readJSONInput reads a single JSON object from a file path, or from stdin
// when path is "-".
func readJSONInput(path string) (map[string]any, error) {
	var content []byte
	var err error

	if path == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var item map[string]any
	if err := json.Unmarshal(content, &item); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: must be a single object", path)
	}
	return item, nil
}

// mustReadItem reads item input and verifies the required "id" field.
func mustReadItem(path string) map[string]any {
	item, err := readJSONInput(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	if _, ok := item["id"].(string); !ok {
		exitWithError(ExitDataError, "item must have a string 'id' field")
	}
	return item
}
