package cosmos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

func (c *Client) docsPath(container string) string {
	return "/" + c.collLink(container) + "/docs"
}

func (c *Client) docLink(container, id string) string {
	return c.collLink(container) + "/docs/" + id
}

// partitionKeyHeader encodes a partition key value for the request header.
func partitionKeyHeader(value string) string {
	encoded, _ := json.Marshal([]string{value})
	return string(encoded)
}

// itemID extracts the required "id" field from an item body.
func itemID(item map[string]any) (string, error) {
	id, ok := item["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: item must have a string 'id' field", ErrInvalidArgument)
	}
	return id, nil
}

// CreateItem creates a new item in the container. The item must carry an
// "id" field; an item with the same id in the same partition is a conflict.
func (c *Client) CreateItem(ctx context.Context, container string, item map[string]any, partitionKey string) (map[string]any, error) {
	id, err := itemID(item)
	if err != nil {
		return nil, err
	}
	if container == "" {
		return nil, fmt.Errorf("%w: container name cannot be empty", ErrInvalidArgument)
	}
	if partitionKey == "" {
		return nil, fmt.Errorf("%w: partition key value cannot be empty", ErrInvalidArgument)
	}

	created, err := c.writeItem(ctx, container, item, partitionKey, false)
	if err != nil {
		return nil, err
	}

	c.log.Info("Created item %q in container %q", id, container)
	return created, nil
}

// UpsertItem updates an item, creating it if it does not exist. The item's
// "id" field must match id.
func (c *Client) UpsertItem(ctx context.Context, container, id string, item map[string]any, partitionKey string) (map[string]any, error) {
	bodyID, err := itemID(item)
	if err != nil {
		return nil, err
	}
	if bodyID != id {
		return nil, fmt.Errorf("%w: item 'id' field must match id parameter %q", ErrInvalidArgument, id)
	}

	updated, err := c.writeItem(ctx, container, item, partitionKey, true)
	if err != nil {
		return nil, err
	}

	c.log.Info("Updated item %q in container %q", id, container)
	return updated, nil
}

// writeItem posts an item to the docs feed, optionally as an upsert.
func (c *Client) writeItem(ctx context.Context, container string, item map[string]any, partitionKey string, upsert bool) (map[string]any, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encoding item: %w", err)
	}

	headers := map[string]string{
		"Content-Type":                 "application/json",
		"x-ms-documentdb-partitionkey": partitionKeyHeader(partitionKey),
	}
	if upsert {
		headers["x-ms-documentdb-is-upsert"] = "true"
	}

	resp, err := c.do(ctx, http.MethodPost, c.docsPath(container), "docs", c.collLink(container), headers, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	id, _ := itemID(item)
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		drainAndClose(resp)
		return nil, fmt.Errorf("%w: id %q", ErrDuplicateItem, id)
	case http.StatusNotFound:
		drainAndClose(resp)
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, container)
	case http.StatusBadRequest:
		drainAndClose(resp)
		return nil, fmt.Errorf("%w: item %q", ErrPartitionKeyMismatch, id)
	default:
		se := readError(resp)
		return nil, fmt.Errorf("failed to write item %q: %w", id, se)
	}

	var stored map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, fmt.Errorf("decoding stored item: %w", err)
	}
	return stored, nil
}

// GetItem retrieves a single item by id and partition key.
func (c *Client) GetItem(ctx context.Context, container, id, partitionKey string) (map[string]any, error) {
	headers := map[string]string{
		"x-ms-documentdb-partitionkey": partitionKeyHeader(partitionKey),
	}

	resp, err := c.do(ctx, http.MethodGet, "/"+c.docLink(container, id), "docs", c.docLink(container, id), headers, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		drainAndClose(resp)
		return nil, fmt.Errorf("%w: %q in container %q", ErrItemNotFound, id, container)
	case http.StatusBadRequest:
		drainAndClose(resp)
		return nil, fmt.Errorf("%w: item %q", ErrPartitionKeyMismatch, id)
	default:
		se := readError(resp)
		return nil, fmt.Errorf("failed to get item %q: %w", id, se)
	}

	var item map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decoding item: %w", err)
	}

	c.log.Info("Retrieved item %q from container %q", id, container)
	return item, nil
}

// DeleteItem deletes an item by id and partition key. Deleting an item that
// does not exist is not an error.
func (c *Client) DeleteItem(ctx context.Context, container, id, partitionKey string) error {
	headers := map[string]string{
		"x-ms-documentdb-partitionkey": partitionKeyHeader(partitionKey),
	}

	resp, err := c.do(ctx, http.MethodDelete, "/"+c.docLink(container, id), "docs", c.docLink(container, id), headers, nil)
	if err != nil {
		return err
	}
	defer drainAndClose(resp)

	switch resp.StatusCode {
	case http.StatusNoContent:
		c.log.Info("Deleted item %q from container %q", id, container)
		return nil
	case http.StatusNotFound:
		c.log.Info("Item %q not found during delete (idempotent)", id)
		return nil
	case http.StatusBadRequest:
		return fmt.Errorf("%w: item %q", ErrPartitionKeyMismatch, id)
	default:
		se := readError(resp)
		return fmt.Errorf("failed to delete item %q: %w", id, se)
	}
}
