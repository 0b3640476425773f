package cosmos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// DefaultThroughput is the minimum manual throughput for a new container.
const DefaultThroughput = 400

// Container names: alphanumeric and hyphens, max 255 chars.
var containerNamePattern = regexp.MustCompile(`^[a-zA-Z0-9-]{1,255}$`)

// validateContainerName checks a name against Cosmos DB container rules.
func validateContainerName(name string) error {
	if !containerNamePattern.MatchString(name) {
		return fmt.Errorf("%w: invalid container name %q: must be alphanumeric with hyphens, max 255 characters", ErrInvalidArgument, name)
	}
	return nil
}

// validatePartitionKeyPath checks a partition key path against Cosmos DB rules.
func validatePartitionKeyPath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q must start with '/'", ErrInvalidPartitionKey, path)
	}
	return nil
}

func (c *Client) collsPath() string {
	return "/dbs/" + c.database + "/colls"
}

func (c *Client) collLink(name string) string {
	return "dbs/" + c.database + "/colls/" + name
}

// ListContainers lists all containers in the configured database.
func (c *Client) ListContainers(ctx context.Context) ([]Collection, error) {
	resp, err := c.do(ctx, http.MethodGet, c.collsPath(), "colls", "dbs/"+c.database, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		se := readError(resp)
		return nil, fmt.Errorf("failed to list containers: %w", se)
	}

	var feed collectionFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding containers feed: %w", err)
	}

	c.log.Info("Listed %d containers in database %q", len(feed.Collections), c.database)
	return feed.Collections, nil
}

// CreateContainer creates a container with the given partition key path and
// manual throughput in RU/s.
func (c *Client) CreateContainer(ctx context.Context, name, partitionKeyPath string, throughput int) (*Collection, error) {
	if err := validateContainerName(name); err != nil {
		return nil, err
	}
	if err := validatePartitionKeyPath(partitionKeyPath); err != nil {
		return nil, err
	}
	if throughput <= 0 {
		throughput = DefaultThroughput
	}

	body, err := json.Marshal(Collection{
		ID: name,
		PartitionKey: PartitionKeyDef{
			Paths: []string{partitionKeyPath},
			Kind:  "Hash",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding container definition: %w", err)
	}

	headers := map[string]string{
		"Content-Type":          "application/json",
		"x-ms-offer-throughput": strconv.Itoa(throughput),
	}

	resp, err := c.do(ctx, http.MethodPost, c.collsPath(), "colls", "dbs/"+c.database, headers, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated:
		// fall through to decode
	case resp.StatusCode == http.StatusConflict:
		drainAndClose(resp)
		return nil, fmt.Errorf("%w: container %q", ErrResourceExists, name)
	case resp.StatusCode == http.StatusTooManyRequests:
		drainAndClose(resp)
		return nil, fmt.Errorf("%w: creating container %q: consider reducing throughput or upgrading the account", ErrQuotaExceeded, name)
	default:
		se := readError(resp)
		if strings.Contains(strings.ToLower(se.Message), "quota") {
			return nil, fmt.Errorf("%w: creating container %q: consider reducing throughput or upgrading the account", ErrQuotaExceeded, name)
		}
		return nil, fmt.Errorf("failed to create container %q: %w", name, se)
	}

	var created Collection
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decoding created container: %w", err)
	}

	c.log.Info("Created container %q with partition key %q and throughput %d RU/s", name, partitionKeyPath, throughput)
	return &created, nil
}

// DeleteContainer deletes a container by name. Deleting a container that does
// not exist is not an error.
func (c *Client) DeleteContainer(ctx context.Context, name string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/"+c.collLink(name), "colls", c.collLink(name), nil, nil)
	if err != nil {
		return err
	}
	defer drainAndClose(resp)

	switch resp.StatusCode {
	case http.StatusNoContent:
		c.log.Info("Deleted container %q", name)
		return nil
	case http.StatusNotFound:
		c.log.Info("Container %q not found during delete (idempotent)", name)
		return nil
	default:
		se := readError(resp)
		return fmt.Errorf("failed to delete container %q: %w", name, se)
	}
}

// GetContainer retrieves a container's properties.
func (c *Client) GetContainer(ctx context.Context, name string) (*Collection, error) {
	resp, err := c.do(ctx, http.MethodGet, "/"+c.collLink(name), "colls", c.collLink(name), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		drainAndClose(resp)
		return nil, fmt.Errorf("%w: %q", ErrResourceNotFound, name)
	default:
		se := readError(resp)
		return nil, fmt.Errorf("failed to get properties for container %q: %w", name, se)
	}

	var coll Collection
	if err := json.NewDecoder(resp.Body).Decode(&coll); err != nil {
		return nil, fmt.Errorf("decoding container properties: %w", err)
	}

	c.log.Info("Retrieved properties for container %q", name)
	return &coll, nil
}
