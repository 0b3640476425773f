// Package integration exercises the orbit client against a live Cosmos DB
// account or emulator. Tests skip unless ORBIT_COSMOS_CONNECTION_STRING is set.
package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orbit-cli/orbit/internal/config"
	"github.com/orbit-cli/orbit/internal/cosmos"
	"github.com/orbit-cli/orbit/internal/query"
)

// liveClient builds a client from the environment, skipping the test when no
// credentials are available.
func liveClient(t *testing.T) *cosmos.Client {
	t.Helper()

	if os.Getenv(config.ConnectionStringEnv) == "" {
		t.Skip("ORBIT_COSMOS_CONNECTION_STRING not set, skipping integration test")
	}

	settings, err := config.Load()
	if err != nil {
		t.Fatalf("loading settings: %v", err)
	}
	client, err := cosmos.NewClient(settings)
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return client
}

// tempContainer creates a container for the duration of a test.
func tempContainer(t *testing.T, client *cosmos.Client) string {
	t.Helper()

	name := "orbit-it-" + uuid.NewString()[:8]
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := client.CreateContainer(ctx, name, "/pk", cosmos.DefaultThroughput); err != nil {
		t.Fatalf("creating container %s: %v", name, err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := client.DeleteContainer(ctx, name); err != nil {
			t.Errorf("cleaning up container %s: %v", name, err)
		}
	})
	return name
}

func TestItemRoundTrip(t *testing.T) {
	client := liveClient(t)
	container := tempContainer(t, client)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	item := map[string]any{"id": "it-1", "pk": "batch-a", "name": "widget"}

	if _, err := client.CreateItem(ctx, container, item, "batch-a"); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// A second create with the same id must conflict.
	if _, err := client.CreateItem(ctx, container, item, "batch-a"); !errors.Is(err, cosmos.ErrDuplicateItem) {
		t.Errorf("duplicate CreateItem error = %v, want ErrDuplicateItem", err)
	}

	got, err := client.GetItem(ctx, container, "it-1", "batch-a")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got["name"] != "widget" {
		t.Errorf("name = %v, want widget", got["name"])
	}

	// Delete twice; the second delete is a no-op.
	if err := client.DeleteItem(ctx, container, "it-1", "batch-a"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if err := client.DeleteItem(ctx, container, "it-1", "batch-a"); err != nil {
		t.Errorf("repeated DeleteItem: %v", err)
	}

	if _, err := client.GetItem(ctx, container, "it-1", "batch-a"); !errors.Is(err, cosmos.ErrItemNotFound) {
		t.Errorf("GetItem after delete error = %v, want ErrItemNotFound", err)
	}
}

func TestQueryPagination(t *testing.T) {
	client := liveClient(t)
	container := tempContainer(t, client)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	const total = 12
	for i := 0; i < total; i++ {
		item := map[string]any{
			"id": fmt.Sprintf("doc-%02d", i),
			"pk": "batch-a",
			"n":  i,
		}
		if _, err := client.CreateItem(ctx, container, item, "batch-a"); err != nil {
			t.Fatalf("seeding item %d: %v", i, err)
		}
	}

	exec := query.NewExecutor(client)
	stream, err := exec.Execute(ctx, query.Request{
		Container:    container,
		Query:        "SELECT * FROM c",
		PartitionKey: "batch-a",
		PageSize:     5,
		MaxItems:     total,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	defer stream.Close()

	count := 0
	for stream.Next() {
		count++
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if count != total {
		t.Errorf("yielded %d items, want %d", count, total)
	}
	if stream.Pages() < 3 {
		t.Errorf("fetched %d pages, want at least 3 with page size 5", stream.Pages())
	}
	if stream.RequestCharge() <= 0 {
		t.Errorf("request charge = %v, want > 0", stream.RequestCharge())
	}
}

func TestQuerySyntaxErrorLive(t *testing.T) {
	client := liveClient(t)
	container := tempContainer(t, client)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	exec := query.NewExecutor(client)
	stream, err := exec.Execute(ctx, query.Request{
		Container:    container,
		Query:        "SELCT * FROM c",
		PartitionKey: "batch-a",
		PageSize:     query.DefaultPageSize,
		MaxItems:     query.DefaultMaxItems,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	defer stream.Close()

	if stream.Next() {
		t.Fatal("expected no items from a malformed query")
	}
	if !errors.Is(stream.Err(), cosmos.ErrQuerySyntax) {
		t.Errorf("stream error = %v, want ErrQuerySyntax", stream.Err())
	}
}

func TestContainerLifecycle(t *testing.T) {
	client := liveClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	name := "orbit-it-" + uuid.NewString()[:8]
	coll, err := client.CreateContainer(ctx, name, "/pk", cosmos.DefaultThroughput)
	if err != nil {
		t.Fatalf("CreateContainer: %v", err)
	}
	if coll.PartitionKeyPath() != "/pk" {
		t.Errorf("partition key path = %q, want /pk", coll.PartitionKeyPath())
	}

	// Creating the same container again must conflict.
	if _, err := client.CreateContainer(ctx, name, "/pk", cosmos.DefaultThroughput); !errors.Is(err, cosmos.ErrResourceExists) {
		t.Errorf("duplicate CreateContainer error = %v, want ErrResourceExists", err)
	}

	found := false
	colls, err := client.ListContainers(ctx)
	if err != nil {
		t.Fatalf("ListContainers: %v", err)
	}
	for _, c := range colls {
		if c.ID == name {
			found = true
		}
	}
	if !found {
		t.Errorf("container %s missing from list", name)
	}

	if err := client.DeleteContainer(ctx, name); err != nil {
		t.Fatalf("DeleteContainer: %v", err)
	}
	// A repeated delete is a no-op.
	if err := client.DeleteContainer(ctx, name); err != nil {
		t.Errorf("repeated DeleteContainer: %v", err)
	}
}
