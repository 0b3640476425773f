package query

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbit-cli/orbit/internal/cosmos"
)

// fakePager serves scripted pages and records every fetch.
type fakePager struct {
	pages   []cosmos.Page
	failAt  int   // fail on the n-th fetch (1-based), 0 = never
	err     error // error to return at failAt
	fetches []cosmos.PageRequest
}

func (f *fakePager) QueryPage(ctx context.Context, req cosmos.PageRequest) (*cosmos.Page, error) {
	f.fetches = append(f.fetches, req)
	n := len(f.fetches)
	if f.failAt != 0 && n == f.failAt {
		return nil, f.err
	}

	idx := 0
	if req.Continuation != "" {
		fmt.Sscanf(req.Continuation, "page-%d", &idx)
	}
	if idx >= len(f.pages) {
		return &cosmos.Page{}, nil
	}
	page := f.pages[idx]
	return &page, nil
}

// pagerWithItems builds a fake serving total items split into pages of
// pageSize, each page costing charge RUs.
func pagerWithItems(total, pageSize int, charge float64) *fakePager {
	var pages []cosmos.Page
	for start := 0; start < total; start += pageSize {
		end := start + pageSize
		if end > total {
			end = total
		}
		var items []json.RawMessage
		for i := start; i < end; i++ {
			items = append(items, json.RawMessage(fmt.Sprintf(`{"id":"item-%d"}`, i)))
		}
		pages = append(pages, cosmos.Page{Items: items, RequestCharge: charge})
	}
	for i := range pages {
		if i < len(pages)-1 {
			pages[i].Continuation = fmt.Sprintf("page-%d", i+1)
		}
	}
	return &fakePager{pages: pages}
}

func validRequest() Request {
	return Request{
		Container:      "orders",
		Query:          "SELECT * FROM c",
		CrossPartition: true,
		PageSize:       100,
		MaxItems:       100,
	}
}

func drain(t *testing.T, s *Stream) []string {
	t.Helper()
	var ids []string
	for s.Next() {
		var item struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(s.Item(), &item))
		ids = append(ids, item.ID)
	}
	return ids
}

func TestExecuteValidation(t *testing.T) {
	store := pagerWithItems(10, 100, 2.5)
	executor := NewExecutor(store)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty container", func(r *Request) { r.Container = "" }},
		{"blank query", func(r *Request) { r.Query = "   " }},
		{"zero page size", func(r *Request) { r.PageSize = 0 }},
		{"negative page size", func(r *Request) { r.PageSize = -1 }},
		{"zero max items", func(r *Request) { r.MaxItems = 0 }},
		{"negative max items", func(r *Request) { r.MaxItems = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := executor.Execute(context.Background(), req)
			require.ErrorIs(t, err, cosmos.ErrInvalidArgument)
			assert.Empty(t, store.fetches, "validation failures must not reach the store")
		})
	}
}

func TestExecuteCrossPartitionPolicy(t *testing.T) {
	store := pagerWithItems(10, 100, 2.5)
	executor := NewExecutor(store)

	req := validRequest()
	req.CrossPartition = false
	req.PartitionKey = ""

	_, err := executor.Execute(context.Background(), req)
	require.ErrorIs(t, err, cosmos.ErrCrossPartition)
	assert.Empty(t, store.fetches, "policy violation must fetch zero pages")

	// Both remedies must be named.
	assert.Contains(t, err.Error(), "cross-partition")
	assert.Contains(t, err.Error(), "partition key")

	// A partition key alone satisfies the policy.
	req.PartitionKey = "2024"
	_, err = executor.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestStreamCapStopsFetching(t *testing.T) {
	// 250 items in pages of 100; cap 100 must fetch exactly one page.
	store := pagerWithItems(250, 100, 7.5)
	executor := NewExecutor(store)

	stream, err := executor.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	ids := drain(t, stream)
	require.NoError(t, stream.Err())

	assert.Len(t, ids, 100)
	assert.Len(t, store.fetches, 1)
	assert.Equal(t, 7.5, stream.RequestCharge(), "cost must cover only the single fetched page")
	assert.Equal(t, 1, stream.Pages())
}

func TestStreamFewerItemsThanCap(t *testing.T) {
	store := pagerWithItems(10, 100, 3.0)
	executor := NewExecutor(store)

	stream, err := executor.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	ids := drain(t, stream)
	require.NoError(t, stream.Err())

	assert.Len(t, ids, 10)
	assert.Len(t, store.fetches, 1)
	assert.Equal(t, 3.0, stream.RequestCharge())
}

func TestStreamChargeSumsFetchedPages(t *testing.T) {
	// 250 items in pages of 100, cap 250: three pages, cost 3x.
	store := pagerWithItems(250, 100, 2.0)
	executor := NewExecutor(store)

	req := validRequest()
	req.MaxItems = 250
	stream, err := executor.Execute(context.Background(), req)
	require.NoError(t, err)

	ids := drain(t, stream)
	require.NoError(t, stream.Err())

	assert.Len(t, ids, 250)
	assert.Len(t, store.fetches, 3)
	assert.Equal(t, 6.0, stream.RequestCharge())
	assert.Equal(t, 3, stream.Pages())
}

func TestStreamLazyUntilFirstNext(t *testing.T) {
	store := pagerWithItems(10, 100, 1.0)
	executor := NewExecutor(store)

	stream, err := executor.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Empty(t, store.fetches, "Execute must not fetch")
	assert.Equal(t, 0.0, stream.RequestCharge())

	require.True(t, stream.Next())
	assert.Len(t, store.fetches, 1)
}

func TestStreamPageSizeDoesNotChangeContent(t *testing.T) {
	run := func(pageSize int) ([]string, float64) {
		store := pagerWithItems(37, pageSize, 1.0)
		req := validRequest()
		req.PageSize = pageSize
		req.MaxItems = 50

		stream, err := NewExecutor(store).Execute(context.Background(), req)
		require.NoError(t, err)
		ids := drain(t, stream)
		require.NoError(t, stream.Err())
		return ids, stream.RequestCharge()
	}

	idsSmall, chargeSmall := run(1)
	idsLarge, chargeLarge := run(100)

	assert.Equal(t, idsLarge, idsSmall, "item content and order must not depend on page size")
	assert.Equal(t, 37.0, chargeSmall, "37 single-item pages")
	assert.Equal(t, 1.0, chargeLarge, "one page of 100")
}

func TestStreamAbandonedEarly(t *testing.T) {
	store := pagerWithItems(250, 100, 5.0)
	executor := NewExecutor(store)

	stream, err := executor.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.True(t, stream.Next())
	}
	stream.Close()

	assert.False(t, stream.Next(), "closed stream must not advance")
	assert.Len(t, store.fetches, 1, "abandoning must stop page fetching")
	assert.Equal(t, 5.0, stream.RequestCharge())
	assert.Equal(t, 5, stream.Count())
}

func TestStreamMidStreamFailureKeepsYieldedItems(t *testing.T) {
	store := pagerWithItems(250, 100, 4.0)
	store.failAt = 2
	store.err = fmt.Errorf("%w: querying container %q", cosmos.ErrQueryTimeout, "orders")

	req := validRequest()
	req.MaxItems = 250
	stream, err := NewExecutor(store).Execute(context.Background(), req)
	require.NoError(t, err)

	ids := drain(t, stream)

	// Page one was consumed in full before the second fetch failed.
	assert.Len(t, ids, 100)
	require.ErrorIs(t, stream.Err(), cosmos.ErrQueryTimeout)
	assert.Equal(t, 4.0, stream.RequestCharge(), "cost covers only the page that succeeded")

	// The failure is terminal: no retry on subsequent pulls.
	assert.False(t, stream.Next())
	assert.Len(t, store.fetches, 2)
}

func TestStreamNotFoundOnFirstFetch(t *testing.T) {
	store := &fakePager{
		failAt: 1,
		err:    fmt.Errorf("%w: %q", cosmos.ErrResourceNotFound, "missing"),
	}
	req := validRequest()
	req.Container = "missing"

	stream, err := NewExecutor(store).Execute(context.Background(), req)
	require.NoError(t, err, "existence is only discoverable at the first fetch")

	assert.False(t, stream.Next())
	require.ErrorIs(t, stream.Err(), cosmos.ErrResourceNotFound)
	assert.Contains(t, stream.Err().Error(), "missing")
	assert.Equal(t, 0.0, stream.RequestCharge())
}

func TestStreamSkipsEmptyPages(t *testing.T) {
	// Cross-partition queries can return zero-item pages with a live token.
	store := &fakePager{pages: []cosmos.Page{
		{Items: nil, Continuation: "page-1", RequestCharge: 1.0},
		{Items: []json.RawMessage{json.RawMessage(`{"id":"a"}`)}, RequestCharge: 2.0},
	}}

	stream, err := NewExecutor(store).Execute(context.Background(), validRequest())
	require.NoError(t, err)

	ids := drain(t, stream)
	require.NoError(t, stream.Err())

	assert.Equal(t, []string{"a"}, ids)
	assert.Equal(t, 3.0, stream.RequestCharge(), "empty pages still cost what the store charged")
	assert.Equal(t, 2, stream.Pages())
}

func TestStreamIdempotentReissue(t *testing.T) {
	req := validRequest()
	req.MaxItems = 250

	run := func() ([]string, float64) {
		store := pagerWithItems(250, 100, 2.0)
		stream, err := NewExecutor(store).Execute(context.Background(), req)
		require.NoError(t, err)
		ids := drain(t, stream)
		require.NoError(t, stream.Err())
		return ids, stream.RequestCharge()
	}

	ids1, charge1 := run()
	ids2, charge2 := run()

	assert.Equal(t, ids1, ids2)
	assert.Equal(t, charge1, charge2)
}

func TestStreamContinuationPassedVerbatim(t *testing.T) {
	store := pagerWithItems(250, 100, 1.0)
	req := validRequest()
	req.MaxItems = 250

	stream, err := NewExecutor(store).Execute(context.Background(), req)
	require.NoError(t, err)
	drain(t, stream)
	require.NoError(t, stream.Err())

	require.Len(t, store.fetches, 3)
	assert.Equal(t, "", store.fetches[0].Continuation)
	assert.Equal(t, "page-1", store.fetches[1].Continuation)
	assert.Equal(t, "page-2", store.fetches[2].Continuation)
}

func TestStreamErrDistinguishesExhaustion(t *testing.T) {
	store := pagerWithItems(3, 100, 1.0)
	stream, err := NewExecutor(store).Execute(context.Background(), validRequest())
	require.NoError(t, err)

	drain(t, stream)

	assert.NoError(t, stream.Err(), "exhaustion is not an error")
	assert.False(t, stream.Next(), "exhausted stream stays exhausted")
	assert.NoError(t, stream.Err())
}
