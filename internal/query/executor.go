// Package query executes SQL-like queries against a partitioned document
// store, streaming results page by page and aggregating request-unit cost.
//
// The executor is pull-based: a page is fetched only when the consumer asks
// for an item the current page cannot satisfy, so memory stays bounded by one
// page and cost accrues only for pages actually fetched.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/orbit-cli/orbit/internal/cosmos"
)

const (
	// DefaultPageSize is the per-page item cap when the caller does not set one.
	DefaultPageSize = 100

	// DefaultMaxItems is the result cap when the caller does not set one.
	DefaultMaxItems = 100
)

// Request describes one query invocation.
type Request struct {
	Container      string
	Query          string
	CrossPartition bool   // opt-in to multi-partition fan-out
	PartitionKey   string // scopes the query to one partition when set
	PageSize       int    // per-page item cap, must be positive
	MaxItems       int    // result cap, must be positive
}

// Pager fetches successive pages of a document query. cosmos.Client satisfies
// this; tests substitute a fake.
type Pager interface {
	QueryPage(ctx context.Context, req cosmos.PageRequest) (*cosmos.Page, error)
}

// Executor runs query requests against a backing store.
type Executor struct {
	store Pager
}

// NewExecutor creates an executor over the given store.
func NewExecutor(store Pager) *Executor {
	return &Executor{store: store}
}

// Execute validates the request and returns a lazy result stream. No page is
// fetched until the first call to Next; validation failures therefore cost
// zero round trips. Container existence is only discoverable at the first
// fetch and surfaces there as cosmos.ErrResourceNotFound.
func (e *Executor) Execute(ctx context.Context, req Request) (*Stream, error) {
	if req.Container == "" {
		return nil, fmt.Errorf("%w: container name is required", cosmos.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("%w: query text is required", cosmos.ErrInvalidArgument)
	}
	if req.PageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive, got %d", cosmos.ErrInvalidArgument, req.PageSize)
	}
	if req.MaxItems <= 0 {
		return nil, fmt.Errorf("%w: max items must be positive, got %d", cosmos.ErrInvalidArgument, req.MaxItems)
	}

	// Without a partition key every query may fan out across partitions, so
	// require the opt-in up front rather than burning a round trip on the
	// store's rejection. Server-side rejection remains the fallback for
	// stores that decide differently.
	if !req.CrossPartition && req.PartitionKey == "" {
		return nil, fmt.Errorf("%w: query against container %q", cosmos.ErrCrossPartition, req.Container)
	}

	return &Stream{
		ctx:   ctx,
		store: e.store,
		req:   req,
	}, nil
}
