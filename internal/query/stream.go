package query

import (
	"context"
	"encoding/json"

	"github.com/orbit-cli/orbit/internal/cosmos"
)

// Stream is a lazy, forward-only sequence of query result items, bounded by
// the request's max items. It follows the sql.Rows consumption pattern:
//
//	for stream.Next() {
//	    item := stream.Item()
//	    ...
//	}
//	if err := stream.Err(); err != nil { ... }
//
// A Stream is owned by a single caller and is not safe for concurrent use.
// Items already yielded remain valid if a later page fetch fails; only the
// failing pull reports the error.
type Stream struct {
	ctx   context.Context
	store Pager
	req   Request

	page         *cosmos.Page
	idx          int // next unread index within page
	continuation string
	started      bool // at least one page fetched

	cur     json.RawMessage
	yielded int
	pages   int
	charge  float64
	done    bool
	err     error
}

// Next advances to the next item, fetching a page from the store only when
// the current one is exhausted and the result cap has not been reached.
// It returns false when the stream is exhausted, capped, closed, or failed.
func (s *Stream) Next() bool {
	if s.done || s.err != nil {
		return false
	}
	if s.yielded >= s.req.MaxItems {
		// Capped: stop without fetching pages the consumer does not need.
		s.done = true
		return false
	}

	// Skip empty pages: cross-partition queries may return pages with zero
	// items but a live continuation token.
	for s.page == nil || s.idx >= len(s.page.Items) {
		if s.started && s.continuation == "" {
			s.done = true
			return false
		}
		if err := s.fetch(); err != nil {
			s.err = err
			return false
		}
	}

	s.cur = s.page.Items[s.idx]
	s.idx++
	s.yielded++
	return true
}

// fetch retrieves the next page and folds its charge into the running total.
func (s *Stream) fetch() error {
	page, err := s.store.QueryPage(s.ctx, cosmos.PageRequest{
		Container:      s.req.Container,
		Query:          s.req.Query,
		PartitionKey:   s.req.PartitionKey,
		CrossPartition: s.req.CrossPartition,
		PageSize:       s.req.PageSize,
		Continuation:   s.continuation,
	})
	if err != nil {
		return err
	}

	s.started = true
	s.page = page
	s.idx = 0
	s.continuation = page.Continuation
	s.charge += page.RequestCharge
	s.pages++
	return nil
}

// Item returns the item most recently advanced to by Next. The returned
// bytes are valid until the next call to Next.
func (s *Stream) Item() json.RawMessage {
	return s.cur
}

// Err returns the error that terminated the stream, if any. Exhaustion and
// reaching the result cap are not errors.
func (s *Stream) Err() error {
	return s.err
}

// Close abandons the stream. No further pages are fetched afterwards.
func (s *Stream) Close() {
	s.done = true
}

// RequestCharge returns the running cost total: the sum of per-page charges
// for exactly the pages fetched so far. Readable at any point, including
// after partial consumption.
func (s *Stream) RequestCharge() float64 {
	return s.charge
}

// Pages returns the number of pages fetched so far.
func (s *Stream) Pages() int {
	return s.pages
}

// Count returns the number of items yielded so far.
func (s *Stream) Count() int {
	return s.yielded
}
