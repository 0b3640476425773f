package cosmos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// QueryPage fetches one page of a document query. It implements the pager
// contract consumed by the query executor: the continuation token from the
// previous page is passed verbatim, and the response carries the next token
// (empty when exhausted) plus the page's request charge.
func (c *Client) QueryPage(ctx context.Context, req PageRequest) (*Page, error) {
	body, err := json.Marshal(queryBody{
		Query:      req.Query,
		Parameters: []queryParameter{},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	headers := map[string]string{
		"Content-Type":            "application/query+json",
		"x-ms-documentdb-isquery": "True",
		"x-ms-max-item-count":     strconv.Itoa(req.PageSize),
	}
	if req.Continuation != "" {
		headers["x-ms-continuation"] = req.Continuation
	}
	if req.CrossPartition {
		headers["x-ms-documentdb-query-enablecrosspartition"] = "True"
	}
	if req.PartitionKey != "" {
		headers["x-ms-documentdb-partitionkey"] = partitionKeyHeader(req.PartitionKey)
	}

	resp, err := c.do(ctx, http.MethodPost, c.docsPath(req.Container), "docs", c.collLink(req.Container), headers, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.translateQueryError(resp, req.Container)
	}

	var feed documentFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding query results: %w", err)
	}

	charge, _ := strconv.ParseFloat(resp.Header.Get("x-ms-request-charge"), 64)

	c.log.Debug("Query page against %q: %d items, %.2f RU", req.Container, len(feed.Documents), charge)

	return &Page{
		Items:         feed.Documents,
		Continuation:  resp.Header.Get("x-ms-continuation"),
		RequestCharge: charge,
	}, nil
}

// translateQueryError maps a failed query response to the error taxonomy.
// 400 responses are disambiguated by the service message: the gateway reports
// dialect syntax errors and cross-partition rejection with the same status.
func (c *Client) translateQueryError(resp *http.Response, container string) error {
	se := readError(resp)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %q", ErrResourceNotFound, container)
	case http.StatusRequestTimeout:
		return fmt.Errorf("%w: querying container %q", ErrQueryTimeout, container)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: querying container %q", ErrQuotaExceeded, container)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	case http.StatusBadRequest:
		msg := strings.ToLower(se.Message)
		if strings.Contains(msg, "syntax error") {
			return fmt.Errorf("%w: %s", ErrQuerySyntax, se.Message)
		}
		if strings.Contains(msg, "cross partition") {
			return fmt.Errorf("%w (reported by the store)", ErrCrossPartition)
		}
		return fmt.Errorf("query against %q rejected: %w", container, se)
	default:
		return fmt.Errorf("query against %q failed: %w", container, se)
	}
}
