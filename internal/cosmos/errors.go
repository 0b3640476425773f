package cosmos

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Common errors returned by the Cosmos client. Messages never contain the
// account key or any other credential material.
var (
	// ErrInvalidArgument indicates caller misuse detected before any store call.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResourceNotFound indicates the target container does not exist.
	ErrResourceNotFound = errors.New("container not found")

	// ErrResourceExists indicates a container with the same name already exists.
	ErrResourceExists = errors.New("container already exists")

	// ErrItemNotFound indicates no item with the given id exists in the partition.
	ErrItemNotFound = errors.New("item not found")

	// ErrDuplicateItem indicates an item with the same id already exists in the partition.
	ErrDuplicateItem = errors.New("item already exists in partition")

	// ErrPartitionKeyMismatch indicates the supplied partition key value does not
	// match the item's partition key field.
	ErrPartitionKeyMismatch = errors.New("partition key mismatch")

	// ErrInvalidPartitionKey indicates a malformed partition key path.
	ErrInvalidPartitionKey = errors.New("invalid partition key path")

	// ErrQuerySyntax indicates the query text was rejected by the store's dialect.
	ErrQuerySyntax = errors.New("query syntax error")

	// ErrCrossPartition indicates a multi-partition query without cross-partition
	// opt-in. The message names both remedies.
	ErrCrossPartition = errors.New("cross-partition query disallowed: enable cross-partition queries or supply a partition key value")

	// ErrQueryTimeout indicates the store aborted a request after exceeding its
	// deadline. Never retried silently.
	ErrQueryTimeout = errors.New("request timed out; narrow the query scope or raise the request deadline")

	// ErrQuotaExceeded indicates the account's throughput quota was exceeded.
	ErrQuotaExceeded = errors.New("throughput quota exceeded")

	// ErrUnauthorized indicates the account key was rejected by the store.
	ErrUnauthorized = errors.New("authentication rejected by Cosmos DB")

	// ErrConnection indicates a transport-level failure reaching the store.
	ErrConnection = errors.New("connection to Cosmos DB failed")
)

// StoreError carries the raw response details of a failed Cosmos request.
type StoreError struct {
	StatusCode int
	Code       string // Error code reported by the service (e.g. "BadRequest")
	Message    string // Service message, free of credential material
}

func (e *StoreError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("cosmos error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("cosmos error (status %d): %s", e.StatusCode, e.Message)
}

// readError decodes the error body of a non-2xx response.
func readError(resp *http.Response) *StoreError {
	se := &StoreError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		se.Message = resp.Status
		return se
	}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		se.Message = resp.Status
		return se
	}

	se.Code = payload.Code
	se.Message = payload.Message
	return se
}

// IsNotFound returns true if the error indicates a missing container or item.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrResourceNotFound) || errors.Is(err, ErrItemNotFound) {
		return true
	}
	var se *StoreError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusNotFound
	}
	return false
}

// IsTimeout returns true if the error indicates a store-side deadline was exceeded.
func IsTimeout(err error) bool {
	if errors.Is(err, ErrQueryTimeout) {
		return true
	}
	var se *StoreError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusRequestTimeout
	}
	return false
}

// IsConflict returns true if the error indicates a duplicate container or item.
func IsConflict(err error) bool {
	if errors.Is(err, ErrResourceExists) || errors.Is(err, ErrDuplicateItem) {
		return true
	}
	var se *StoreError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusConflict
	}
	return false
}
