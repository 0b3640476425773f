package cosmos

import "encoding/json"

// PartitionKeyDef describes how a container routes items to partitions.
type PartitionKeyDef struct {
	Paths []string `json:"paths"`
	Kind  string   `json:"kind"`
}

// Collection holds the properties of a Cosmos DB container.
type Collection struct {
	ID             string          `json:"id"`
	PartitionKey   PartitionKeyDef `json:"partitionKey"`
	IndexingPolicy json.RawMessage `json:"indexingPolicy,omitempty"`
	ETag           string          `json:"_etag,omitempty"`
	SelfLink       string          `json:"_self,omitempty"`
}

// PartitionKeyPath returns the container's first partition key path.
func (c Collection) PartitionKeyPath() string {
	if len(c.PartitionKey.Paths) == 0 {
		return ""
	}
	return c.PartitionKey.Paths[0]
}

// PageRequest describes one page fetch of a document query.
type PageRequest struct {
	Container      string
	Query          string
	PartitionKey   string // empty = not scoped to a single partition
	CrossPartition bool
	PageSize       int
	Continuation   string // verbatim token from the previous page, empty for the first
}

// Page is one page of query results. Continuation is empty when the result
// set is exhausted.
type Page struct {
	Items         []json.RawMessage
	Continuation  string
	RequestCharge float64
}

// collectionFeed is the wire shape of the containers feed.
type collectionFeed struct {
	Collections []Collection `json:"DocumentCollections"`
	Count       int          `json:"_count"`
}

// documentFeed is the wire shape of a query response body.
type documentFeed struct {
	Documents []json.RawMessage `json:"Documents"`
	Count     int               `json:"_count"`
}

// queryParameter is one named parameter of a parameterized query.
type queryParameter struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// queryBody is the wire shape of a query request body.
type queryBody struct {
	Query      string           `json:"query"`
	Parameters []queryParameter `json:"parameters"`
}
