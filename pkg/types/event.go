package types

import "encoding/json"

const (
	EVENT_KIND_INGEST            = "ingest"
	EVENT_KIND_QUERY             = "query"
	EVENT_KIND_RECHUNK           = "rechunk"
	EVENT_KIND_PLAYGROUND_CREATE = "playground.create"
	EVENT_KIND_PLAYGROUND_DELETE = "playground.delete"
	EVENT_KIND_DOCUMENT_DELETE   = "document.delete"
)

// Event is one row of the append-only audit log. Events are never updated
// or deleted by the service.
type Event struct {
	ID           string          `json:"id" db:"id"`
	EffectiveKey string          `json:"effective_key" db:"effective_key"`
	Kind         string          `json:"kind" db:"kind"`
	Actor        string          `json:"actor" db:"actor"`
	Payload      json.RawMessage `json:"payload" db:"payload"`
	CreatedAt    int64           `json:"created_at" db:"created_at"`
}
