package types

import (
	"github.com/pgvector/pgvector-go"
)

type ChunkVector struct {
	ID           string          `json:"id" db:"id"` // chunk id, 1:1
	DocumentID   string          `json:"document_id" db:"document_id"`
	EffectiveKey string          `json:"effective_key" db:"effective_key"`
	Embedding    pgvector.Vector `json:"embedding" db:"embedding"`
	CreatedAt    int64           `json:"created_at" db:"created_at"`
	UpdatedAt    int64           `json:"updated_at" db:"updated_at"`
}

// SearchResult is one ranked row from a similarity search. Distance is
// cosine distance: smaller means more similar.
type SearchResult struct {
	ChunkID    string  `json:"chunk_id" db:"chunk_id"`
	DocumentID string  `json:"document_id" db:"document_id"`
	Filename   string  `json:"filename" db:"filename"`
	Page       int     `json:"page" db:"page"`
	Text       string  `json:"text" db:"text"`
	Distance   float32 `json:"distance" db:"distance"`
}
