package types

import (
	sq "github.com/Masterminds/squirrel"
)

// Chunk is one retrievable window of a document version's normalized text.
// EffectiveKey is the single partition value used for isolation; the store
// never sees tenant and playground separately.
type Chunk struct {
	ID           string `json:"id" db:"id"`
	DocumentID   string `json:"document_id" db:"document_id"`
	VersionID    string `json:"version_id" db:"version_id"`
	EffectiveKey string `json:"effective_key" db:"effective_key"`
	PageStart    int    `json:"page_start" db:"page_start"`
	PageEnd      int    `json:"page_end" db:"page_end"`
	CharStart    int    `json:"char_start" db:"char_start"`
	CharEnd      int    `json:"char_end" db:"char_end"`
	TokenLen     int    `json:"token_len" db:"token_len"`
	Text         string `json:"text" db:"text"`
	CreatedAt    int64  `json:"created_at" db:"created_at"`
}

type GetChunkOptions struct {
	ID           string
	DocumentID   string
	VersionID    string
	EffectiveKey string
}

func (opts GetChunkOptions) Apply(query *sq.SelectBuilder) {
	if opts.ID != "" {
		*query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.DocumentID != "" {
		*query = query.Where(sq.Eq{"document_id": opts.DocumentID})
	}
	if opts.VersionID != "" {
		*query = query.Where(sq.Eq{"version_id": opts.VersionID})
	}
	if opts.EffectiveKey != "" {
		*query = query.Where(sq.Eq{"effective_key": opts.EffectiveKey})
	}
}
