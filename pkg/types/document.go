package types

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// DocumentStage tracks how far an ingestion got. Only STAGE_DONE documents
// have a complete chunk+vector set; anything else is invisible to search.
type DocumentStage string

const (
	DOCUMENT_STAGE_PROCESSING DocumentStage = "processing"
	DOCUMENT_STAGE_DONE       DocumentStage = "done"
	DOCUMENT_STAGE_FAILED     DocumentStage = "failed"
)

func (s DocumentStage) String() string {
	return string(s)
}

type Document struct {
	ID              string        `json:"id" db:"id"`
	TenantID        string        `json:"tenant_id" db:"tenant_id"`
	PlaygroundID    string        `json:"playground_id" db:"playground_id"` // empty means tenant-wide
	Filename        string        `json:"filename" db:"filename"`
	Mime            string        `json:"mime" db:"mime"`
	FileHash        string        `json:"file_hash" db:"file_hash"` // sha256 of the raw bytes, integrity only
	PageCount       int           `json:"page_count" db:"page_count"`
	LatestVersionID string        `json:"latest_version_id" db:"latest_version_id"`
	Stage           DocumentStage `json:"stage" db:"stage"`
	CreatedAt       int64         `json:"created_at" db:"created_at"`
	UpdatedAt       int64         `json:"updated_at" db:"updated_at"`
}

type GetDocumentOptions struct {
	ID           string
	TenantID     string
	PlaygroundID string
	FileHash     string
	Stage        *DocumentStage
}

func (opts GetDocumentOptions) Apply(query *sq.SelectBuilder) {
	if opts.ID != "" {
		*query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.TenantID != "" {
		*query = query.Where(sq.Eq{"tenant_id": opts.TenantID})
	}
	if opts.PlaygroundID != "" {
		*query = query.Where(sq.Eq{"playground_id": opts.PlaygroundID})
	}
	if opts.FileHash != "" {
		*query = query.Where(sq.Eq{"file_hash": opts.FileHash})
	}
	if opts.Stage != nil {
		*query = query.Where(sq.Eq{"stage": *opts.Stage})
	}
}

// BlobKey is where a document version's raw bytes live in the object store.
func BlobKey(tenantID, fileHash string) string {
	return fmt.Sprintf("%s/blobs/%s", tenantID, fileHash)
}
