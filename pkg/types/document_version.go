package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PageTexts is the ordered per-page extraction of one document version,
// persisted as JSONB so a version can be re-chunked without re-upload.
type PageTexts []string

func (p PageTexts) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PageTexts) Scan(value any) error {
	if value == nil {
		*p = nil
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for PageTexts", value)
	}
	return json.Unmarshal(raw, p)
}

type DocumentVersion struct {
	ID         string    `json:"id" db:"id"`
	DocumentID string    `json:"document_id" db:"document_id"`
	TenantID   string    `json:"tenant_id" db:"tenant_id"`
	FileHash   string    `json:"file_hash" db:"file_hash"`
	BlobKey    string    `json:"blob_key" db:"blob_key"`
	Pages      PageTexts `json:"pages" db:"pages"`
	PageCount  int       `json:"page_count" db:"page_count"`
	CreatedAt  int64     `json:"created_at" db:"created_at"`
}
