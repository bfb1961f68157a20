package store

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/corpora-ai/corpora/pkg/sqlstore"
	"github.com/corpora-ai/corpora/pkg/types"
)

type TenantStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Tenant) error
	Get(ctx context.Context, id string) (*types.Tenant, error)
	List(ctx context.Context, page, pageSize uint64) ([]types.Tenant, error)
	Delete(ctx context.Context, id string) error
}

type DocumentStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Document) error
	Get(ctx context.Context, tenantID, id string) (*types.Document, error)
	List(ctx context.Context, opts types.GetDocumentOptions, page, pageSize uint64) ([]types.Document, error)
	Total(ctx context.Context, opts types.GetDocumentOptions) (int64, error)
	// FinishProcessing flips a document to the done stage together with its
	// freshly persisted version pointer.
	FinishProcessing(ctx context.Context, tenantID, id, versionID string, pageCount int) error
	UpdateStage(ctx context.Context, tenantID, id string, stage types.DocumentStage) error
	Delete(ctx context.Context, tenantID, id string) error
}

type DocumentVersionStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.DocumentVersion) error
	Get(ctx context.Context, id string) (*types.DocumentVersion, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}

type ChunkStore interface {
	sqlstore.SqlCommons
	BatchCreate(ctx context.Context, datas []*types.Chunk) error
	Total(ctx context.Context, opts types.GetChunkOptions) (int64, error)
	DeleteByDocument(ctx context.Context, documentID string) error
	DeleteByEffectiveKey(ctx context.Context, effectiveKey string) error
}

// VectorStore is the pgvector-backed index. Rows are keyed by chunk id and
// partitioned by effective key; Search never crosses keys.
type VectorStore interface {
	sqlstore.SqlCommons
	BatchUpsert(ctx context.Context, datas []*types.ChunkVector) error
	Search(ctx context.Context, effectiveKey string, embedding pgvector.Vector, limit uint64) ([]types.SearchResult, error)
	DeleteByDocument(ctx context.Context, documentID string) error
	DeleteByEffectiveKey(ctx context.Context, effectiveKey string) error
}

type PlaygroundStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Playground) error
	Get(ctx context.Context, tenantID, id string) (*types.Playground, error)
	List(ctx context.Context, tenantID string, page, pageSize uint64) ([]types.Playground, error)
	Total(ctx context.Context, tenantID string) (int64, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// EventStore is append-only; the audit log has no update or delete path.
type EventStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Event) error
	List(ctx context.Context, effectiveKey string, page, pageSize uint64) ([]types.Event, error)
}
