package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"

	"github.com/corpora-ai/corpora/pkg/register"
	"github.com/corpora-ai/corpora/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.VectorStore = NewVectorStore(provider)
	})
}

type VectorStore struct {
	CommonFields
}

func NewVectorStore(provider SqlProviderAchieve) *VectorStore {
	store := &VectorStore{}
	store.SetProvider(provider)
	store.SetTable(types.TABLE_CHUNK_VECTOR)
	store.SetAllColumns("id", "document_id", "effective_key", "embedding", "created_at", "updated_at")
	return store
}

// BatchUpsert writes one vector per chunk. Re-embedding the same chunk id
// replaces the old vector instead of duplicating the row.
func (s *VectorStore) BatchUpsert(ctx context.Context, datas []*types.ChunkVector) error {
	if len(datas) == 0 {
		return nil
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "document_id", "effective_key", "embedding", "created_at", "updated_at")
	for _, data := range datas {
		if data.CreatedAt == 0 {
			data.CreatedAt = time.Now().Unix()
		}
		if data.UpdatedAt == 0 {
			data.UpdatedAt = time.Now().Unix()
		}
		query = query.Values(data.ID, data.DocumentID, data.EffectiveKey, data.Embedding, data.CreatedAt, data.UpdatedAt)
	}
	query = query.Suffix("ON CONFLICT (id) DO UPDATE SET embedding = EXCLUDED.embedding, updated_at = EXCLUDED.updated_at")

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// Search ranks the effective key's vectors by cosine distance against the
// query embedding. Ties on distance break on insertion order via the id
// column, so repeated queries return a stable ranking.
//
// pgvector distance operators:
//
//	<-> L2, <#> negative inner product, <=> cosine, <+> L1
func (s *VectorStore) Search(ctx context.Context, effectiveKey string, embedding pgvector.Vector, limit uint64) ([]types.SearchResult, error) {
	distanceColumn, vectorArgs, _ := sq.Expr("v.embedding <=> ? AS distance", embedding).ToSql()
	query := sq.Select(
		"v.id AS chunk_id",
		"v.document_id AS document_id",
		"d.filename AS filename",
		"c.page_start AS page",
		"c.text AS text",
		distanceColumn,
	).
		From(s.GetTable() + " v").
		Join(types.TABLE_CHUNK.Name() + " c ON c.id = v.id").
		Join(types.TABLE_DOCUMENT.Name() + " d ON d.id = v.document_id").
		Where(sq.Eq{"v.effective_key": effectiveKey, "d.stage": types.DOCUMENT_STAGE_DONE}).
		OrderBy("distance ASC", "v.id ASC").
		Limit(limit)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	args = append(vectorArgs, args...)

	var res []types.SearchResult
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *VectorStore) DeleteByDocument(ctx context.Context, documentID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"document_id": documentID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *VectorStore) DeleteByEffectiveKey(ctx context.Context, effectiveKey string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"effective_key": effectiveKey})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
