package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/corpora-ai/corpora/pkg/register"
	"github.com/corpora-ai/corpora/pkg/types"
)

func init() {
	register.RegisterFunc[*Provider](RegisterKey{}, func(provider *Provider) {
		provider.stores.ChunkStore = NewChunkStore(provider)
	})
}

type ChunkStore struct {
	CommonFields
}

func NewChunkStore(provider SqlProviderAchieve) *ChunkStore {
	store := &ChunkStore{}
	store.SetProvider(provider)
	store.SetTable(types.TABLE_CHUNK)
	store.SetAllColumns("id", "document_id", "version_id", "effective_key",
		"page_start", "page_end", "char_start", "char_end", "token_len", "text", "created_at")
	return store
}

func (s *ChunkStore) BatchCreate(ctx context.Context, datas []*types.Chunk) error {
	if len(datas) == 0 {
		return nil
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "document_id", "version_id", "effective_key",
			"page_start", "page_end", "char_start", "char_end", "token_len", "text", "created_at")
	for _, data := range datas {
		if data.CreatedAt == 0 {
			data.CreatedAt = time.Now().Unix()
		}
		query = query.Values(data.ID, data.DocumentID, data.VersionID, data.EffectiveKey,
			data.PageStart, data.PageEnd, data.CharStart, data.CharEnd, data.TokenLen, data.Text, data.CreatedAt)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ChunkStore) Total(ctx context.Context, opts types.GetChunkOptions) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable())
	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var res int64
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return 0, err
	}
	return res, nil
}

func (s *ChunkStore) DeleteByDocument(ctx context.Context, documentID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"document_id": documentID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ChunkStore) DeleteByEffectiveKey(ctx context.Context, effectiveKey string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"effective_key": effectiveKey})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
