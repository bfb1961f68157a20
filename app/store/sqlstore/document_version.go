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
		provider.stores.DocumentVersionStore = NewDocumentVersionStore(provider)
	})
}

type DocumentVersionStore struct {
	CommonFields
}

func NewDocumentVersionStore(provider SqlProviderAchieve) *DocumentVersionStore {
	store := &DocumentVersionStore{}
	store.SetProvider(provider)
	store.SetTable(types.TABLE_DOCUMENT_VERSION)
	store.SetAllColumns("id", "document_id", "tenant_id", "file_hash", "blob_key", "pages", "page_count", "created_at")
	return store
}

func (s *DocumentVersionStore) Create(ctx context.Context, data types.DocumentVersion) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "document_id", "tenant_id", "file_hash", "blob_key", "pages", "page_count", "created_at").
		Values(data.ID, data.DocumentID, data.TenantID, data.FileHash, data.BlobKey, data.Pages, data.PageCount, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentVersionStore) Get(ctx context.Context, id string) (*types.DocumentVersion, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.DocumentVersion
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *DocumentVersionStore) DeleteByDocument(ctx context.Context, documentID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"document_id": documentID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
