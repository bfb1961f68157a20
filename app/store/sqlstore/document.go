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
		provider.stores.DocumentStore = NewDocumentStore(provider)
	})
}

type DocumentStore struct {
	CommonFields
}

func NewDocumentStore(provider SqlProviderAchieve) *DocumentStore {
	store := &DocumentStore{}
	store.SetProvider(provider)
	store.SetTable(types.TABLE_DOCUMENT)
	store.SetAllColumns("id", "tenant_id", "playground_id", "filename", "mime", "file_hash",
		"page_count", "latest_version_id", "stage", "created_at", "updated_at")
	return store
}

func (s *DocumentStore) Create(ctx context.Context, data types.Document) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "tenant_id", "playground_id", "filename", "mime", "file_hash",
			"page_count", "latest_version_id", "stage", "created_at", "updated_at").
		Values(data.ID, data.TenantID, data.PlaygroundID, data.Filename, data.Mime, data.FileHash,
			data.PageCount, data.LatestVersionID, data.Stage, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentStore) Get(ctx context.Context, tenantID, id string) (*types.Document, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"tenant_id": tenantID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Document
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *DocumentStore) List(ctx context.Context, opts types.GetDocumentOptions, page, pageSize uint64) ([]types.Document, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC, id DESC")
	if limit, offset := types.Paginate(page, pageSize); limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Document
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *DocumentStore) Total(ctx context.Context, opts types.GetDocumentOptions) (int64, error) {
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

func (s *DocumentStore) FinishProcessing(ctx context.Context, tenantID, id, versionID string, pageCount int) error {
	query := sq.Update(s.GetTable()).
		Set("stage", types.DOCUMENT_STAGE_DONE).
		Set("latest_version_id", versionID).
		Set("page_count", pageCount).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"tenant_id": tenantID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentStore) UpdateStage(ctx context.Context, tenantID, id string, stage types.DocumentStage) error {
	query := sq.Update(s.GetTable()).
		Set("stage", stage).
		Set("updated_at", time.Now().Unix()).
		Where(sq.Eq{"tenant_id": tenantID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *DocumentStore) Delete(ctx context.Context, tenantID, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"tenant_id": tenantID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
