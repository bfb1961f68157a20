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
		provider.stores.PlaygroundStore = NewPlaygroundStore(provider)
	})
}

type PlaygroundStore struct {
	CommonFields
}

func NewPlaygroundStore(provider SqlProviderAchieve) *PlaygroundStore {
	store := &PlaygroundStore{}
	store.SetProvider(provider)
	store.SetTable(types.TABLE_PLAYGROUND)
	store.SetAllColumns("id", "tenant_id", "name", "description", "created_at")
	return store
}

func (s *PlaygroundStore) Create(ctx context.Context, data types.Playground) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "tenant_id", "name", "description", "created_at").
		Values(data.ID, data.TenantID, data.Name, data.Description, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *PlaygroundStore) Get(ctx context.Context, tenantID, id string) (*types.Playground, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"tenant_id": tenantID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Playground
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *PlaygroundStore) List(ctx context.Context, tenantID string, page, pageSize uint64) ([]types.Playground, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"tenant_id": tenantID}).OrderBy("created_at DESC, id DESC")
	if limit, offset := types.Paginate(page, pageSize); limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Playground
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *PlaygroundStore) Total(ctx context.Context, tenantID string) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable()).Where(sq.Eq{"tenant_id": tenantID})

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

func (s *PlaygroundStore) Delete(ctx context.Context, tenantID, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"tenant_id": tenantID, "id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
