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
		provider.stores.TenantStore = NewTenantStore(provider)
	})
}

type TenantStore struct {
	CommonFields
}

func NewTenantStore(provider SqlProviderAchieve) *TenantStore {
	store := &TenantStore{}
	store.SetProvider(provider)
	store.SetTable(types.TABLE_TENANT)
	store.SetAllColumns("id", "name", "created_at")
	return store
}

func (s *TenantStore) Create(ctx context.Context, data types.Tenant) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	// concurrent first-contact requests race on the same tenant id
	query := sq.Insert(s.GetTable()).
		Columns("id", "name", "created_at").
		Values(data.ID, data.Name, data.CreatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING")

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *TenantStore) Get(ctx context.Context, id string) (*types.Tenant, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Tenant
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *TenantStore) List(ctx context.Context, page, pageSize uint64) ([]types.Tenant, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).OrderBy("created_at DESC")
	if limit, offset := types.Paginate(page, pageSize); limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Tenant
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *TenantStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}
