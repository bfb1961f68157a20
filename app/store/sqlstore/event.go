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
		provider.stores.EventStore = NewEventStore(provider)
	})
}

type EventStore struct {
	CommonFields
}

func NewEventStore(provider SqlProviderAchieve) *EventStore {
	store := &EventStore{}
	store.SetProvider(provider)
	store.SetTable(types.TABLE_EVENT)
	store.SetAllColumns("id", "effective_key", "kind", "actor", "payload", "created_at")
	return store
}

func (s *EventStore) Create(ctx context.Context, data types.Event) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if len(data.Payload) == 0 {
		data.Payload = []byte("{}")
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "effective_key", "kind", "actor", "payload", "created_at").
		Values(data.ID, data.EffectiveKey, data.Kind, data.Actor, data.Payload, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *EventStore) List(ctx context.Context, effectiveKey string, page, pageSize uint64) ([]types.Event, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"effective_key": effectiveKey}).OrderBy("created_at DESC, id DESC")
	if limit, offset := types.Paginate(page, pageSize); limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Event
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
