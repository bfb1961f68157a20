package v1

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/corpora-ai/corpora/app/core"
	"github.com/corpora-ai/corpora/pkg/errors"
	"github.com/corpora-ai/corpora/pkg/i18n"
	"github.com/corpora-ai/corpora/pkg/scope"
	"github.com/corpora-ai/corpora/pkg/types"
	"github.com/corpora-ai/corpora/pkg/utils"
)

type PlaygroundLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewPlaygroundLogic(ctx context.Context, core *core.Core) *PlaygroundLogic {
	return &PlaygroundLogic{
		ctx:  ctx,
		core: core,
	}
}

type CreatePlaygroundArgs struct {
	ID          string
	Name        string
	Description string
}

func (l *PlaygroundLogic) CreatePlayground(tenantID string, args CreatePlaygroundArgs) (*types.Playground, error) {
	if err := scope.ValidateID(tenantID); err != nil {
		return nil, errors.New("PlaygroundLogic.CreatePlayground.ValidateID.tenant", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}
	if args.ID == "" {
		args.ID = utils.GenUniqIDStr()
	}
	if err := scope.ValidateID(args.ID); err != nil {
		return nil, errors.New("PlaygroundLogic.CreatePlayground.ValidateID.id", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}
	if args.Name == "" {
		return nil, errors.New("PlaygroundLogic.CreatePlayground.EmptyName", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	if err := ensureTenant(l.ctx, l.core, tenantID); err != nil {
		return nil, err
	}

	if _, err := l.core.Store().PlaygroundStore().Get(l.ctx, tenantID, args.ID); err == nil {
		return nil, errors.New("PlaygroundLogic.CreatePlayground.Exist", i18n.ERROR_EXIST, nil).Code(http.StatusConflict)
	} else if err != sql.ErrNoRows {
		return nil, errors.New("PlaygroundLogic.CreatePlayground.PlaygroundStore.Get", i18n.ERROR_STORAGE, err)
	}

	data := types.Playground{
		ID:          args.ID,
		TenantID:    tenantID,
		Name:        args.Name,
		Description: args.Description,
	}
	if err := l.core.Store().PlaygroundStore().Create(l.ctx, data); err != nil {
		return nil, errors.New("PlaygroundLogic.CreatePlayground.PlaygroundStore.Create", i18n.ERROR_STORAGE, err)
	}

	appendEvent(l.ctx, l.core, scope.EffectiveKey(tenantID, data.ID), types.EVENT_KIND_PLAYGROUND_CREATE, tenantID, map[string]any{
		"playground_id": data.ID,
		"name":          data.Name,
	})

	return &data, nil
}

func (l *PlaygroundLogic) GetPlayground(tenantID, id string) (*types.Playground, error) {
	data, err := l.core.Store().PlaygroundStore().Get(l.ctx, tenantID, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("PlaygroundLogic.GetPlayground.PlaygroundStore.Get", i18n.ERROR_STORAGE, err)
	}
	if data == nil {
		return nil, errors.New("PlaygroundLogic.GetPlayground.PlaygroundStore.Get.nil", i18n.ERROR_SCOPE_NOT_FOUND, err).Code(http.StatusNotFound)
	}
	return data, nil
}

type PlaygroundList struct {
	Total int64              `json:"total"`
	List  []types.Playground `json:"list"`
}

func (l *PlaygroundLogic) ListPlaygrounds(tenantID string, page, pageSize uint64) (*PlaygroundList, error) {
	if err := scope.ValidateID(tenantID); err != nil {
		return nil, errors.New("PlaygroundLogic.ListPlaygrounds.ValidateID", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}

	list, err := l.core.Store().PlaygroundStore().List(l.ctx, tenantID, page, pageSize)
	if err != nil {
		return nil, errors.New("PlaygroundLogic.ListPlaygrounds.PlaygroundStore.List", i18n.ERROR_STORAGE, err)
	}

	total, err := l.core.Store().PlaygroundStore().Total(l.ctx, tenantID)
	if err != nil {
		return nil, errors.New("PlaygroundLogic.ListPlaygrounds.PlaygroundStore.Total", i18n.ERROR_STORAGE, err)
	}

	return &PlaygroundList{Total: total, List: list}, nil
}

// DeletePlayground removes a playground and everything it owns: the
// playground's documents with their versions, chunks and vectors.
func (l *PlaygroundLogic) DeletePlayground(tenantID, id string) error {
	data, err := l.GetPlayground(tenantID, id)
	if err != nil {
		return err
	}

	docs, err := l.core.Store().DocumentStore().List(l.ctx, types.GetDocumentOptions{
		TenantID:     tenantID,
		PlaygroundID: data.ID,
	}, types.NO_PAGINATION, types.NO_PAGINATION)
	if err != nil {
		return errors.New("PlaygroundLogic.DeletePlayground.DocumentStore.List", i18n.ERROR_STORAGE, err)
	}

	effectiveKey := scope.EffectiveKey(tenantID, data.ID)
	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().VectorStore().DeleteByEffectiveKey(ctx, effectiveKey); err != nil {
			return err
		}
		if err := l.core.Store().ChunkStore().DeleteByEffectiveKey(ctx, effectiveKey); err != nil {
			return err
		}
		for _, doc := range docs {
			if err := l.core.Store().DocumentVersionStore().DeleteByDocument(ctx, doc.ID); err != nil {
				return err
			}
			if err := l.core.Store().DocumentStore().Delete(ctx, tenantID, doc.ID); err != nil {
				return err
			}
		}
		return l.core.Store().PlaygroundStore().Delete(ctx, tenantID, data.ID)
	})
	if err != nil {
		return errors.New("PlaygroundLogic.DeletePlayground.Transaction", i18n.ERROR_STORAGE, err)
	}

	appendEvent(l.ctx, l.core, effectiveKey, types.EVENT_KIND_PLAYGROUND_DELETE, tenantID, map[string]any{
		"playground_id": data.ID,
		"documents":     len(docs),
	})

	return nil
}
