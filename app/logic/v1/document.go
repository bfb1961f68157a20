package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/corpora-ai/corpora/app/core"
	"github.com/corpora-ai/corpora/pkg/errors"
	"github.com/corpora-ai/corpora/pkg/i18n"
	"github.com/corpora-ai/corpora/pkg/scope"
	"github.com/corpora-ai/corpora/pkg/types"
)

type DocumentLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewDocumentLogic(ctx context.Context, core *core.Core) *DocumentLogic {
	return &DocumentLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *DocumentLogic) GetDocument(tenantID, id string) (*types.Document, error) {
	if err := scope.ValidateID(tenantID); err != nil {
		return nil, errors.New("DocumentLogic.GetDocument.ValidateID", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}

	data, err := l.core.Store().DocumentStore().Get(l.ctx, tenantID, id)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.New("DocumentLogic.GetDocument.DocumentStore.Get", i18n.ERROR_STORAGE, err)
	}
	if data == nil {
		return nil, errors.New("DocumentLogic.GetDocument.DocumentStore.Get.nil", i18n.ERROR_NOT_FOUND, err).Code(http.StatusNotFound)
	}
	return data, nil
}

type DocumentList struct {
	Total int64            `json:"total"`
	List  []types.Document `json:"list"`
}

func (l *DocumentLogic) ListDocuments(tenantID, playgroundID string, page, pageSize uint64) (*DocumentList, error) {
	// playground existence is validated through the scope resolver even
	// though listing filters on the relational column
	if _, err := resolveEffectiveKey(l.ctx, l.core, tenantID, playgroundID); err != nil {
		return nil, err
	}

	opts := types.GetDocumentOptions{
		TenantID:     tenantID,
		PlaygroundID: playgroundID,
	}

	list, err := l.core.Store().DocumentStore().List(l.ctx, opts, page, pageSize)
	if err != nil {
		return nil, errors.New("DocumentLogic.ListDocuments.DocumentStore.List", i18n.ERROR_STORAGE, err)
	}

	total, err := l.core.Store().DocumentStore().Total(l.ctx, opts)
	if err != nil {
		return nil, errors.New("DocumentLogic.ListDocuments.DocumentStore.Total", i18n.ERROR_STORAGE, err)
	}

	return &DocumentList{Total: total, List: list}, nil
}

// DeleteDocument removes a document with its versions, chunks and vectors
// in one transaction, then drops the blob best effort.
func (l *DocumentLogic) DeleteDocument(tenantID, id string) error {
	doc, err := l.GetDocument(tenantID, id)
	if err != nil {
		return err
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().VectorStore().DeleteByDocument(ctx, doc.ID); err != nil {
			return err
		}
		if err := l.core.Store().ChunkStore().DeleteByDocument(ctx, doc.ID); err != nil {
			return err
		}
		if err := l.core.Store().DocumentVersionStore().DeleteByDocument(ctx, doc.ID); err != nil {
			return err
		}
		return l.core.Store().DocumentStore().Delete(ctx, tenantID, doc.ID)
	})
	if err != nil {
		return errors.New("DocumentLogic.DeleteDocument.Transaction", i18n.ERROR_STORAGE, err)
	}

	// other documents may share the blob when the same bytes were ingested
	// twice, so a stale object is preferable to a broken reference
	remaining, err := l.core.Store().DocumentStore().Total(l.ctx, types.GetDocumentOptions{
		TenantID: tenantID,
		FileHash: doc.FileHash,
	})
	if err == nil && remaining == 0 {
		if err = l.core.FileStorage().Delete(l.ctx, types.BlobKey(tenantID, doc.FileHash)); err != nil {
			slog.Error("failed to delete blob", slog.String("document_id", doc.ID), slog.Any("error", err))
		}
	}

	effectiveKey := scope.EffectiveKey(tenantID, doc.PlaygroundID)
	appendEvent(l.ctx, l.core, effectiveKey, types.EVENT_KIND_DOCUMENT_DELETE, tenantID, map[string]any{
		"document_id": doc.ID,
		"filename":    doc.Filename,
	})

	return nil
}
