package v1

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/pgvector/pgvector-go"

	"github.com/corpora-ai/corpora/app/core"
	"github.com/corpora-ai/corpora/pkg/ai"
	"github.com/corpora-ai/corpora/pkg/chunker"
	"github.com/corpora-ai/corpora/pkg/errors"
	"github.com/corpora-ai/corpora/pkg/extract"
	"github.com/corpora-ai/corpora/pkg/i18n"
	"github.com/corpora-ai/corpora/pkg/types"
	"github.com/corpora-ai/corpora/pkg/utils"
)

type IngestLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewIngestLogic(ctx context.Context, core *core.Core) *IngestLogic {
	return &IngestLogic{
		ctx:  ctx,
		core: core,
	}
}

type IngestArgs struct {
	TenantID     string
	PlaygroundID string
	Filename     string
	Mime         string
	Raw          []byte
}

type IngestResult struct {
	DocumentID   string `json:"document_id"`
	PlaygroundID string `json:"playground_id,omitempty"`
	Filename     string `json:"filename"`
	ChunkCount   int    `json:"chunk_count"`
	Mime         string `json:"mime"`
}

// Ingest runs the whole pipeline for one upload: extract, chunk, embed,
// persist. Chunks and vectors land in one transaction together with the
// stage flip, so a document is never searchable half-vectorized.
func (l *IngestLogic) Ingest(args IngestArgs) (*IngestResult, error) {
	if len(args.Raw) == 0 {
		return nil, errors.New("IngestLogic.Ingest.EmptyBody", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if args.Filename == "" {
		return nil, errors.New("IngestLogic.Ingest.EmptyFilename", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	effectiveKey, err := resolveEffectiveKey(l.ctx, l.core, args.TenantID, args.PlaygroundID)
	if err != nil {
		return nil, err
	}

	if err = ensureTenant(l.ctx, l.core, args.TenantID); err != nil {
		return nil, err
	}

	extracted, err := extract.Extract(args.Raw, args.Filename, args.Mime)
	if err != nil {
		if stderrors.Is(err, extract.ErrUnsupportedFormat) {
			return nil, errors.New("IngestLogic.Ingest.Extract.unsupported", i18n.ERROR_UNSUPPORTED_FILE, err).Code(http.StatusBadRequest)
		}
		return nil, errors.New("IngestLogic.Ingest.Extract", i18n.ERROR_EXTRACTION_FAILED, err).Code(http.StatusUnprocessableEntity)
	}

	fileHash := utils.SHA256(args.Raw)
	blobKey := types.BlobKey(args.TenantID, fileHash)
	if err = l.core.FileStorage().Upload(l.ctx, blobKey, args.Raw); err != nil {
		return nil, errors.New("IngestLogic.Ingest.FileStorage.Upload", i18n.ERROR_STORAGE, err)
	}

	// the content hash is informational; identical bytes still get a new
	// document id
	doc := types.Document{
		ID:           utils.GenUniqIDStr(),
		TenantID:     args.TenantID,
		PlaygroundID: args.PlaygroundID,
		Filename:     args.Filename,
		Mime:         args.Mime,
		FileHash:     fileHash,
		PageCount:    extracted.PageCount,
		Stage:        types.DOCUMENT_STAGE_PROCESSING,
	}
	if err = l.core.Store().DocumentStore().Create(l.ctx, doc); err != nil {
		return nil, errors.New("IngestLogic.Ingest.DocumentStore.Create", i18n.ERROR_STORAGE, err)
	}

	version := types.DocumentVersion{
		ID:         utils.GenUniqIDStr(),
		DocumentID: doc.ID,
		TenantID:   args.TenantID,
		FileHash:   fileHash,
		BlobKey:    blobKey,
		Pages:      extracted.Pages,
		PageCount:  extracted.PageCount,
	}
	if err = l.core.Store().DocumentVersionStore().Create(l.ctx, version); err != nil {
		l.markFailed(doc.TenantID, doc.ID)
		return nil, errors.New("IngestLogic.Ingest.DocumentVersionStore.Create", i18n.ERROR_STORAGE, err)
	}

	chunkCount, err := l.vectorize(doc, version, effectiveKey, false)
	if err != nil {
		l.markFailed(doc.TenantID, doc.ID)
		return nil, err
	}

	appendEvent(l.ctx, l.core, effectiveKey, types.EVENT_KIND_INGEST, args.TenantID, map[string]any{
		"document_id": doc.ID,
		"filename":    args.Filename,
		"chunk_count": chunkCount,
	})
	l.core.Metrics().IngestedChunksAdd(args.TenantID, chunkCount)

	return &IngestResult{
		DocumentID:   doc.ID,
		PlaygroundID: args.PlaygroundID,
		Filename:     args.Filename,
		ChunkCount:   chunkCount,
		Mime:         args.Mime,
	}, nil
}

// Rechunk rebuilds the chunk+vector set of a document from its stored
// version without re-uploading the raw bytes.
func (l *IngestLogic) Rechunk(tenantID, documentID string) (*IngestResult, error) {
	doc, err := NewDocumentLogic(l.ctx, l.core).GetDocument(tenantID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.LatestVersionID == "" {
		return nil, errors.New("IngestLogic.Rechunk.NoVersion", i18n.ERROR_NOT_FOUND, nil).Code(http.StatusNotFound)
	}

	version, err := l.core.Store().DocumentVersionStore().Get(l.ctx, doc.LatestVersionID)
	if err != nil {
		return nil, errors.New("IngestLogic.Rechunk.DocumentVersionStore.Get", i18n.ERROR_STORAGE, err)
	}

	effectiveKey, err := resolveEffectiveKey(l.ctx, l.core, doc.TenantID, doc.PlaygroundID)
	if err != nil {
		return nil, err
	}

	chunkCount, err := l.vectorize(*doc, *version, effectiveKey, true)
	if err != nil {
		l.markFailed(doc.TenantID, doc.ID)
		return nil, err
	}

	appendEvent(l.ctx, l.core, effectiveKey, types.EVENT_KIND_RECHUNK, tenantID, map[string]any{
		"document_id": doc.ID,
		"chunk_count": chunkCount,
	})

	return &IngestResult{
		DocumentID:   doc.ID,
		PlaygroundID: doc.PlaygroundID,
		Filename:     doc.Filename,
		ChunkCount:   chunkCount,
		Mime:         doc.Mime,
	}, nil
}

// vectorize chunks a version's text, embeds every window in order and
// persists the result atomically. With replace set, the document's previous
// chunk set is dropped in the same transaction.
func (l *IngestLogic) vectorize(doc types.Document, version types.DocumentVersion, effectiveKey string, replace bool) (int, error) {
	fullText := chunker.Normalize(extract.Result{Pages: version.Pages, PageCount: version.PageCount}.FullText())
	breaks := pageBreakOffsets(fullText)

	cfg := l.core.Cfg().Chunker
	windows, err := chunker.Split(fullText, cfg.MaxSizeOrDefault(), cfg.OverlapOrDefault())
	if err != nil {
		return 0, errors.New("IngestLogic.vectorize.Split", i18n.ERROR_INTERNAL, err)
	}
	if len(windows) == 0 {
		return 0, errors.New("IngestLogic.vectorize.EmptyText", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusUnprocessableEntity)
	}

	texts := make([]string, len(windows))
	for i, w := range windows {
		texts[i] = w.Text
	}

	timer := l.core.Metrics().EmbeddingRequestTimer("document")
	embedded, err := l.core.Srv().AI().EmbeddingForDocument(l.ctx, doc.Filename, texts)
	timer.ObserveDuration()
	if err != nil {
		return 0, l.classifyEmbeddingError("IngestLogic.vectorize", err)
	}
	if len(embedded.Data) != len(windows) {
		return 0, errors.New("IngestLogic.vectorize.VectorCount", i18n.ERROR_PROVIDER_REJECTED, nil)
	}

	dims := l.core.Srv().AI().Dimensions()
	for _, vec := range embedded.Data {
		if len(vec) != dims {
			return 0, errors.New("IngestLogic.vectorize.Dimensions", i18n.ERROR_DIMENSION_MISMATCH, nil)
		}
	}

	chunks := make([]*types.Chunk, 0, len(windows))
	vectors := make([]*types.ChunkVector, 0, len(windows))
	for i, w := range windows {
		pageStart, pageEnd := pageSpan(breaks, w.Start, w.End)
		id := utils.GenUniqIDStr()
		chunks = append(chunks, &types.Chunk{
			ID:           id,
			DocumentID:   doc.ID,
			VersionID:    version.ID,
			EffectiveKey: effectiveKey,
			PageStart:    pageStart,
			PageEnd:      pageEnd,
			CharStart:    w.Start,
			CharEnd:      w.End,
			TokenLen:     w.TokenLen,
			Text:         w.Text,
		})
		vectors = append(vectors, &types.ChunkVector{
			ID:           id,
			DocumentID:   doc.ID,
			EffectiveKey: effectiveKey,
			Embedding:    pgvector.NewVector(embedded.Data[i]),
		})
	}

	err = l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if replace {
			if err := l.core.Store().VectorStore().DeleteByDocument(ctx, doc.ID); err != nil {
				return err
			}
			if err := l.core.Store().ChunkStore().DeleteByDocument(ctx, doc.ID); err != nil {
				return err
			}
		}
		if err := l.core.Store().ChunkStore().BatchCreate(ctx, chunks); err != nil {
			return err
		}
		if err := l.core.Store().VectorStore().BatchUpsert(ctx, vectors); err != nil {
			return err
		}
		return l.core.Store().DocumentStore().FinishProcessing(ctx, doc.TenantID, doc.ID, version.ID, version.PageCount)
	})
	if err != nil {
		return 0, errors.New("IngestLogic.vectorize.Transaction", i18n.ERROR_STORAGE, err)
	}

	return len(chunks), nil
}

func (l *IngestLogic) classifyEmbeddingError(trace string, err error) error {
	if pe, ok := ai.AsProviderError(err); ok {
		l.core.Metrics().EmbeddingErrorInc(pe.Kind.String())
		if pe.Kind == ai.ProviderRejected {
			return errors.New(trace+".rejected", i18n.ERROR_PROVIDER_REJECTED, err).Code(http.StatusUnprocessableEntity)
		}
		return errors.New(trace+".unavailable", i18n.ERROR_PROVIDER_UNAVAILABLE, err).Code(http.StatusServiceUnavailable)
	}
	return errors.New(trace, i18n.ERROR_INTERNAL, err)
}

func (l *IngestLogic) markFailed(tenantID, documentID string) {
	// best effort, the request error stays the primary signal
	if err := l.core.Store().DocumentStore().UpdateStage(context.WithoutCancel(l.ctx), tenantID, documentID, types.DOCUMENT_STAGE_FAILED); err != nil {
		slog.Error("failed to mark document failed",
			slog.String("document_id", documentID), slog.Any("error", err))
	}
}

// pageBreakOffsets returns the rune offsets of every page break in text.
func pageBreakOffsets(text string) []int {
	var breaks []int
	for i, r := range []rune(text) {
		if r == extract.PageBreakRune {
			breaks = append(breaks, i)
		}
	}
	return breaks
}

// pageSpan maps a window's rune span back to 1-based page numbers using the
// break offsets. A document without breaks is a single page.
func pageSpan(breaks []int, start, end int) (int, int) {
	pageOf := func(pos int) int {
		page := 1
		for _, b := range breaks {
			if b < pos {
				page++
				continue
			}
			break
		}
		return page
	}

	last := end - 1
	if last < start {
		last = start
	}
	return pageOf(start), pageOf(last)
}
