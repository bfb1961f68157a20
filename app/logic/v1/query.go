package v1

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pgvector/pgvector-go"

	"github.com/corpora-ai/corpora/app/core"
	"github.com/corpora-ai/corpora/pkg/errors"
	"github.com/corpora-ai/corpora/pkg/i18n"
	"github.com/corpora-ai/corpora/pkg/types"
)

const (
	DefaultTopK = 10
	MaxTopK     = 50

	// PreviewLimit bounds snippet previews in the response; the full chunk
	// text stays in the store.
	PreviewLimit = 800

	// NoMatchesAnswer distinguishes "searched, found nothing" from an
	// answer that was never computed.
	NoMatchesAnswer = "_no matches_"
)

type QueryLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewQueryLogic(ctx context.Context, core *core.Core) *QueryLogic {
	return &QueryLogic{
		ctx:  ctx,
		core: core,
	}
}

type QueryArgs struct {
	TenantID     string
	PlaygroundID string
	Question     string
	TopK         uint64
}

type Snippet struct {
	ChunkID    string  `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	Page       int     `json:"page"`
	Preview    string  `json:"preview"`
	Distance   float32 `json:"distance"`
}

type QueryFilters struct {
	TenantID     string `json:"tenant_id"`
	PlaygroundID string `json:"playground_id,omitempty"`
	TopK         uint64 `json:"top_k"`
}

type QueryResult struct {
	AnswerMD string       `json:"answer_md"`
	Snippets []Snippet    `json:"snippets"`
	Filters  QueryFilters `json:"filters"`
}

// Query embeds the question and returns the nearest chunks within the
// effective key, plus a stitched markdown answer. Validation and scope
// resolution run before any provider or storage call.
func (l *QueryLogic) Query(args QueryArgs) (*QueryResult, error) {
	if strings.TrimSpace(args.Question) == "" {
		return nil, errors.New("QueryLogic.Query.EmptyQuestion", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if args.TopK == 0 {
		args.TopK = DefaultTopK
	}
	if args.TopK > MaxTopK {
		return nil, errors.New("QueryLogic.Query.TopKOutOfRange", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	effectiveKey, err := resolveEffectiveKey(l.ctx, l.core, args.TenantID, args.PlaygroundID)
	if err != nil {
		return nil, err
	}

	timer := l.core.Metrics().EmbeddingRequestTimer("query")
	embedded, err := l.core.Srv().AI().EmbeddingForQuery(l.ctx, []string{args.Question})
	timer.ObserveDuration()
	if err != nil {
		return nil, NewIngestLogic(l.ctx, l.core).classifyEmbeddingError("QueryLogic.Query.EmbeddingForQuery", err)
	}
	if len(embedded.Data) != 1 {
		return nil, errors.New("QueryLogic.Query.VectorCount", i18n.ERROR_PROVIDER_REJECTED, nil)
	}
	if len(embedded.Data[0]) != l.core.Srv().AI().Dimensions() {
		return nil, errors.New("QueryLogic.Query.Dimensions", i18n.ERROR_DIMENSION_MISMATCH, nil)
	}

	searchTimer := l.core.Metrics().SearchTimer()
	rows, err := l.core.Store().VectorStore().Search(l.ctx, effectiveKey, pgvector.NewVector(embedded.Data[0]), args.TopK)
	searchTimer.ObserveDuration()
	if err != nil {
		return nil, errors.New("QueryLogic.Query.VectorStore.Search", i18n.ERROR_STORAGE, err)
	}

	snippets := make([]Snippet, 0, len(rows))
	for _, row := range rows {
		snippets = append(snippets, Snippet{
			ChunkID:    row.ChunkID,
			DocumentID: row.DocumentID,
			Filename:   row.Filename,
			Page:       row.Page,
			Preview:    previewOf(row.Text),
			Distance:   row.Distance,
		})
	}

	appendEvent(l.ctx, l.core, effectiveKey, types.EVENT_KIND_QUERY, args.TenantID, map[string]any{
		"question": args.Question,
		"top_k":    args.TopK,
		"matches":  len(snippets),
	})

	return &QueryResult{
		AnswerMD: stitchAnswer(snippets),
		Snippets: snippets,
		Filters: QueryFilters{
			TenantID:     args.TenantID,
			PlaygroundID: args.PlaygroundID,
			TopK:         args.TopK,
		},
	}, nil
}

func previewOf(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLimit {
		return text
	}
	return string(runes[:PreviewLimit])
}

// stitchAnswer concatenates snippet previews under per-snippet headings.
// Deliberately non-generative.
func stitchAnswer(snippets []Snippet) string {
	if len(snippets) == 0 {
		return NoMatchesAnswer
	}

	parts := make([]string, 0, len(snippets))
	for _, s := range snippets {
		parts = append(parts, fmt.Sprintf("**%s (p.%d)**\n\n%s", s.Filename, s.Page, s.Preview))
	}
	return strings.Join(parts, "\n\n")
}
