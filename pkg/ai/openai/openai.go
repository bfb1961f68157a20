package openai

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"

	"github.com/corpora-ai/corpora/pkg/ai"
)

const (
	NAME = "openai"

	DefaultBatchMax   = 64
	DefaultDimensions = 1536
)

// Driver embeds texts through an OpenAI-compatible endpoint. It is stateless
// apart from the pooled HTTP client and safe for concurrent use.
type Driver struct {
	client     *openai.Client
	model      ai.ModelName
	dimensions int
	batchMax   int
}

func New(token, proxy string, model ai.ModelName, dimensions, batchMax int) *Driver {
	cfg := openai.DefaultConfig(token)
	if proxy != "" {
		cfg.BaseURL = proxy
	}

	if model.EmbeddingModel == "" {
		model.EmbeddingModel = string(openai.SmallEmbedding3)
	}
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	if batchMax <= 0 {
		batchMax = DefaultBatchMax
	}

	return &Driver{
		client:     openai.NewClientWithConfig(cfg),
		model:      model,
		dimensions: dimensions,
		batchMax:   batchMax,
	}
}

func (s *Driver) Dimensions() int {
	return s.dimensions
}

// embedding sends content in order-preserving sub-batches of at most
// batchMax inputs and concatenates the vectors back in global order. A
// failure in any sub-batch fails the whole call; partial results are never
// returned.
func (s *Driver) embedding(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	slog.Debug("Embedding", slog.String("driver", NAME), slog.Int("inputs", len(content)))

	r := ai.EmbeddingResult{
		Usage: &openai.Usage{},
	}
	if len(content) == 0 {
		return r, nil
	}

	queryReq := openai.EmbeddingRequest{
		Model:      openai.EmbeddingModel(s.model.EmbeddingModel),
		Dimensions: s.dimensions,
	}

	var result [][]float32
	for i, group := range lo.Chunk(content, s.batchMax) {
		queryReq.Input = group
		resp, err := s.client.CreateEmbeddings(ctx, queryReq)
		if err != nil {
			return r, ai.ClassifyError(err, i*s.batchMax)
		}
		for _, v := range resp.Data {
			result = append(result, v.Embedding)
		}

		r.Usage.CompletionTokens += resp.Usage.CompletionTokens
		r.Usage.PromptTokens += resp.Usage.PromptTokens
		r.Usage.TotalTokens += resp.Usage.TotalTokens
		r.Model = string(resp.Model)
	}

	r.Data = result
	return r, nil
}

func (s *Driver) EmbeddingForQuery(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	return s.embedding(ctx, content)
}

func (s *Driver) EmbeddingForDocument(ctx context.Context, title string, content []string) (ai.EmbeddingResult, error) {
	return s.embedding(ctx, content)
}
