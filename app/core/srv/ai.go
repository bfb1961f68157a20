package srv

import (
	"context"
	"os"
	"strconv"

	"github.com/corpora-ai/corpora/pkg/ai"
	"github.com/corpora-ai/corpora/pkg/ai/openai"
)

type EmbeddingAI interface {
	EmbeddingForQuery(ctx context.Context, content []string) (ai.EmbeddingResult, error)
	EmbeddingForDocument(ctx context.Context, title string, content []string) (ai.EmbeddingResult, error)
	Dimensions() int
}

type AIConfig struct {
	Token          string `toml:"token"`
	Endpoint       string `toml:"endpoint"`
	EmbeddingModel string `toml:"embedding_model"`
	Dimensions     int    `toml:"dimensions"`
	MaxBatch       int    `toml:"max_batch"`
}

func (c *AIConfig) FromENV() {
	c.Token = os.Getenv("CORPORA_API_AI_TOKEN")
	c.Endpoint = os.Getenv("CORPORA_API_AI_ENDPOINT")
	c.EmbeddingModel = os.Getenv("CORPORA_API_AI_EMBEDDING_MODEL")
	if v := os.Getenv("CORPORA_API_AI_DIMENSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Dimensions = n
		}
	}
}

// AI wraps the configured embedding driver with the retry policy. Handlers
// only ever see this wrapper.
type AI struct {
	driver EmbeddingAI
}

func ApplyAI(cfg AIConfig) ApplyFunc {
	return func(s *Srv) {
		s.ai = &AI{
			driver: openai.New(cfg.Token, cfg.Endpoint, ai.ModelName{EmbeddingModel: cfg.EmbeddingModel}, cfg.Dimensions, cfg.MaxBatch),
		}
	}
}

// ApplyAIDriver injects a prebuilt driver, used by tests.
func ApplyAIDriver(driver EmbeddingAI) ApplyFunc {
	return func(s *Srv) {
		s.ai = &AI{driver: driver}
	}
}

func (a *AI) Dimensions() int {
	return a.driver.Dimensions()
}

func (a *AI) EmbeddingForQuery(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	var res ai.EmbeddingResult
	err := ai.WithRetry(ctx, func() error {
		var err error
		res, err = a.driver.EmbeddingForQuery(ctx, content)
		return err
	})
	return res, err
}

func (a *AI) EmbeddingForDocument(ctx context.Context, title string, content []string) (ai.EmbeddingResult, error) {
	var res ai.EmbeddingResult
	err := ai.WithRetry(ctx, func() error {
		var err error
		res, err = a.driver.EmbeddingForDocument(ctx, title, content)
		return err
	})
	return res, err
}
