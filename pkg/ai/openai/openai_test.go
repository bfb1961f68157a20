package openai_test

import (
	"context"
	"os"
	"testing"

	"github.com/corpora-ai/corpora/pkg/ai"
	"github.com/corpora-ai/corpora/pkg/ai/openai"
	"github.com/corpora-ai/corpora/pkg/testutils"
)

func newDriver(t *testing.T, batchMax int) *openai.Driver {
	testutils.LoadEnv()
	token := os.Getenv("CORPORA_TEST_OPENAI_TOKEN")
	if token == "" {
		t.Skip("CORPORA_TEST_OPENAI_TOKEN not set")
	}
	return openai.New(
		token,
		os.Getenv("CORPORA_TEST_OPENAI_ENDPOINT"),
		ai.ModelName{EmbeddingModel: os.Getenv("CORPORA_TEST_OPENAI_EMBEDDING_MODEL")},
		0,
		batchMax,
	)
}

func TestEmbeddingOrderAcrossSubBatches(t *testing.T) {
	// batchMax 2 forces three sub-batches for five inputs
	driver := newDriver(t, 2)

	inputs := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	res, err := driver.EmbeddingForDocument(context.Background(), "order", inputs)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Data) != len(inputs) {
		t.Fatalf("expected %d vectors, got %d", len(inputs), len(res.Data))
	}

	// same text embedded alone must land at the matching index
	single, err := driver.EmbeddingForQuery(context.Background(), []string{"gamma"})
	if err != nil {
		t.Fatal(err)
	}
	if len(single.Data) != 1 {
		t.Fatalf("expected 1 vector, got %d", len(single.Data))
	}

	batched := res.Data[2]
	alone := single.Data[0]
	if len(batched) != len(alone) {
		t.Fatalf("dimension mismatch: %d vs %d", len(batched), len(alone))
	}
	var diff float64
	for i := range batched {
		d := float64(batched[i] - alone[i])
		diff += d * d
	}
	if diff > 1e-3 {
		t.Fatalf("vector for sub-batched input diverged from standalone embedding: %f", diff)
	}
}
