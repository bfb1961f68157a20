package sqlstore

import (
	"context"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/corpora-ai/corpora/pkg/types"
	"github.com/corpora-ai/corpora/pkg/utils"
)

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("CORPORA_TEST_POSTGRESQL_DSN")
}

func (m PGConfig) FormatDSN() string {
	return m.DSN
}

func randomVector(dims int) pgvector.Vector {
	v := make([]float32, dims)
	for i := range v {
		v[i] = rand.Float32()
	}
	return pgvector.NewVector(v)
}

func TestVectorSearchIsolation(t *testing.T) {
	cfg := PGConfig{}
	cfg.FromENV()
	if cfg.DSN == "" {
		t.Skip("CORPORA_TEST_POSTGRESQL_DSN not set")
	}

	utils.SetupIDWorker(1)
	provider := MustSetup(cfg)()
	if err := provider.Install(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()

	keyA := "test-tenant-a"
	keyB := "test-tenant-b"

	seed := func(key string) string {
		docID := utils.GenUniqIDStr()
		err := provider.DocumentStore().Create(ctx, types.Document{
			ID:       docID,
			TenantID: key,
			Filename: "seed.txt",
			FileHash: "hash-" + key,
			Stage:    types.DOCUMENT_STAGE_DONE,
		})
		if err != nil {
			t.Fatal(err)
		}

		var chunks []*types.Chunk
		var vectors []*types.ChunkVector
		for i := 0; i < 3; i++ {
			id := utils.GenUniqIDStr()
			chunks = append(chunks, &types.Chunk{
				ID:           id,
				DocumentID:   docID,
				VersionID:    "v-" + docID,
				EffectiveKey: key,
				Text:         "seed chunk",
			})
			vectors = append(vectors, &types.ChunkVector{
				ID:           id,
				DocumentID:   docID,
				EffectiveKey: key,
				Embedding:    randomVector(1536),
			})
		}
		if err = provider.ChunkStore().BatchCreate(ctx, chunks); err != nil {
			t.Fatal(err)
		}
		if err = provider.VectorStore().BatchUpsert(ctx, vectors); err != nil {
			t.Fatal(err)
		}
		return docID
	}

	docA := seed(keyA)
	docB := seed(keyB)

	t.Cleanup(func() {
		cleanCtx := context.Background()
		for _, key := range []string{keyA, keyB} {
			_ = provider.VectorStore().DeleteByEffectiveKey(cleanCtx, key)
			_ = provider.ChunkStore().DeleteByEffectiveKey(cleanCtx, key)
		}
		_ = provider.DocumentStore().Delete(cleanCtx, keyA, docA)
		_ = provider.DocumentStore().Delete(cleanCtx, keyB, docB)
	})

	res, err := provider.VectorStore().Search(ctx, keyA, randomVector(1536), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 {
		t.Fatalf("expected 3 results, got %d", len(res))
	}
	for i, r := range res {
		if r.DocumentID != docA {
			t.Fatalf("result crossed effective keys: %+v", r)
		}
		if i > 0 && r.Distance < res[i-1].Distance {
			t.Fatalf("results not ordered by distance: %v", res)
		}
	}
}
