package v1

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpora-ai/corpora/app/core"
	"github.com/corpora-ai/corpora/app/core/srv"
	"github.com/corpora-ai/corpora/pkg/ai"
	"github.com/corpora-ai/corpora/pkg/errors"
	"github.com/corpora-ai/corpora/pkg/i18n"
	"github.com/corpora-ai/corpora/pkg/objectstorage"
	"github.com/corpora-ai/corpora/pkg/testutils"
	"github.com/corpora-ai/corpora/pkg/types"
	"github.com/corpora-ai/corpora/pkg/utils"
)

type stubEmbedder struct {
	dims  int
	err   error
	calls int
}

func (s *stubEmbedder) embed(n int) (ai.EmbeddingResult, error) {
	s.calls++
	if s.err != nil {
		return ai.EmbeddingResult{}, s.err
	}
	data := make([][]float32, n)
	for i := range data {
		data[i] = make([]float32, s.dims)
	}
	return ai.EmbeddingResult{Data: data}, nil
}

func (s *stubEmbedder) EmbeddingForQuery(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	return s.embed(len(content))
}

func (s *stubEmbedder) EmbeddingForDocument(ctx context.Context, title string, content []string) (ai.EmbeddingResult, error) {
	return s.embed(len(content))
}

func (s *stubEmbedder) Dimensions() int {
	return s.dims
}

func newTestCore(t *testing.T, driver srv.EmbeddingAI) *core.Core {
	_ = testutils.LoadEnv()
	dsn := os.Getenv("CORPORA_TEST_POSTGRESQL_DSN")
	if dsn == "" {
		t.Skip("CORPORA_TEST_POSTGRESQL_DSN not set")
	}

	app := core.MustSetupCore(core.CoreConfig{
		Postgres: core.PGConfig{DSN: dsn},
		ObjectStorage: core.ObjectStorageDriver{
			Driver:    objectstorage.DRIVER_LOCAL,
			LocalRoot: t.TempDir(),
		},
	})
	app.ApplySrvs(srv.ApplyAIDriver(driver))
	return app
}

func requireCustomized(t *testing.T, err error) *errors.CustomizedError {
	t.Helper()
	ce, ok := err.(*errors.CustomizedError)
	require.True(t, ok, "expected a customized error, got %T: %v", err, err)
	return ce
}

func TestQueryUnknownPlaygroundStopsBeforeSearch(t *testing.T) {
	stub := &stubEmbedder{dims: 1536}
	app := newTestCore(t, stub)
	ctx := context.Background()

	tenantID := "qtest-" + utils.RandomStr(12)
	require.NoError(t, app.Store().TenantStore().Create(ctx, types.Tenant{ID: tenantID, Name: tenantID}))
	t.Cleanup(func() {
		_ = app.Store().TenantStore().Delete(context.Background(), tenantID)
	})

	_, err := NewQueryLogic(ctx, app).Query(QueryArgs{
		TenantID:     tenantID,
		PlaygroundID: "never-created",
		Question:     "where are the reports",
	})
	require.Error(t, err)

	ce := requireCustomized(t, err)
	assert.Equal(t, http.StatusNotFound, ce.GetCode())
	assert.Equal(t, i18n.ERROR_SCOPE_NOT_FOUND, ce.Message())
	assert.Equal(t, 0, stub.calls, "an unknown playground must stop the request before embedding and search")
}

func TestIngestEmbeddingFailureMarksDocumentFailed(t *testing.T) {
	stub := &stubEmbedder{
		dims: 1536,
		err:  ai.NewProviderError(ai.ProviderRejected, 0, stderrors.New("input rejected")),
	}
	app := newTestCore(t, stub)
	ctx := context.Background()

	tenantID := "itest-" + utils.RandomStr(12)
	_, err := NewIngestLogic(ctx, app).Ingest(IngestArgs{
		TenantID: tenantID,
		Filename: "notes.txt",
		Mime:     "text/plain",
		Raw:      []byte("some text the provider will refuse"),
	})
	require.Error(t, err)

	ce := requireCustomized(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, ce.GetCode())
	assert.Equal(t, i18n.ERROR_PROVIDER_REJECTED, ce.Message())
	assert.Equal(t, 1, stub.calls, "a rejected input must not be retried")

	docs, err := app.Store().DocumentStore().List(ctx, types.GetDocumentOptions{TenantID: tenantID},
		types.NO_PAGINATION, types.NO_PAGINATION)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	doc := docs[0]

	t.Cleanup(func() {
		cleanCtx := context.Background()
		_ = app.Store().DocumentVersionStore().DeleteByDocument(cleanCtx, doc.ID)
		_ = app.Store().DocumentStore().Delete(cleanCtx, tenantID, doc.ID)
		_ = app.Store().TenantStore().Delete(cleanCtx, tenantID)
	})

	assert.Equal(t, types.DOCUMENT_STAGE_FAILED, doc.Stage)
	assert.Empty(t, doc.LatestVersionID, "a failed ingest must not publish a version pointer")

	// chunks and vectors land in the same transaction as the stage flip, so
	// zero chunks implies zero vectors
	total, err := app.Store().ChunkStore().Total(ctx, types.GetChunkOptions{DocumentID: doc.ID})
	require.NoError(t, err)
	assert.Zero(t, total, "no chunks may be persisted when embedding fails")
}
