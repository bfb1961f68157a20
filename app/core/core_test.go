package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The logic layer receives the gin context as its context.Context, so
// deadlines set by the timeout middleware must be observable through it.
func TestHttpEngineExposesRequestDeadline(t *testing.T) {
	c := gin.CreateTestContextOnly(httptest.NewRecorder(), newHttpEngine())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	deadline, ok := c.Deadline()
	require.True(t, ok, "request deadline must be visible through the gin context")
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, time.Second)
	assert.NotNil(t, c.Done())
}

func TestHttpEngineExposesCancellation(t *testing.T) {
	c := gin.CreateTestContextOnly(httptest.NewRecorder(), newHttpEngine())

	ctx, cancel := context.WithCancel(context.Background())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	cancel()
	select {
	case <-c.Done():
	default:
		t.Fatal("cancellation of the request context must propagate")
	}
	assert.ErrorIs(t, c.Err(), context.Canceled)
}
