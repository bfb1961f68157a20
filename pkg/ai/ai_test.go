package ai

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantKind ProviderErrorKind
	}{
		{"server error", &openai.APIError{HTTPStatusCode: 503}, ProviderUnavailable},
		{"rate limited", &openai.APIError{HTTPStatusCode: 429}, ProviderUnavailable},
		{"bad input", &openai.APIError{HTTPStatusCode: 400}, ProviderRejected},
		{"too long", &openai.APIError{HTTPStatusCode: 422}, ProviderRejected},
		{"transport", errors.New("connection refused"), ProviderUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ClassifyError(tc.err, 7)
			var pe *ProviderError
			assert.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.wantKind, pe.Kind)
			if tc.wantKind == ProviderRejected {
				assert.Equal(t, 7, pe.Index)
			}
		})
	}

	assert.NoError(t, ClassifyError(nil, 0))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewProviderError(ProviderUnavailable, -1, errors.New("down"))))
	assert.False(t, IsRetryable(NewProviderError(ProviderRejected, 2, errors.New("bad input"))))
	assert.False(t, IsRetryable(errors.New("plain error")))
}

func TestWithRetryStopsOnRejection(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return NewProviderError(ProviderRejected, 0, errors.New("bad input"))
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "rejected input must not be retried")
}

func TestWithRetryRecovers(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 2 {
			return NewProviderError(ProviderUnavailable, -1, errors.New("blip"))
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryBounded(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return NewProviderError(ProviderUnavailable, -1, errors.New("still down"))
	})
	assert.Error(t, err)
	assert.Equal(t, retryAttempts, calls)
}

func TestWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WithRetry(ctx, func() error {
		return NewProviderError(ProviderUnavailable, -1, errors.New("down"))
	})
	assert.ErrorIs(t, err, context.Canceled)
}
