// Package ai defines the embedding provider contract: ordered batch
// text-to-vector conversion plus the error taxonomy callers retry on.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

type ModelName struct {
	EmbeddingModel string `toml:"embedding_model"`
}

// EmbeddingResult carries one vector per input text, same order, fixed
// dimension per configured model.
type EmbeddingResult struct {
	Data  [][]float32
	Model string
	Usage *openai.Usage
}

type ProviderErrorKind int

const (
	// ProviderUnavailable covers transport failures, timeouts, 5xx and
	// rate-limit responses. Retryable.
	ProviderUnavailable ProviderErrorKind = iota
	// ProviderRejected covers inputs the provider refused (bad encoding,
	// too long). Not retryable; retrying the same input cannot succeed.
	ProviderRejected
)

func (k ProviderErrorKind) String() string {
	if k == ProviderRejected {
		return "rejected"
	}
	return "unavailable"
}

// ProviderError tags an embedding failure with its kind and, when the
// provider tells us, the index of the offending input within the original
// batch (-1 if unknown).
type ProviderError struct {
	Kind  ProviderErrorKind
	Index int
	cause error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider %s (input %d): %v", e.Kind, e.Index, e.cause)
}

func (e *ProviderError) Unwrap() error {
	return e.cause
}

func NewProviderError(kind ProviderErrorKind, index int, cause error) *ProviderError {
	return &ProviderError{Kind: kind, Index: index, cause: cause}
}

// ClassifyError maps a go-openai error onto the taxonomy. batchOffset is the
// global index of the first input in the failed sub-batch, used as the best
// available "offending index" for rejections.
func ClassifyError(err error, batchOffset int) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode >= 500 || apiErr.HTTPStatusCode == 429 {
			return NewProviderError(ProviderUnavailable, -1, err)
		}
		return NewProviderError(ProviderRejected, batchOffset, err)
	}

	// Transport errors, timeouts, connection resets: the provider never
	// classified the input, treat as unavailable.
	return NewProviderError(ProviderUnavailable, -1, err)
}

// AsProviderError unwraps err down to its provider classification.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsRetryable reports whether a failed call may succeed if repeated.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind == ProviderUnavailable
	}
	return false
}

const (
	retryAttempts = 3
	retryBaseWait = 500 * time.Millisecond
)

// WithRetry runs fn with bounded exponential backoff, retrying only
// retryable provider failures. Context cancellation wins over the schedule.
func WithRetry(ctx context.Context, fn func() error) error {
	var err error
	wait := retryBaseWait
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !IsRetryable(err) || attempt == retryAttempts-1 {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
	return err
}
