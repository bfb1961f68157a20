// Package chunker splits normalized document text into overlapping windows,
// the unit of embedding and retrieval. Splitting is deterministic: the same
// input always yields the same windows in the same left-to-right order, and
// downstream page/char-span bookkeeping depends on that order.
package chunker

import (
	"errors"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const (
	DefaultMaxSize = 1200
	DefaultOverlap = 120

	tokenEncoding = "cl100k_base"
)

// ErrInvalidConfig reports a window configuration that cannot terminate.
var ErrInvalidConfig = errors.New("chunker: overlap must be smaller than max size and max size positive")

// Window is one chunk of text together with its rune span over the
// normalized input.
type Window struct {
	Text     string
	Start    int
	End      int
	TokenLen int
}

var (
	encOnce sync.Once
	enc     *tiktoken.Tiktoken
)

// TokenLen estimates the token count of s. When the tiktoken encoding is not
// available (offline build without the embedded BPE), it falls back to the
// rough 4-chars-per-token heuristic.
func TokenLen(s string) int {
	encOnce.Do(func() {
		e, err := tiktoken.GetEncoding(tokenEncoding)
		if err == nil {
			enc = e
		}
	})
	if enc == nil {
		return (len(s) + 3) / 4
	}
	return len(enc.Encode(s, nil, nil))
}

// Normalize converts CRLF to LF and trims surrounding whitespace. It is
// idempotent, so callers may normalize up-front to compute offsets and the
// spans reported by Split still line up.
func Normalize(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
}

// Split produces the overlapping windows of text. Window i starts at
// max(0, end_{i-1}-overlap) and ends at min(start_i+maxSize, len); iteration
// stops once a window reaches the end of the text, so every rune is covered
// by at least one window and no text is silently dropped.
//
// Empty or whitespace-only input yields an empty slice. overlap >= maxSize
// would never terminate and is rejected as a configuration error.
func Split(text string, maxSize, overlap int) ([]Window, error) {
	if maxSize <= 0 || overlap < 0 || overlap >= maxSize {
		return nil, ErrInvalidConfig
	}

	runes := []rune(Normalize(text))
	n := len(runes)
	if n == 0 {
		return nil, nil
	}

	if n <= maxSize {
		body := string(runes)
		return []Window{{Text: body, Start: 0, End: n, TokenLen: TokenLen(body)}}, nil
	}

	var windows []Window
	start := 0
	for start < n {
		end := start + maxSize
		if end > n {
			end = n
		}
		body := string(runes[start:end])
		windows = append(windows, Window{Text: body, Start: start, End: end, TokenLen: TokenLen(body)})
		if end == n {
			break
		}
		start = end - overlap
		if start < 0 {
			start = 0
		}
	}
	return windows, nil
}
