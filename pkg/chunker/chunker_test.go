package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyInput(t *testing.T) {
	for _, input := range []string{"", "  \n ", "\r\n\t  "} {
		windows, err := Split(input, 1200, 120)
		require.NoError(t, err)
		assert.Empty(t, windows, "input %q should produce no windows", input)
	}
}

func TestSplitRejectsBadConfig(t *testing.T) {
	_, err := Split("hello", 0, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Split("hello", 100, 100)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Split("hello", 100, 200)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Split("hello", 100, -1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSplitSingleWindow(t *testing.T) {
	text := strings.Repeat("a", 1200)
	windows, err := Split(text, 1200, 120)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, text, windows[0].Text)
	assert.Equal(t, 0, windows[0].Start)
	assert.Equal(t, 1200, windows[0].End)
}

func TestSplitOverlappingWindows(t *testing.T) {
	text := strings.Repeat("x", 2500)
	windows, err := Split(text, 1200, 120)
	require.NoError(t, err)
	require.Len(t, windows, 3)

	assert.Equal(t, 0, windows[0].Start)
	assert.Equal(t, 1200, windows[0].End)
	assert.Equal(t, 1080, windows[1].Start)
	assert.Equal(t, 2280, windows[1].End)
	assert.Equal(t, 2160, windows[2].Start)
	assert.Equal(t, 2500, windows[2].End)
}

func TestSplitCoversEveryPosition(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		maxSize  int
		overlap  int
	}{
		{"shorter than overlap", "ab", 10, 5},
		{"exactly divisible by stride", strings.Repeat("q", 30), 10, 0},
		{"single character", "z", 8, 2},
		{"prose with newlines", "first line\nsecond line\nthird line\n", 12, 4},
		{"multibyte runes", strings.Repeat("日本語テキスト", 40), 50, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			windows, err := Split(tc.text, tc.maxSize, tc.overlap)
			require.NoError(t, err)

			normalized := []rune(Normalize(tc.text))
			require.NotEmpty(t, windows)

			covered := make([]bool, len(normalized))
			prevStart := -1
			for _, w := range windows {
				assert.Greater(t, w.Start, prevStart, "windows must advance left to right")
				prevStart = w.Start
				assert.Equal(t, string(normalized[w.Start:w.End]), w.Text)
				for i := w.Start; i < w.End; i++ {
					covered[i] = true
				}
			}
			for i, ok := range covered {
				assert.True(t, ok, "position %d not covered", i)
			}
			assert.Equal(t, len(normalized), windows[len(windows)-1].End)
		})
	}
}

// Reassembling the windows without their overlap regions must reproduce the
// normalized input exactly.
func TestSplitLossless(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 120)
	const maxSize, overlap = 700, 90

	windows, err := Split(text, maxSize, overlap)
	require.NoError(t, err)

	var sb strings.Builder
	prevEnd := 0
	for _, w := range windows {
		runes := []rune(w.Text)
		skip := prevEnd - w.Start
		sb.WriteString(string(runes[skip:]))
		prevEnd = w.End
	}
	assert.Equal(t, Normalize(text), sb.String())
}

func TestSplitTerminates(t *testing.T) {
	// A generous grid of valid configurations; each must produce a finite
	// window count bounded by the text length.
	text := strings.Repeat("abcdefgh", 64)
	for maxSize := 1; maxSize <= 64; maxSize += 7 {
		for overlap := 0; overlap < maxSize; overlap += 3 {
			windows, err := Split(text, maxSize, overlap)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(windows), len(text))
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := "  line one\r\nline two\r\n  "
	once := Normalize(raw)
	assert.Equal(t, once, Normalize(once))
	assert.Equal(t, "line one\nline two", once)
}

func TestTokenLenPositive(t *testing.T) {
	assert.Greater(t, TokenLen("hello world, this is a sentence"), 0)
}
