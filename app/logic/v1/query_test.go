package v1

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStitchAnswerEmpty(t *testing.T) {
	assert.Equal(t, NoMatchesAnswer, stitchAnswer(nil))
	assert.Equal(t, NoMatchesAnswer, stitchAnswer([]Snippet{}))
}

func TestStitchAnswerHeadings(t *testing.T) {
	got := stitchAnswer([]Snippet{
		{Filename: "report.pdf", Page: 3, Preview: "first finding"},
		{Filename: "notes.txt", Page: 1, Preview: "second finding"},
	})

	want := "**report.pdf (p.3)**\n\nfirst finding\n\n**notes.txt (p.1)**\n\nsecond finding"
	assert.Equal(t, want, got)
}

func TestPreviewOf(t *testing.T) {
	short := "short text"
	assert.Equal(t, short, previewOf(short))

	long := strings.Repeat("a", PreviewLimit+100)
	got := previewOf(long)
	assert.Len(t, got, PreviewLimit)

	// limit counts runes, not bytes
	multibyte := strings.Repeat("界", PreviewLimit+1)
	assert.Equal(t, PreviewLimit, len([]rune(previewOf(multibyte))))
}
