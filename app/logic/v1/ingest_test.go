package v1

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpora-ai/corpora/pkg/chunker"
	"github.com/corpora-ai/corpora/pkg/extract"
)

func TestPageBreakOffsets(t *testing.T) {
	assert.Empty(t, pageBreakOffsets("no breaks here"))

	text := "page one\fpage two\fpage three"
	assert.Equal(t, []int{8, 17}, pageBreakOffsets(text))
}

func TestPageSpanSinglePage(t *testing.T) {
	start, end := pageSpan(nil, 0, 500)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)
}

func TestPageSpanAcrossBreaks(t *testing.T) {
	// breaks after page 1 (offset 10) and page 2 (offset 25)
	breaks := []int{10, 25}

	start, end := pageSpan(breaks, 0, 5)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)

	start, end = pageSpan(breaks, 12, 20)
	assert.Equal(t, 2, start)
	assert.Equal(t, 2, end)

	start, end = pageSpan(breaks, 5, 30)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	// window ending exactly at a break stays on the earlier page
	start, end = pageSpan(breaks, 5, 10)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)
}

func TestPageSpanMatchesChunkerOffsets(t *testing.T) {
	pages := []string{strings.Repeat("a", 700), strings.Repeat("b", 700)}
	full := chunker.Normalize(extract.Result{Pages: pages, PageCount: 2}.FullText())
	breaks := pageBreakOffsets(full)
	require.Len(t, breaks, 1)

	windows, err := chunker.Split(full, 1200, 120)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	start, end := pageSpan(breaks, windows[0].Start, windows[0].End)
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, end, "first window crosses the page break")

	start, end = pageSpan(breaks, windows[1].Start, windows[1].End)
	assert.Equal(t, 2, start)
	assert.Equal(t, 2, end)
}
