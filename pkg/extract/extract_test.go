package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	res, err := Extract([]byte("hello world"), "notes.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, 1, res.PageCount)
	assert.Equal(t, []string{"hello world"}, res.Pages)
	assert.Equal(t, "hello world", res.FullText())
}

func TestExtractDispatchesOnExtension(t *testing.T) {
	// No usable mime type; the extension decides.
	res, err := Extract([]byte("# heading"), "README.md", "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, []string{"# heading"}, res.Pages)

	res, err = Extract([]byte(`{"a":1}`), "data.json", "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.PageCount)
}

func TestExtractUnsupported(t *testing.T) {
	_, err := Extract([]byte{0x50, 0x4b}, "slides.pptx", "application/vnd.ms-powerpoint")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractInvalidUTF8Salvaged(t *testing.T) {
	res, err := Extract([]byte{'a', 0xff, 'b'}, "broken.txt", "text/plain")
	require.NoError(t, err)
	assert.Contains(t, res.Pages[0], "a")
	assert.Contains(t, res.Pages[0], "b")
}

func TestExtractCorruptPDF(t *testing.T) {
	_, err := Extract([]byte("definitely not a pdf"), "doc.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestFullTextKeepsPageBreaks(t *testing.T) {
	res := Result{Pages: []string{"page one", "page two"}, PageCount: 2}
	assert.Equal(t, "page one\fpage two", res.FullText())
}
