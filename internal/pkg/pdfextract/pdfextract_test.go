package pdfextract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLimits = Limits{MaxBytes: 200 << 20, MinBytes: 100}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		fileName  string
		mediaType string
		size      int64
		wantOK    bool
		wantMsg   string
	}{
		{"valid", "report.pdf", "application/pdf", 1 << 20, true, ""},
		{"no file", "", "application/pdf", 1 << 20, false, "No file uploaded"},
		{"wrong type", "report.txt", "text/plain", 1 << 20, false, `File must be a PDF document, got "text/plain"`},
		{"too large", "big.pdf", "application/pdf", 210 << 20, false, "File size (210.0 MB) exceeds 200MB limit"},
		{"too small", "tiny.pdf", "application/pdf", 50, false, "File appears to be empty or corrupted"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, msg := Validate(tc.fileName, tc.mediaType, tc.size, testLimits)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantMsg, msg)
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, SentinelNoText, CleanText(""))
	assert.Equal(t, SentinelNoMeaningfulText, CleanText("   \n\n  "))
	assert.Equal(t, SentinelNoMeaningfulText, CleanText("short"))

	got := CleanText("First   line\t here.\n\n\nSecond    line.")
	assert.Equal(t, "First line here.\nSecond line.", got)
}

func TestIsSentinel(t *testing.T) {
	assert.True(t, IsSentinel(SentinelNoText))
	assert.True(t, IsSentinel(SentinelNoMeaningfulText))
	assert.True(t, IsSentinel("Error extracting content from PDF: broken xref table"))
	assert.False(t, IsSentinel("An ordinary document about PDFs."))
	assert.False(t, IsSentinel(""))
}

func TestExtractCorruptFile(t *testing.T) {
	doc := Extract(strings.NewReader("not a pdf at all"), "bad.pdf", "application/pdf", 16)

	require.True(t, IsSentinel(doc.Content))
	assert.True(t, strings.HasPrefix(doc.Content, "Error extracting content from PDF: "))
	assert.Equal(t, "bad.pdf", doc.Name)
	assert.Equal(t, int64(16), doc.Size)
}
