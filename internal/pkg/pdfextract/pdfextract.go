package pdfextract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Sentinel contents returned in Document.Content instead of real text.
// Ingestion treats any of these as an extraction failure.
const (
	SentinelNoText           = "No text content found in PDF"
	SentinelNoMeaningfulText = "No meaningful text content found in PDF"
	sentinelErrorPrefix      = "Error extracting content from PDF: "
)

// Document is the result of extracting one uploaded PDF.
type Document struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Size    int64  `json:"size"`
	Pages   int    `json:"pages"`
	Type    string `json:"type"`
}

// IsSentinel reports whether content is an extraction-failure marker
// rather than real document text.
func IsSentinel(content string) bool {
	return content == SentinelNoText ||
		content == SentinelNoMeaningfulText ||
		strings.HasPrefix(content, sentinelErrorPrefix)
}

// Extract reads the PDF bytes from r and returns the cleaned plain text
// together with the declared metadata. It never returns an error:
// extraction failures are reported through the sentinel content, so a
// single bad file degrades instead of aborting the request.
func Extract(r io.Reader, name, mediaType string, size int64) Document {
	doc := Document{Name: name, Size: size, Type: mediaType}

	b, err := io.ReadAll(r)
	if err != nil {
		doc.Content = sentinelErrorPrefix + err.Error()
		return doc
	}
	pdfReader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		doc.Content = sentinelErrorPrefix + err.Error()
		return doc
	}
	doc.Pages = pdfReader.NumPage()

	plainReader, err := pdfReader.GetPlainText()
	if err != nil {
		doc.Content = sentinelErrorPrefix + err.Error()
		return doc
	}
	out, err := io.ReadAll(plainReader)
	if err != nil {
		doc.Content = sentinelErrorPrefix + err.Error()
		return doc
	}

	doc.Content = CleanText(string(out))
	return doc
}

var (
	whitespaceRun = regexp.MustCompile(`[ \t\r\f]+`)
	newlineRun    = regexp.MustCompile(`\n+`)
)

// CleanText normalizes extracted text: collapses whitespace runs and
// excessive line breaks, and substitutes a sentinel when nothing usable
// remains (empty, or under 10 chars after cleanup).
func CleanText(text string) string {
	if text == "" {
		return SentinelNoText
	}
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n")
	text = strings.TrimSpace(text)
	if len(text) < 10 {
		return SentinelNoMeaningfulText
	}
	return text
}

// Limits bound acceptable upload sizes in bytes.
type Limits struct {
	MaxBytes int64
	MinBytes int64
}

// Validate checks an upload's declared media type and size before any
// bytes are processed. The returned reason is user-facing.
func Validate(name, mediaType string, size int64, limits Limits) (bool, string) {
	if name == "" {
		return false, "No file uploaded"
	}
	if mediaType != "application/pdf" {
		return false, fmt.Sprintf("File must be a PDF document, got %q", mediaType)
	}
	if limits.MaxBytes > 0 && size > limits.MaxBytes {
		return false, fmt.Sprintf("File size (%.1f MB) exceeds %dMB limit",
			float64(size)/(1024*1024), limits.MaxBytes>>20)
	}
	if limits.MinBytes > 0 && size < limits.MinBytes {
		return false, "File appears to be empty or corrupted"
	}
	return true, ""
}
