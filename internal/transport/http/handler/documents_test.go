package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentpilot/internal/ai"
	"contentpilot/internal/app"
	"contentpilot/internal/pkg/pdfextract"
	"contentpilot/internal/vectorstore"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(context.Context, ai.EmbeddingConfig, string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func newDocumentsRouter(store vectorstore.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ingestor := app.NewIngestor(store, stubEmbedder{}, ai.EmbeddingConfig{})
	h := NewDocumentsHandler(ingestor, pdfextract.Limits{MaxBytes: 200 << 20, MinBytes: 100})

	router := gin.New()
	router.POST("/documents", h.Upload)
	router.GET("/documents", h.List)
	router.DELETE("/documents", h.DeleteAll)
	router.DELETE("/documents/:name", h.Delete)
	return router
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadRejectsMissingFile(t *testing.T) {
	router := newDocumentsRouter(vectorstore.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/documents", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No file uploaded")
}

func TestUploadRejectsWrongMediaType(t *testing.T) {
	router := newDocumentsRouter(vectorstore.NewMemoryStore())

	body, contentType := multipartUpload(t, "notes.txt", "text/plain", bytes.Repeat([]byte("x"), 200))
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "File must be a PDF document")
}

func TestUploadRejectsUndersizedFile(t *testing.T) {
	router := newDocumentsRouter(vectorstore.NewMemoryStore())

	body, contentType := multipartUpload(t, "tiny.pdf", "application/pdf", []byte("tiny"))
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty or corrupted")
}

func TestUploadRejectsUnparseablePDF(t *testing.T) {
	router := newDocumentsRouter(vectorstore.NewMemoryStore())

	body, contentType := multipartUpload(t, "bad.pdf", "application/pdf", bytes.Repeat([]byte("z"), 200))
	req := httptest.NewRequest(http.MethodPost, "/documents", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error extracting content from PDF")
}

func TestListAndDeleteDocuments(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	ingestor := app.NewIngestor(store, stubEmbedder{}, ai.EmbeddingConfig{})
	require.True(t, ingestor.Ingest(context.Background(), "alpha document text", "Alpha.pdf"))
	require.True(t, ingestor.Ingest(context.Background(), "beta document text", "Beta.pdf"))
	router := newDocumentsRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var listResp struct {
		Data struct {
			Collections []string `json:"collections"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	assert.Equal(t, []string{"alpha", "beta"}, listResp.Data.Collections)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/documents/Alpha.pdf", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, names)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/documents", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	names, err = store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
