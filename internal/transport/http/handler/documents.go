package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contentpilot/internal/app"
	"contentpilot/internal/collection"
	"contentpilot/internal/pkg/pdfextract"
	"contentpilot/internal/transport/http/response"
)

type DocumentsHandler struct {
	ingestor *app.Ingestor
	limits   pdfextract.Limits
}

func NewDocumentsHandler(ingestor *app.Ingestor, limits pdfextract.Limits) *DocumentsHandler {
	return &DocumentsHandler{ingestor: ingestor, limits: limits}
}

// Upload accepts a multipart form with "file" (PDF), extracts the text
// and indexes it under the sanitized collection name.
func (h *DocumentsHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeUploadRejected, "No file uploaded")
		return
	}

	mediaType := file.Header.Get("Content-Type")
	if ok, reason := pdfextract.Validate(file.Filename, mediaType, file.Size, h.limits); !ok {
		response.Error(c, http.StatusBadRequest, response.CodeUploadRejected, reason)
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "read uploaded file failed")
		return
	}
	defer f.Close()

	doc := pdfextract.Extract(f, file.Filename, mediaType, file.Size)
	if pdfextract.IsSentinel(doc.Content) {
		response.Error(c, http.StatusBadRequest, response.CodeUploadRejected, doc.Content)
		return
	}

	if !h.ingestor.Ingest(c.Request.Context(), doc.Content, file.Filename) {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "index document failed")
		return
	}

	response.OK(c, gin.H{
		"name":       file.Filename,
		"collection": collection.Sanitize(file.Filename),
		"size":       doc.Size,
		"pages":      doc.Pages,
	})
}

func (h *DocumentsHandler) List(c *gin.Context) {
	collections, err := h.ingestor.Collections(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}
	response.OK(c, gin.H{"collections": collections})
}

func (h *DocumentsHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid document name")
		return
	}
	if err := h.ingestor.Drop(c.Request.Context(), name); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete document failed")
		return
	}
	response.OK(c, gin.H{"deleted_document": name})
}

func (h *DocumentsHandler) DeleteAll(c *gin.Context) {
	if err := h.ingestor.DropAll(c.Request.Context()); err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete documents failed")
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
