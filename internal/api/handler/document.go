package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Moeabdelaziz007/amrikyyai/internal/api/response"
	"github.com/Moeabdelaziz007/amrikyyai/internal/engine"
)

// DocumentHandler handles document upload and listing. Uploaded files are
// kept on disk but never indexed; that is the real backend's job.
type DocumentHandler struct {
	engine    *engine.Engine
	uploadDir string
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(eng *engine.Engine, uploadDir string) *DocumentHandler {
	os.MkdirAll(uploadDir, 0o755)
	return &DocumentHandler{engine: eng, uploadDir: uploadDir}
}

// Upload handles POST /api/v1/documents/upload
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Limit upload to 50MB
	r.ParseMultipartForm(50 << 20)

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "no file uploaded")
		return
	}
	defer file.Close()

	// Unique name to avoid collisions
	destName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(header.Filename))
	destPath := filepath.Join(h.uploadDir, destName)

	dst, err := os.Create(destPath)
	if err != nil {
		response.InternalError(w, "failed to save file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		response.InternalError(w, "failed to save file")
		return
	}

	response.OK(w, h.engine.RecordUpload(header.Filename))
}

// List handles GET /api/v1/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.engine.Documents())
}
