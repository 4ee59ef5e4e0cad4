package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"projecthub/internal/config"
	"projecthub/internal/domain/services"
	"projecthub/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService services.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// UploadDocument accepts one multipart file upload for a project
// POST /api/documents/{projectId}
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "projectId")
	if !ok {
		return
	}

	// Cap the whole request body; the multipart overhead rides on top
	// of the file size limit.
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "A file field named 'file' is required")
		return
	}
	defer file.Close()

	req := &services.UploadDocumentRequest{
		FileName:    header.Filename,
		ContentType: partContentType(header.Header.Get("Content-Type")),
		Size:        header.Size,
		Description: r.FormValue("description"),
		Reader:      file,
	}

	doc, err := h.docService.Upload(r.Context(), p, projectID, req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondDataMessage(w, http.StatusCreated, "Document uploaded successfully", doc)
}

// ListDocuments retrieves a project's documents
// GET /api/documents/{projectId}
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "projectId")
	if !ok {
		return
	}

	docs, err := h.docService.ListByProject(r.Context(), p, projectID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondList(w, http.StatusOK, docs, len(docs))
}

// GetDocument retrieves a document's metadata
// GET /api/documents/info/{documentId}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "documentId")
	if !ok {
		return
	}

	doc, err := h.docService.Get(r.Context(), p, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, doc)
}

// DownloadDocument streams a document's file bytes
// GET /api/documents/download/{documentId}
func (h *DocumentHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "documentId")
	if !ok {
		return
	}

	doc, reader, err := h.docService.Download(r.Context(), p, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", doc.FileType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", doc.FileSize))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))

	if _, err := io.Copy(w, reader); err != nil {
		// Headers are gone; all we can do is log the broken stream.
		h.logger.Error("download stream interrupted", "document_id", doc.ID, "error", err)
	}
}

// DeleteDocument removes a document and its stored file
// DELETE /api/documents/{documentId}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "documentId")
	if !ok {
		return
	}

	if err := h.docService.Delete(r.Context(), p, id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Document deleted successfully")
}

// partContentType strips any parameters from a multipart part's
// Content-Type so it can be matched against the allow-list.
func partContentType(raw string) string {
	if raw == "" {
		return "application/octet-stream"
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return raw
	}
	return mediaType
}
