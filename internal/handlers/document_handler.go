package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/interfaces"
	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
	"github.com/Ashwin-T-Nkl/billauditor/internal/services/session"
	"github.com/Ashwin-T-Nkl/billauditor/internal/services/validation"
)

// maxUploadBytes caps the multipart upload size (32 MB).
const maxUploadBytes = 32 << 20

// DocumentHandler accepts bill PDF uploads, extracts their text and runs the
// bill validator.
type DocumentHandler struct {
	extractor interfaces.PDFExtractor
	validator *validation.Validator
	store     *session.Store
	logger    arbor.ILogger
}

// NewDocumentHandler creates the upload handler.
func NewDocumentHandler(extractor interfaces.PDFExtractor, validator *validation.Validator, store *session.Store, logger arbor.ILogger) *DocumentHandler {
	return &DocumentHandler{
		extractor: extractor,
		validator: validator,
		store:     store,
		logger:    logger,
	}
}

// UploadHandler handles POST /api/documents/upload. Expects a multipart form
// with a "file" field holding a PDF. The upload always installs the document
// into the session; the validation verdict is returned alongside so the UI
// can warn before any analysis is attempted.
func (h *DocumentHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing 'file' field in upload")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		WriteError(w, http.StatusBadRequest, "Only PDF files are accepted")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	pages, err := h.extractor.ExtractPages(r.Context(), content)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", filename).Msg("PDF extraction failed")
		WriteError(w, http.StatusUnprocessableEntity, "Could not read PDF: "+err.Error())
		return
	}

	doc := models.NewDocument(filename, pages)
	result := h.validator.Validate(doc.FullText)
	h.store.SetDocument(doc, result)

	h.logger.Info().
		Str("filename", filename).
		Int("pages", doc.PageCount).
		Int("chars", doc.CharCount).
		Str("classification", string(result.Classification)).
		Msg("Document uploaded")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"document":   doc,
		"validation": result,
	})
}

// StatusHandler handles GET /api/documents: the current session document and
// its validation verdict.
func (h *DocumentHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	doc, ok := h.store.Document()
	if !ok {
		WriteError(w, http.StatusNotFound, "No document uploaded")
		return
	}
	result, _ := h.store.Validation()
	_, hasAnalysis := h.store.Analysis()

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"document":     doc,
		"validation":   result,
		"has_analysis": hasAnalysis,
	})
}

// ClearHandler handles POST /api/documents/clear, emptying the session.
func (h *DocumentHandler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	h.store.Clear()
	WriteSuccess(w, "Session cleared")
}
