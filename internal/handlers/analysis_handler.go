package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
	"github.com/Ashwin-T-Nkl/billauditor/internal/interfaces"
	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
	"github.com/Ashwin-T-Nkl/billauditor/internal/services/analysis"
	"github.com/Ashwin-T-Nkl/billauditor/internal/services/session"
)

// AnalysisHandler drives report generation, section lookup and PDF export.
type AnalysisHandler struct {
	config  *common.Config
	service *analysis.Service
	writer  interfaces.PDFWriter
	store   *session.Store
	logger  arbor.ILogger
}

// NewAnalysisHandler creates the analysis handler.
func NewAnalysisHandler(config *common.Config, service *analysis.Service, writer interfaces.PDFWriter, store *session.Store, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		config:  config,
		service: service,
		writer:  writer,
		store:   store,
		logger:  logger,
	}
}

// GenerateHandler handles POST /api/analysis/generate. Accepts ?force=true
// to analyze a document the validator rejected. On failure any previously
// stored analysis stays untouched.
func (h *AnalysisHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	doc, ok := h.store.Document()
	if !ok {
		WriteError(w, http.StatusNotFound, "No document uploaded")
		return
	}
	verdict, _ := h.store.Validation()
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	result, err := h.service.Analyze(r.Context(), doc, verdict, force)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrProviderUnavailable):
			WriteError(w, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, analysis.ErrValidationRejected):
			WriteError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.logger.Error().Err(err).Str("filename", doc.Filename).Msg("Analysis generation failed")
			WriteError(w, http.StatusBadGateway, "Analysis failed: "+err.Error())
		}
		return
	}

	h.store.SetAnalysis(result)
	WriteJSON(w, http.StatusOK, result)
}

// GetHandler handles GET /api/analysis: the stored analysis, if any.
func (h *AnalysisHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	result, ok := h.store.Analysis()
	if !ok {
		WriteError(w, http.StatusNotFound, "No analysis generated yet")
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// SectionHandler handles GET /api/analysis/section?name=HEADER. Unknown
// headers return the not-available sentinel rather than an error, matching
// the extractor's contract.
func (h *AnalysisHandler) SectionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	result, ok := h.store.Analysis()
	if !ok {
		WriteError(w, http.StatusNotFound, "No analysis generated yet")
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		WriteError(w, http.StatusBadRequest, "Missing 'name' query parameter")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"name":    name,
		"content": result.Section(name),
	})
}

// ExportHandler handles GET /api/analysis/export: the summary rendered as a
// downloadable PDF.
func (h *AnalysisHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	doc, ok := h.store.Document()
	if !ok {
		WriteError(w, http.StatusNotFound, "No document uploaded")
		return
	}
	result, ok := h.store.Analysis()
	if !ok {
		WriteError(w, http.StatusNotFound, "No analysis generated yet")
		return
	}

	content, err := h.writer.WriteText(analysis.SummaryText(doc, result))
	if err != nil {
		h.logger.Error().Err(err).Msg("Summary PDF rendering failed")
		WriteError(w, http.StatusInternalServerError, "Failed to render PDF: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.config.Export.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// HeadersHandler handles GET /api/analysis/headers: the canonical section
// and impact header lists, so the UI renders tabs from the same source of
// truth the extractor uses.
func (h *AnalysisHandler) HeadersHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string][]string{
		"sections": models.AnalysisHeaders(),
		"impact":   models.ImpactHeaders(),
	})
}
