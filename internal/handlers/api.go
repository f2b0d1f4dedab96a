package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
)

// APIHandler serves service-level endpoints: health, version, 404.
type APIHandler struct {
	config *common.Config
	logger arbor.ILogger
}

// NewAPIHandler creates the service-level handler.
func NewAPIHandler(config *common.Config, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		config: config,
		logger: logger,
	}
}

// HealthHandler reports service liveness plus which provider is active.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"version":      common.GetVersion(),
		"provider":     string(h.config.LLM.DefaultProvider),
		"provider_key": h.config.HasAPIKey(h.config.LLM.DefaultProvider),
	})
}

// VersionHandler reports build version information.
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetFullVersion(),
	})
}

// NotFoundHandler handles unmatched API routes.
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found: "+r.URL.Path)
}
