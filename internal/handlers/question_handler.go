package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/services/analysis"
	"github.com/Ashwin-T-Nkl/billauditor/internal/services/session"
)

// QuestionHandler answers free-form questions about the current bill.
type QuestionHandler struct {
	service *analysis.Service
	store   *session.Store
	logger  arbor.ILogger
}

// NewQuestionHandler creates the Q&A handler.
func NewQuestionHandler(service *analysis.Service, store *session.Store, logger arbor.ILogger) *QuestionHandler {
	return &QuestionHandler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

type questionRequest struct {
	Question string `json:"question"`
}

// AskHandler handles POST /api/question. The answer comes from the bill's
// own text; a generated analysis is not required first.
func (h *QuestionHandler) AskHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	doc, ok := h.store.Document()
	if !ok {
		WriteError(w, http.StatusNotFound, "No document uploaded")
		return
	}

	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	answer, err := h.service.Ask(r.Context(), doc, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrProviderUnavailable):
			WriteError(w, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, analysis.ErrEmptyQuestion):
			WriteError(w, http.StatusBadRequest, "Question is empty")
		default:
			h.logger.Error().Err(err).Str("filename", doc.Filename).Msg("Question answering failed")
			WriteError(w, http.StatusBadGateway, "Question failed: "+err.Error())
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"question": req.Question,
		"answer":   answer,
	})
}
