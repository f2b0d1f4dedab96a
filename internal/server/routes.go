package server

import "net/http"

// setupRoutes registers all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Web UI
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		s.app.PageHandler.ServePage("index.html")(w, r)
	})
	mux.HandleFunc("/static/", s.app.PageHandler.StaticFileHandler)

	// Service endpoints
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)

	// Document lifecycle
	mux.HandleFunc("/api/documents/upload", s.app.DocumentHandler.UploadHandler)
	mux.HandleFunc("/api/documents/clear", s.app.DocumentHandler.ClearHandler)
	mux.HandleFunc("/api/documents", s.app.DocumentHandler.StatusHandler)

	// Analysis
	mux.HandleFunc("/api/analysis/generate", s.app.AnalysisHandler.GenerateHandler)
	mux.HandleFunc("/api/analysis/section", s.app.AnalysisHandler.SectionHandler)
	mux.HandleFunc("/api/analysis/export", s.app.AnalysisHandler.ExportHandler)
	mux.HandleFunc("/api/analysis/headers", s.app.AnalysisHandler.HeadersHandler)
	mux.HandleFunc("/api/analysis", s.app.AnalysisHandler.GetHandler)

	// Q&A
	mux.HandleFunc("/api/question", s.app.QuestionHandler.AskHandler)

	// Catch-all for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
