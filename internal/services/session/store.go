// Package session holds the single in-memory working set: the current
// document, its validation verdict and its latest analysis.
package session

import (
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
)

// Store is the single-session state container. One document is active at a
// time; uploading a different file replaces the whole working set. There is
// no persistence; restart clears everything.
type Store struct {
	mu         sync.RWMutex
	document   *models.Document
	validation *models.ValidationResult
	analysis   *models.Analysis
	logger     arbor.ILogger
}

// NewStore creates an empty session store.
func NewStore(logger arbor.ILogger) *Store {
	return &Store{logger: logger}
}

// SetDocument installs a newly uploaded document and its validation verdict.
// An existing analysis survives only when the filename is unchanged, so
// re-uploading the same file does not discard a completed report.
func (s *Store) SetDocument(doc *models.Document, validation *models.ValidationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := s.document != nil && s.document.Filename != doc.Filename
	if replaced || s.document == nil {
		s.analysis = nil
	}
	s.document = doc
	s.validation = validation

	s.logger.Info().
		Str("filename", doc.Filename).
		Int("pages", doc.PageCount).
		Int("chars", doc.CharCount).
		Bool("replaced_previous", replaced).
		Msg("Session document set")
}

// SetAnalysis stores a completed analysis for the current document.
func (s *Store) SetAnalysis(analysis *models.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = analysis
}

// Document returns the current document, or false when none is loaded.
func (s *Store) Document() (*models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.document, s.document != nil
}

// Validation returns the current document's validation verdict.
func (s *Store) Validation() (*models.ValidationResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validation, s.validation != nil
}

// Analysis returns the latest analysis, or false when none has been
// generated for the current document.
func (s *Store) Analysis() (*models.Analysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analysis, s.analysis != nil
}

// Clear empties the session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = nil
	s.validation = nil
	s.analysis = nil
	s.logger.Info().Msg("Session cleared")
}
