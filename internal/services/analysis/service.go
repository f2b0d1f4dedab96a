// Package analysis turns validated bill text into a structured report via a
// hosted model, and answers follow-up questions from the bill text.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
	"github.com/Ashwin-T-Nkl/billauditor/internal/interfaces"
	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
)

// Sentinel errors the HTTP layer maps to status codes.
var (
	// ErrProviderUnavailable means no model provider is configured (missing
	// API key). Surfaced before any session state changes.
	ErrProviderUnavailable = errors.New("no model provider configured: set an API key for the selected provider")

	// ErrValidationRejected means the document failed bill validation and the
	// caller did not force the analysis.
	ErrValidationRejected = errors.New("document rejected by bill validation")

	// ErrEmptyQuestion means a Q&A request carried no question text.
	ErrEmptyQuestion = errors.New("question is empty")
)

// Service orchestrates prompt assembly, the model call and section
// extraction for one document at a time.
type Service struct {
	config   *common.Config
	prompts  *PromptBuilder
	provider interfaces.LLMProvider
	logger   arbor.ILogger
}

// NewService creates the analysis service. provider may be nil when no API
// key is configured; calls then fail with ErrProviderUnavailable.
func NewService(config *common.Config, provider interfaces.LLMProvider, logger arbor.ILogger) (*Service, error) {
	prompts, err := NewPromptBuilder(&config.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt templates: %w", err)
	}

	return &Service{
		config:   config,
		prompts:  prompts,
		provider: provider,
		logger:   logger,
	}, nil
}

// Analyze generates the structured report for a document. The validation
// gate is checked first; force bypasses a rejection but never a missing
// provider. On model failure the error is returned and no Analysis is
// produced, so any previously stored report stays untouched.
func (s *Service) Analyze(ctx context.Context, doc *models.Document, validation *models.ValidationResult, force bool) (*models.Analysis, error) {
	if s.provider == nil {
		return nil, ErrProviderUnavailable
	}
	if validation != nil && !validation.Accepted && !force {
		return nil, fmt.Errorf("%w: %s", ErrValidationRejected, validation.Reason)
	}

	system, err := s.prompts.SystemPrompt()
	if err != nil {
		return nil, err
	}
	prompt, err := s.prompts.AnalysisPrompt(doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("filename", doc.Filename).
		Str("provider", s.provider.Name()).
		Int("prompt_chars", len(prompt)).
		Bool("forced", force && validation != nil && !validation.Accepted).
		Msg("Generating bill analysis")

	resp, err := s.provider.GenerateContent(ctx, &interfaces.ContentRequest{
		Messages:          []interfaces.Message{{Role: "user", Content: prompt}},
		SystemInstruction: system,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis generation failed: %w", err)
	}

	return s.parse(resp), nil
}

// Ask answers a free-form question from the bill's full text (bounded by the
// question budget), independent of whether an analysis exists.
func (s *Service) Ask(ctx context.Context, doc *models.Document, question string) (string, error) {
	if s.provider == nil {
		return "", ErrProviderUnavailable
	}
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	system, err := s.prompts.SystemPrompt()
	if err != nil {
		return "", err
	}
	prompt, err := s.prompts.QuestionPrompt(doc, question)
	if err != nil {
		return "", err
	}

	s.logger.Info().
		Str("filename", doc.Filename).
		Str("provider", s.provider.Name()).
		Int("question_chars", len(question)).
		Msg("Answering bill question")

	resp, err := s.provider.GenerateContent(ctx, &interfaces.ContentRequest{
		Messages:          []interfaces.Message{{Role: "user", Content: prompt}},
		SystemInstruction: system,
	})
	if err != nil {
		return "", fmt.Errorf("question answering failed: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}

// parse splits the raw model response into the canonical sections plus the
// impact sub-groups nested under IMPACT ANALYSIS.
func (s *Service) parse(resp *interfaces.ContentResponse) *models.Analysis {
	headers := models.AnalysisHeaders()
	sections := ExtractAll(resp.Text, headers)

	impact := make(models.SectionMap)
	impactBody := ExtractSection(resp.Text, models.SectionImpactAnalysis, headers)
	if impactBody != models.SectionNotAvailable {
		impact = ExtractAll(impactBody, models.ImpactHeaders())
	} else {
		for _, header := range models.ImpactHeaders() {
			impact[header] = models.SectionNotAvailable
		}
	}

	missing := 0
	for _, header := range headers {
		if sections[header] == models.SectionNotAvailable {
			missing++
		}
	}
	if missing > 0 {
		s.logger.Warn().
			Int("missing_sections", missing).
			Str("provider", resp.Provider).
			Msg("Model response missing expected section headers")
	}

	return &models.Analysis{
		RawText:     resp.Text,
		Sections:    sections,
		Impact:      impact,
		Provider:    resp.Provider,
		Model:       resp.Model,
		GeneratedAt: time.Now(),
	}
}
