package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
	"github.com/Ashwin-T-Nkl/billauditor/internal/interfaces"
	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
)

// stubProvider returns a canned response or error without a network call.
type stubProvider struct {
	response string
	err      error
	requests []*interfaces.ContentRequest
}

func (s *stubProvider) GenerateContent(ctx context.Context, request *interfaces.ContentRequest) (*interfaces.ContentResponse, error) {
	s.requests = append(s.requests, request)
	if s.err != nil {
		return nil, s.err
	}
	return &interfaces.ContentResponse{
		Text:     s.response,
		Provider: "stub",
		Model:    "stub-model",
	}, nil
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Model() string { return "stub-model" }

func (s *stubProvider) Close() error { return nil }

func newTestService(t *testing.T, provider interfaces.LLMProvider) *Service {
	t.Helper()
	service, err := NewService(common.NewDefaultConfig(), provider, arbor.NewLogger())
	require.NoError(t, err)
	return service
}

func acceptedVerdict() *models.ValidationResult {
	return &models.ValidationResult{Accepted: true, Classification: models.ClassificationAccepted}
}

func rejectedVerdict() *models.ValidationResult {
	return &models.ValidationResult{
		Accepted:       false,
		Classification: models.ClassificationInvalid,
		Reason:         "no legislative indicators",
	}
}

func TestAnalyzeParsesSections(t *testing.T) {
	provider := &stubProvider{response: sampleResponse}
	service := newTestService(t, provider)
	doc := models.NewDocument("bill.pdf", []string{"A Bill to regulate banks."})

	result, err := service.Analyze(context.Background(), doc, acceptedVerdict(), false)
	require.NoError(t, err)

	assert.Equal(t, sampleResponse, result.RawText)
	assert.Equal(t, "Finance and Banking", result.Sections[models.SectionSector])
	assert.Equal(t, "Deposits up to a limit are insured.", result.Impact[models.ImpactCitizens])
	assert.Equal(t, "stub", result.Provider)
	assert.False(t, result.GeneratedAt.IsZero())

	require.Len(t, provider.requests, 1)
	assert.NotEmpty(t, provider.requests[0].SystemInstruction)
}

func TestAnalyzeRejectedWithoutForce(t *testing.T) {
	provider := &stubProvider{response: sampleResponse}
	service := newTestService(t, provider)
	doc := models.NewDocument("memo.pdf", []string{"Office memo."})

	_, err := service.Analyze(context.Background(), doc, rejectedVerdict(), false)

	assert.ErrorIs(t, err, ErrValidationRejected)
	assert.Contains(t, err.Error(), "no legislative indicators")
	assert.Empty(t, provider.requests)
}

func TestAnalyzeForceBypassesRejection(t *testing.T) {
	provider := &stubProvider{response: sampleResponse}
	service := newTestService(t, provider)
	doc := models.NewDocument("memo.pdf", []string{"Office memo."})

	result, err := service.Analyze(context.Background(), doc, rejectedVerdict(), true)

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Len(t, provider.requests, 1)
}

func TestAnalyzeNoProvider(t *testing.T) {
	service := newTestService(t, nil)
	doc := models.NewDocument("bill.pdf", []string{"A Bill to regulate banks."})

	_, err := service.Analyze(context.Background(), doc, acceptedVerdict(), false)
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	// Force never bypasses a missing provider
	_, err = service.Analyze(context.Background(), doc, rejectedVerdict(), true)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestAnalyzeProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream timeout")}
	service := newTestService(t, provider)
	doc := models.NewDocument("bill.pdf", []string{"A Bill to regulate banks."})

	result, err := service.Analyze(context.Background(), doc, acceptedVerdict(), false)

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestAnalyzeMissingHeadersMapToSentinel(t *testing.T) {
	provider := &stubProvider{response: "The model ignored the requested structure entirely."}
	service := newTestService(t, provider)
	doc := models.NewDocument("bill.pdf", []string{"A Bill to regulate banks."})

	result, err := service.Analyze(context.Background(), doc, acceptedVerdict(), false)
	require.NoError(t, err)

	for _, header := range models.AnalysisHeaders() {
		assert.Equal(t, models.SectionNotAvailable, result.Sections[header])
	}
	for _, header := range models.ImpactHeaders() {
		assert.Equal(t, models.SectionNotAvailable, result.Impact[header])
	}
}

func TestAsk(t *testing.T) {
	provider := &stubProvider{response: "  The new authority enforces it.  "}
	service := newTestService(t, provider)
	doc := models.NewDocument("bill.pdf", []string{"The authority shall enforce this Act."})

	answer, err := service.Ask(context.Background(), doc, "Who enforces this bill?")
	require.NoError(t, err)

	assert.Equal(t, "The new authority enforces it.", answer)
	require.Len(t, provider.requests, 1)
	assert.Contains(t, provider.requests[0].Messages[0].Content, "Who enforces this bill?")
}

func TestAskEmptyQuestion(t *testing.T) {
	provider := &stubProvider{response: "irrelevant"}
	service := newTestService(t, provider)
	doc := models.NewDocument("bill.pdf", []string{"text"})

	_, err := service.Ask(context.Background(), doc, "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Empty(t, provider.requests)
}

func TestSummaryText(t *testing.T) {
	provider := &stubProvider{response: sampleResponse}
	service := newTestService(t, provider)
	doc := models.NewDocument("bill.pdf", []string{"A Bill to regulate banks."})

	result, err := service.Analyze(context.Background(), doc, acceptedVerdict(), false)
	require.NoError(t, err)

	summary := SummaryText(doc, result)

	assert.Contains(t, summary, "PARLIAMENT BILL SUMMARY")
	assert.Contains(t, summary, "File: bill.pdf")
	for _, header := range models.AnalysisHeaders() {
		assert.Contains(t, summary, header)
	}
	for _, header := range models.ImpactHeaders() {
		assert.Contains(t, summary, header)
	}
	// Sections appear in canonical order
	assert.Less(t,
		strings.Index(summary, models.SectionSector),
		strings.Index(summary, models.SectionNegativesRisks))
}
