package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
)

func newTestBuilder(t *testing.T) *PromptBuilder {
	t.Helper()
	config := common.NewDefaultConfig().Analysis
	builder, err := NewPromptBuilder(&config)
	require.NoError(t, err)
	return builder
}

func TestAnalysisPromptContainsHeaders(t *testing.T) {
	builder := newTestBuilder(t)
	doc := models.NewDocument("bill.pdf", []string{"A Bill to regulate digital markets."})

	prompt, err := builder.AnalysisPrompt(doc)
	require.NoError(t, err)

	for _, header := range models.AnalysisHeaders() {
		assert.Contains(t, prompt, header)
	}
	for _, header := range models.ImpactHeaders() {
		assert.Contains(t, prompt, header)
	}
	assert.Contains(t, prompt, "A Bill to regulate digital markets.")
	assert.Contains(t, prompt, "8th grade school students")
}

func TestAnalysisPromptTruncatesToBudget(t *testing.T) {
	config := common.NewDefaultConfig().Analysis
	config.PromptBudget = 50
	builder, err := NewPromptBuilder(&config)
	require.NoError(t, err)

	longText := strings.Repeat("clause ", 100)
	doc := models.NewDocument("bill.pdf", []string{longText})

	prompt, err := builder.AnalysisPrompt(doc)
	require.NoError(t, err)

	assert.Contains(t, prompt, longText[:50])
	assert.NotContains(t, prompt, longText[:51])
}

func TestQuestionPrompt(t *testing.T) {
	builder := newTestBuilder(t)
	doc := models.NewDocument("bill.pdf", []string{"The authority shall enforce this Act."})

	prompt, err := builder.QuestionPrompt(doc, "  Who enforces this bill?  ")
	require.NoError(t, err)

	assert.Contains(t, prompt, "The authority shall enforce this Act.")
	assert.Contains(t, prompt, "Who enforces this bill?")
	// Answers must come from the supplied text only
	assert.Contains(t, prompt, "ONLY the bill text")
}

func TestSystemPrompt(t *testing.T) {
	builder := newTestBuilder(t)

	system, err := builder.SystemPrompt()
	require.NoError(t, err)

	assert.Contains(t, system, "Public Policy Analyst")
	assert.Contains(t, system, "8th grade school students")
}

func TestNewPromptBuilderMissingOverrideFile(t *testing.T) {
	config := common.NewDefaultConfig().Analysis
	config.PromptTemplateFile = "does-not-exist.tmpl"

	_, err := NewPromptBuilder(&config)
	assert.Error(t, err)
}
