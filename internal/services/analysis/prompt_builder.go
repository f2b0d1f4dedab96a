package analysis

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
	"github.com/Ashwin-T-Nkl/billauditor/internal/models"
)

// analysisSystemPrompt frames every analysis request. The audience is fixed
// per deployment, not per request.
const analysisSystemPrompt = `You are a Public Policy Analyst. You explain proposed legislation in simple language that {{.Audience}} can understand. You are neutral and factual; you do not editorialize or take political positions.`

// analysisPromptTemplate is the default analysis prompt. Headers are
// interpolated from the canonical list so the prompt and the section
// extractor can never disagree about labels.
const analysisPromptTemplate = `Analyze the following parliamentary bill and produce a structured report.

Rules:
- Write in plain language that {{.Audience}} can understand.
- Use EXACTLY the following section headers, verbatim, each on its own line, in this order:
{{range .Headers}}{{.}}
{{end}}
- Under IMPACT ANALYSIS, cover each of these groups with its own label:
{{range .ImpactHeaders}}{{.}}
{{end}}
- Plain text only. Do not use markdown formatting (no **, ##, or bullets made of asterisks).
- Base every statement on the bill text below. If the bill does not address a section, write "Not stated in the bill" under that header.

BILL TEXT:
{{.BillText}}`

// questionPromptTemplate answers a free-form question from the bill text
// only, never from general knowledge.
const questionPromptTemplate = `Answer the question using ONLY the bill text below. If the bill text does not contain the answer, say that the bill does not address it. Write in plain language that {{.Audience}} can understand.

BILL TEXT:
{{.BillText}}

QUESTION:
{{.Question}}`

// PromptBuilder renders the analysis and question prompts with the document
// excerpt bounded by the configured character budgets.
type PromptBuilder struct {
	config   *common.AnalysisConfig
	system   *template.Template
	analysis *template.Template
	question *template.Template
}

type promptData struct {
	Audience      string
	Headers       []string
	ImpactHeaders []string
	BillText      string
	Question      string
}

// NewPromptBuilder parses the prompt templates, preferring an operator
// override file for the analysis prompt when one is configured.
func NewPromptBuilder(config *common.AnalysisConfig) (*PromptBuilder, error) {
	analysisText := analysisPromptTemplate
	if config.PromptTemplateFile != "" {
		content, err := os.ReadFile(config.PromptTemplateFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt override %s: %w", config.PromptTemplateFile, err)
		}
		analysisText = string(content)
	}

	system, err := template.New("system").Parse(analysisSystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse system prompt: %w", err)
	}
	analysis, err := template.New("analysis").Parse(analysisText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analysis prompt: %w", err)
	}
	question, err := template.New("question").Parse(questionPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse question prompt: %w", err)
	}

	return &PromptBuilder{
		config:   config,
		system:   system,
		analysis: analysis,
		question: question,
	}, nil
}

// SystemPrompt renders the system instruction.
func (b *PromptBuilder) SystemPrompt() (string, error) {
	return b.render(b.system, promptData{Audience: b.config.Audience})
}

// AnalysisPrompt renders the structured analysis prompt for the document,
// truncating the bill text to the configured prompt budget.
func (b *PromptBuilder) AnalysisPrompt(doc *models.Document) (string, error) {
	return b.render(b.analysis, promptData{
		Audience:      b.config.Audience,
		Headers:       models.AnalysisHeaders(),
		ImpactHeaders: models.ImpactHeaders(),
		BillText:      doc.Excerpt(b.config.PromptBudget),
	})
}

// QuestionPrompt renders the free-form question prompt, truncating the bill
// text to the configured question budget.
func (b *PromptBuilder) QuestionPrompt(doc *models.Document, question string) (string, error) {
	return b.render(b.question, promptData{
		Audience: b.config.Audience,
		BillText: doc.Excerpt(b.config.QuestionBudget),
		Question: strings.TrimSpace(question),
	})
}

func (b *PromptBuilder) render(tmpl *template.Template, data promptData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
