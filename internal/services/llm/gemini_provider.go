package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
	"github.com/Ashwin-T-Nkl/billauditor/internal/interfaces"
)

// GeminiProvider implements interfaces.LLMProvider backed by the Google
// Gemini API. Single attempt per call, same contract as ClaudeProvider.
type GeminiProvider struct {
	client  *genai.Client
	config  *common.GeminiConfig
	logger  arbor.ILogger
	limiter *rate.Limiter
	timeout time.Duration
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, config *common.GeminiConfig, logger arbor.ILogger) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured (set GEMINI_API_KEY or gemini.api_key)")
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		timeout = 2 * time.Minute
	}

	// Free-tier Gemini quotas are per-minute; the default interval keeps a
	// busy session under them.
	interval, err := time.ParseDuration(config.RateLimit)
	if err != nil || interval <= 0 {
		interval = 4 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logger.Info().
		Str("model", config.Model).
		Str("rate_limit", interval.String()).
		Msg("Gemini provider initialized")

	return &GeminiProvider{
		client:  client,
		config:  config,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		timeout: timeout,
	}, nil
}

// GenerateContent sends the conversation to Gemini and returns the response
// text.
func (p *GeminiProvider) GenerateContent(ctx context.Context, request *interfaces.ContentRequest) (*interfaces.ContentResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	model := request.Model
	if model == "" {
		model = p.config.Model
	}
	contents := make([]*genai.Content, 0, len(request.Messages))
	for _, msg := range request.Messages {
		role := genai.RoleUser
		if msg.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
		})
	}

	generateConfig := buildGenerateConfig(request, p.config.Temperature)

	start := time.Now()
	resp, err := p.client.Models.GenerateContent(ctx, model, contents, generateConfig)
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("model", model).
			Msg("Gemini request failed")
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()

	p.logger.Debug().
		Str("model", model).
		Int("response_chars", len(text)).
		Str("duration", time.Since(start).String()).
		Msg("Gemini request completed")

	return &interfaces.ContentResponse{
		Text:     text,
		Provider: string(common.LLMProviderGemini),
		Model:    model,
	}, nil
}

// buildGenerateConfig maps the request options onto the Gemini generation
// config. A zero temperature falls back to the configured default, and a
// positive MaxTokens becomes the output token cap.
func buildGenerateConfig(request *interfaces.ContentRequest, defaultTemperature float32) *genai.GenerateContentConfig {
	temperature := request.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if request.MaxTokens > 0 {
		config.MaxOutputTokens = int32(request.MaxTokens)
	}
	if request.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(request.SystemInstruction, genai.RoleUser)
	}
	return config
}

// Name returns the provider identifier.
func (p *GeminiProvider) Name() string {
	return string(common.LLMProviderGemini)
}

// Model returns the configured model name.
func (p *GeminiProvider) Model() string {
	return p.config.Model
}

// Close releases provider resources.
func (p *GeminiProvider) Close() error {
	return nil
}
