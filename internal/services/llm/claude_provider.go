package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
	"github.com/Ashwin-T-Nkl/billauditor/internal/interfaces"
)

// ClaudeProvider implements interfaces.LLMProvider backed by the Anthropic
// Messages API. Each call is a single attempt; failures propagate to the
// caller rather than being retried.
type ClaudeProvider struct {
	client  anthropic.Client
	config  *common.ClaudeConfig
	logger  arbor.ILogger
	limiter *rate.Limiter
	timeout time.Duration
}

// NewClaudeProvider creates a Claude-backed provider. The API key must be
// present; a missing key is a configuration error the caller reports before
// touching session state.
func NewClaudeProvider(config *common.ClaudeConfig, logger arbor.ILogger) (*ClaudeProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("claude API key not configured (set ANTHROPIC_API_KEY or claude.api_key)")
	}

	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		timeout = 2 * time.Minute
	}

	interval, err := time.ParseDuration(config.RateLimit)
	if err != nil || interval <= 0 {
		interval = time.Second
	}

	client := anthropic.NewClient(option.WithAPIKey(config.APIKey))

	logger.Info().
		Str("model", config.Model).
		Str("rate_limit", interval.String()).
		Msg("Claude provider initialized")

	return &ClaudeProvider{
		client:  client,
		config:  config,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		timeout: timeout,
	}, nil
}

// GenerateContent sends the conversation to the Messages API and returns the
// concatenated text blocks of the response.
func (p *ClaudeProvider) GenerateContent(ctx context.Context, request *interfaces.ContentRequest) (*interfaces.ContentResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	model := request.Model
	if model == "" {
		model = p.config.Model
	}
	maxTokens := request.MaxTokens
	if maxTokens <= 0 {
		maxTokens = p.config.MaxTokens
	}
	temperature := request.Temperature
	if temperature == 0 {
		temperature = p.config.Temperature
	}

	messages := make([]anthropic.MessageParam, 0, len(request.Messages))
	for _, msg := range request.Messages {
		switch msg.Role {
		case "assistant":
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(maxTokens),
		Messages:    messages,
		Temperature: anthropic.Float(float64(temperature)),
	}
	if request.SystemInstruction != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: request.SystemInstruction},
		}
	}

	start := time.Now()
	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("model", model).
			Msg("Claude request failed")
		return nil, fmt.Errorf("claude request failed: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	p.logger.Debug().
		Str("model", model).
		Int("response_chars", len(text)).
		Str("duration", time.Since(start).String()).
		Msg("Claude request completed")

	return &interfaces.ContentResponse{
		Text:     text,
		Provider: string(common.LLMProviderClaude),
		Model:    model,
	}, nil
}

// Name returns the provider identifier.
func (p *ClaudeProvider) Name() string {
	return string(common.LLMProviderClaude)
}

// Model returns the configured model name.
func (p *ClaudeProvider) Model() string {
	return p.config.Model
}

// Close releases provider resources. The Anthropic client holds no
// long-lived connections that need explicit shutdown.
func (p *ClaudeProvider) Close() error {
	return nil
}
