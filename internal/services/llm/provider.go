// Package llm provides hosted model providers behind a common interface.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/Ashwin-T-Nkl/billauditor/internal/common"
	"github.com/Ashwin-T-Nkl/billauditor/internal/interfaces"
)

// NewProvider constructs the provider selected by the configuration.
func NewProvider(ctx context.Context, config *common.Config, logger arbor.ILogger) (interfaces.LLMProvider, error) {
	switch config.LLM.DefaultProvider {
	case common.LLMProviderClaude:
		return NewClaudeProvider(&config.Claude, logger)
	case common.LLMProviderGemini:
		return NewGeminiProvider(ctx, &config.Gemini, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", config.LLM.DefaultProvider)
	}
}

// DetectProvider infers the provider from a model name prefix, falling back
// to the configured default when the name is ambiguous.
func DetectProvider(model string, fallback common.LLMProvider) common.LLMProvider {
	name := strings.ToLower(strings.TrimSpace(model))
	switch {
	case strings.HasPrefix(name, "claude"):
		return common.LLMProviderClaude
	case strings.HasPrefix(name, "gemini"):
		return common.LLMProviderGemini
	default:
		return fallback
	}
}
