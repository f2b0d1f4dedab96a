package interfaces

import "context"

// Message represents a single message in a model conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// ContentRequest represents a provider-agnostic content generation request
type ContentRequest struct {
	Messages          []Message
	Model             string
	Temperature       float32
	MaxTokens         int
	SystemInstruction string
}

// ContentResponse represents a provider-agnostic content generation response
type ContentResponse struct {
	Text     string
	Provider string
	Model    string
}

// LLMProvider defines the interface for hosted model content generation.
// The call is a single attempt: failures are returned to the caller and
// surfaced to the user, never retried internally.
type LLMProvider interface {
	// GenerateContent produces a completion for the given request.
	GenerateContent(ctx context.Context, request *ContentRequest) (*ContentResponse, error)

	// Name returns the provider identifier ("claude" or "gemini").
	Name() string

	// Model returns the configured model name.
	Model() string

	// Close releases provider resources.
	Close() error
}
