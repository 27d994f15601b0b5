// Package llm defines the text-completion capability the interview engine
// consumes. The engine treats the model as an opaque, possibly failing,
// possibly slow service: providers live in subpackages and the core never
// sees vendor request or response shapes.
package llm

import "context"

// Message is one entry in a completion conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Usage carries token accounting for a single completion call.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Client is the completion capability injected into the flow controller.
type Client interface {
	// GenerateWithUsage returns the completion text and its token usage.
	// Implementations must honor ctx cancellation and deadlines.
	GenerateWithUsage(ctx context.Context, messages []Message) (string, Usage, error)

	// Model identifies the underlying model for audit logging.
	Model() string
}
