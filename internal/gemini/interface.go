package gemini

import "context"

// Client talks to the Gemini API, rotating through API keys when one is rate limited.
// Implementations are safe for concurrent use.
type Client interface {
	Generate(ctx context.Context, model string, req Request) (string, error)
	Embed(ctx context.Context, model string, texts []string) ([][]float32, error)
}

// Request is a single-turn generation request.
type Request struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int32
}
