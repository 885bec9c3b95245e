package llm

import (
	"context"
	"fmt"

	"bedtime/internal/config"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the conversation sent to the model.
type Message struct {
	Role    string
	Content string
}

// Params are the sampling parameters for a single completion call.
type Params struct {
	MaxTokens   int64
	Temperature float64
}

// StoryParams is the profile for story generation and revision: long
// output, creative sampling.
var StoryParams = Params{MaxTokens: 1500, Temperature: 0.7}

// JudgeParams is the profile for the judge: short output, temperature
// zero to stabilize the structured verdict.
var JudgeParams = Params{MaxTokens: 800, Temperature: 0.0}

// Client abstracts the text-generation backend. Implementations block
// until the backend responds or the transport fails; transport errors
// are returned as-is and are fatal to the caller.
type Client interface {
	Complete(ctx context.Context, messages []Message, params Params) (string, error)
}

// NewClient builds a backend client for the given model using the
// configured provider and credentials. The storyteller and the judge
// may run different models, so each gets its own client.
func NewClient(ctx context.Context, cfg *config.Config, model string) (Client, error) {
	switch cfg.AI.Provider {
	case "openai":
		return NewOpenAIClient(cfg.AI.APIKey, model, cfg.AI.BaseURL)
	case "gemini":
		return NewGeminiClient(ctx, cfg.AI.APIKey, model)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.AI.Provider)
	}
}
