package llm

import (
	"context"
	"fmt"
	"time"

	"studybyte/internal/domain"
	"studybyte/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAIGenerator implements domain.TextGenerator over a langchaingo OpenAI
// chat model.
type OpenAIGenerator struct {
	model   llms.Model
	timeout time.Duration
}

// NewOpenAIGenerator creates the generation collaborator. The timeout bounds
// each individual generation call.
func NewOpenAIGenerator(apiKey, modelName string, timeout time.Duration) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("OpenAI model name cannot be empty")
	}

	model, err := openai.New(openai.WithToken(apiKey), openai.WithModel(modelName))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	logger.Get().Info("Initialized OpenAI generator", zap.String("model", modelName))

	return &OpenAIGenerator{model: model, timeout: timeout}, nil
}

// NewWithModel wraps an already-constructed langchaingo model. Used by tests
// and by callers that want a non-OpenAI backend behind the same adapter.
func NewWithModel(model llms.Model, timeout time.Duration) *OpenAIGenerator {
	return &OpenAIGenerator{model: model, timeout: timeout}
}

// Generate implements domain.TextGenerator.
func (g *OpenAIGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(temperature))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}
	return resp.Choices[0].Content, nil
}

var _ domain.TextGenerator = (*OpenAIGenerator)(nil)
