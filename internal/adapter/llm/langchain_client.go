package llm

import (
	"context"
	"fmt"
	"time"

	"quiz-reflect/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// LangchainClient implements domain.CompletionClient on top of any langchaingo
// chat model (OpenAI-compatible endpoints such as Groq, or Ollama).
type LangchainClient struct {
	model       llms.Model
	timeout     time.Duration
	temperature float64
	logger      *zap.Logger
}

// NewLangchainClient wraps an initialized langchaingo model. A zero timeout
// leaves deadlines to the caller's context. temperature is sent on every
// call, since langchaingo always serializes it.
func NewLangchainClient(model llms.Model, timeout time.Duration, temperature float64, logger *zap.Logger) (*LangchainClient, error) {
	if model == nil {
		return nil, fmt.Errorf("langchain model cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LangchainClient{
		model:       model,
		timeout:     timeout,
		temperature: temperature,
		logger:      logger,
	}, nil
}

// Complete sends the conversation and returns the first choice's text.
func (c *LangchainClient) Complete(ctx context.Context, messages []domain.ChatMessage, model string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, llms.TextParts(toLangchainRole(m.Role), m.Content))
	}

	opts := []llms.CallOption{
		llms.WithModel(model),
		llms.WithTemperature(c.temperature),
	}

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, content, opts...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			c.logger.Error("LLM request timed out", zap.String("model", model), zap.Error(err))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		c.logger.Error("Failed to get response from LLM", zap.String("model", model), zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		c.logger.Error("LLM returned no choices", zap.String("model", model))
		return "", fmt.Errorf("LLM call failed: empty response from model %s", model)
	}

	text := resp.Choices[0].Content
	c.logger.Debug("LLM call completed",
		zap.String("model", model),
		zap.Int("messages", len(messages)),
		zap.Int("response_chars", len(text)),
		zap.Duration("latency", time.Since(start)),
	)
	return text, nil
}

func toLangchainRole(role domain.MessageRole) schema.ChatMessageType {
	if role == domain.RoleSystem {
		return schema.ChatMessageTypeSystem
	}
	return schema.ChatMessageTypeHuman
}

var _ domain.CompletionClient = (*LangchainClient)(nil)
