package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"quiz-reflect/internal/domain"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient implements domain.CompletionClient with the go-openai SDK.
// It talks to any OpenAI-compatible endpoint via BaseURL.
type OpenAIClient struct {
	client      *openai.Client
	timeout     time.Duration
	temperature *float64
	logger      *zap.Logger
}

// NewOpenAIClient creates a client for the given key and base URL. A nil
// temperature leaves sampling to the API default.
func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration, temperature *float64, logger *zap.Logger) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		timeout:     timeout,
		temperature: temperature,
		logger:      logger,
	}, nil
}

// Complete sends the conversation as a chat completion request.
func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.ChatMessage, model string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == domain.RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: chatMessages,
	}
	if c.temperature != nil {
		req.Temperature = float32(*c.temperature)
		// go-openai drops a zero temperature via omitempty.
		if req.Temperature == 0 {
			req.Temperature = math.SmallestNonzeroFloat32
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error("Chat completion failed", zap.String("model", model), zap.Error(err))
		return "", describeOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices for model %s", model)
	}

	text := resp.Choices[0].Message.Content
	c.logger.Debug("Chat completion finished",
		zap.String("model", resp.Model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("latency", time.Since(start)),
	)
	return text, nil
}

func describeOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("rate limited by completion API: %w", err)
		case apiErr.HTTPStatusCode == http.StatusUnauthorized:
			return fmt.Errorf("completion API rejected credentials: %w", err)
		case apiErr.HTTPStatusCode >= 500:
			return fmt.Errorf("completion API unavailable: %w", err)
		}
	}
	return fmt.Errorf("chat completion failed: %w", err)
}

var _ domain.CompletionClient = (*OpenAIClient)(nil)
