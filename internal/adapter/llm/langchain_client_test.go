package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-reflect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// fakeModel records the last request and replies with a canned response.
type fakeModel struct {
	reply    *llms.ContentResponse
	err      error
	block    bool
	messages []llms.MessageContent
	options  llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.options)
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.reply, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func textReply(text string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: text}}}
}

func TestNewLangchainClient_NilModel(t *testing.T) {
	_, err := NewLangchainClient(nil, 0, 0, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model cannot be nil")
}

func TestLangchainClient_Complete(t *testing.T) {
	model := &fakeModel{reply: textReply("1. Question\nA) a\n\n**Answer Key**\n1. A")}
	client, err := NewLangchainClient(model, time.Minute, 0.3, zap.NewNop())
	require.NoError(t, err)

	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "You are a helpful Study Assistant."},
		{Role: domain.RoleUser, Content: "Here are the lecture notes:\n\nWater boils at 100C at sea level."},
	}

	text, err := client.Complete(context.Background(), messages, "openai/gpt-oss-120b")
	require.NoError(t, err)
	assert.Contains(t, text, "Answer Key")

	require.Len(t, model.messages, 2)
	assert.Equal(t, schema.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, schema.ChatMessageTypeHuman, model.messages[1].Role)
	require.Len(t, model.messages[1].Parts, 1)
	assert.Equal(t, llms.TextContent{Text: messages[1].Content}, model.messages[1].Parts[0])
	assert.Equal(t, "openai/gpt-oss-120b", model.options.Model)
	assert.InDelta(t, 0.3, model.options.Temperature, 1e-9)
}

func TestLangchainClient_Complete_Errors(t *testing.T) {
	messages := []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}}

	t.Run("upstream error propagates", func(t *testing.T) {
		upstream := errors.New("401 invalid api key")
		client, err := NewLangchainClient(&fakeModel{err: upstream}, 0, 0, nil)
		require.NoError(t, err)

		_, err = client.Complete(context.Background(), messages, "m")
		assert.ErrorIs(t, err, upstream)
		assert.Contains(t, err.Error(), "LLM call failed")
	})

	t.Run("empty choices", func(t *testing.T) {
		client, err := NewLangchainClient(&fakeModel{reply: &llms.ContentResponse{}}, 0, 0, nil)
		require.NoError(t, err)

		_, err = client.Complete(context.Background(), messages, "m")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty response")
	})

	t.Run("timeout", func(t *testing.T) {
		client, err := NewLangchainClient(&fakeModel{block: true}, 10*time.Millisecond, 0, nil)
		require.NoError(t, err)

		_, err = client.Complete(context.Background(), messages, "m")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "timed out")
	})
}
