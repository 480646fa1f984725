package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"quiz-reflect/internal/adapter/quizgen"
	"quiz-reflect/internal/adapter/reflector"
	"quiz-reflect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedClient answers by system prompt: drafts are numbered, critiques
// are popped from a script.
type scriptedClient struct {
	mu            sync.Mutex
	critiques     []string
	generates     int
	reflects      int
	regenerations []string
}

func (c *scriptedClient) Complete(_ context.Context, messages []domain.ChatMessage, _ string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch messages[0].Content {
	case quizgen.GenerationSystemPrompt:
		c.generates++
		return "quiz v1", nil
	case quizgen.RegenerationSystemPrompt:
		c.regenerations = append(c.regenerations, messages[len(messages)-1].Content)
		return fmt.Sprintf("quiz v%d", len(c.regenerations)+1), nil
	case reflector.ReflectionSystemPrompt:
		critique := c.critiques[c.reflects]
		c.reflects++
		return critique, nil
	}
	return "", fmt.Errorf("unexpected system prompt: %.40q", messages[0].Content)
}

func newAdapterBackedService(t *testing.T, client domain.CompletionClient) StudySessionService {
	t.Helper()
	gen, err := quizgen.NewQuizGenerator(client, testModel, zap.NewNop())
	require.NoError(t, err)
	ref, err := reflector.NewQuizReflector(client, testModel, zap.NewNop())
	require.NoError(t, err)
	return NewStudySessionService(gen, ref, nil, testModel, zap.NewNop())
}

func TestStudySession_AdapterBacked_ApprovedImmediately(t *testing.T) {
	client := &scriptedClient{critiques: []string{domain.ApprovalSentinel}}
	svc := newAdapterBackedService(t, client)

	quiz, err := svc.RunStudySession(context.Background(), waterNotes, 3)
	require.NoError(t, err)

	assert.Equal(t, "quiz v1", quiz)
	assert.Equal(t, 1, client.generates)
	assert.Equal(t, 1, client.reflects)
	assert.Empty(t, client.regenerations)
}

func TestStudySession_AdapterBacked_NeverApproved(t *testing.T) {
	critiques := []string{"Q1: only two options.", "Q2: answer key missing.", "Q3: distractor too obvious."}
	client := &scriptedClient{critiques: critiques}
	svc := newAdapterBackedService(t, client)

	result, err := svc.Run(context.Background(), waterNotes, 3)
	require.NoError(t, err)

	assert.Equal(t, "quiz v3", result.Quiz, "returns the 2nd regeneration")
	assert.False(t, result.Approved)
	assert.Equal(t, 1, client.generates)
	assert.Equal(t, 3, client.reflects)
	require.Len(t, client.regenerations, 2)

	for i, payload := range client.regenerations {
		assert.Contains(t, payload, waterNotes)
		assert.Contains(t, payload, fmt.Sprintf("quiz v%d", i+1), "previous quiz included verbatim")
		assert.Contains(t, payload, critiques[i], "critique included verbatim")
	}
}
