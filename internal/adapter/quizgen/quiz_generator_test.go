package quizgen_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quiz-reflect/internal/adapter/quizgen"
	"quiz-reflect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, messages []domain.ChatMessage, model string) (string, error) {
	args := m.Called(ctx, messages, model)
	return args.String(0), args.Error(1)
}

const (
	testModel = "openai/gpt-oss-120b"
	testNotes = "Water boils at 100C at sea level."
	testQuiz  = "1. At what temperature does water boil at sea level?\nA) 90C\nB) 100C\nC) 110C\nD) 120C\n\n**Answer Key**\n1. B"
)

func TestNewQuizGenerator(t *testing.T) {
	logger := zap.NewNop()

	svc, err := quizgen.NewQuizGenerator(new(MockCompletionClient), testModel, logger)
	assert.NoError(t, err)
	assert.NotNil(t, svc)

	_, err = quizgen.NewQuizGenerator(nil, testModel, logger)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "completion client cannot be nil")

	_, err = quizgen.NewQuizGenerator(new(MockCompletionClient), "", logger)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "model name cannot be empty")
}

func TestQuizGenerator_Generate(t *testing.T) {
	client := new(MockCompletionClient)
	svc, err := quizgen.NewQuizGenerator(client, testModel, zap.NewNop())
	require.NoError(t, err)

	var sent []domain.ChatMessage
	client.On("Complete", mock.Anything, mock.Anything, testModel).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]domain.ChatMessage) }).
		Return(testQuiz, nil).Once()

	quiz, err := svc.Generate(context.Background(), testNotes)
	require.NoError(t, err)
	assert.Equal(t, testQuiz, quiz, "quiz text is returned unparsed")

	require.Len(t, sent, 2)
	assert.Equal(t, domain.RoleSystem, sent[0].Role)
	assert.Equal(t, quizgen.GenerationSystemPrompt, sent[0].Content)
	assert.Equal(t, domain.RoleUser, sent[1].Role)
	assert.Equal(t, "Here are the lecture notes:\n\n"+testNotes, sent[1].Content)
	client.AssertExpectations(t)
}

func TestQuizGenerator_Generate_LongNotesPassThrough(t *testing.T) {
	client := new(MockCompletionClient)
	svc, err := quizgen.NewQuizGenerator(client, testModel, zap.NewNop())
	require.NoError(t, err)

	notes := strings.Repeat("Structured data fits tables. 100% of rows have keys. ", 5000)
	client.On("Complete", mock.Anything, mock.MatchedBy(func(msgs []domain.ChatMessage) bool {
		return strings.HasSuffix(msgs[1].Content, notes)
	}), testModel).Return(testQuiz, nil).Once()

	_, err = svc.Generate(context.Background(), notes)
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestQuizGenerator_Regenerate(t *testing.T) {
	client := new(MockCompletionClient)
	svc, err := quizgen.NewQuizGenerator(client, testModel, zap.NewNop())
	require.NoError(t, err)

	critique := "Q1: Only one question is present; the quiz requires exactly 3."
	var sent []domain.ChatMessage
	client.On("Complete", mock.Anything, mock.Anything, testModel).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]domain.ChatMessage) }).
		Return("revised quiz", nil).Once()

	quiz, err := svc.Regenerate(context.Background(), testNotes, testQuiz, critique)
	require.NoError(t, err)
	assert.Equal(t, "revised quiz", quiz)

	require.Len(t, sent, 2)
	assert.Equal(t, domain.RoleSystem, sent[0].Role)
	assert.Equal(t, quizgen.RegenerationSystemPrompt, sent[0].Content)
	assert.NotEqual(t, quizgen.GenerationSystemPrompt, sent[0].Content)

	user := sent[1].Content
	assert.Contains(t, user, testNotes)
	assert.Contains(t, user, testQuiz)
	assert.Contains(t, user, critique)
	assert.Less(t, strings.Index(user, testNotes), strings.Index(user, testQuiz))
	assert.Less(t, strings.Index(user, testQuiz), strings.Index(user, critique))
}

func TestQuizGenerator_ClientError(t *testing.T) {
	client := new(MockCompletionClient)
	svc, err := quizgen.NewQuizGenerator(client, testModel, zap.NewNop())
	require.NoError(t, err)

	upstream := errors.New("429 rate limit reached")
	client.On("Complete", mock.Anything, mock.Anything, testModel).Return("", upstream)

	_, err = svc.Generate(context.Background(), testNotes)
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
	assert.True(t, domain.IsCode(err, domain.CodeLLMServiceError))

	_, err = svc.Regenerate(context.Background(), testNotes, testQuiz, "critique")
	assert.ErrorIs(t, err, upstream)
	assert.Contains(t, err.Error(), "regenerate")
}

func TestGenerationSystemPrompt_Rubric(t *testing.T) {
	for _, want := range []string{
		"exactly 3 questions",
		"exactly 4 answer choices (A–D)",
		"Randomize the position of the correct answer",
		"Answer Key",
		"definition/recall",
		"conceptual understanding",
		"application/analysis",
		"not obviously wrong",
		"numbered list",
	} {
		assert.Contains(t, quizgen.GenerationSystemPrompt, want)
	}
}
