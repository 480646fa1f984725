package quizgen

import (
	"context"
	"fmt"
	"time"

	"quiz-reflect/internal/domain"

	"go.uber.org/zap"
)

// QuizGenerator implements domain.QuizGenerationService on a completion client.
type QuizGenerator struct {
	client    domain.CompletionClient
	modelName string
	logger    *zap.Logger
}

// NewQuizGenerator creates a new instance of QuizGenerator.
func NewQuizGenerator(client domain.CompletionClient, modelName string, logger *zap.Logger) (*QuizGenerator, error) {
	if client == nil {
		return nil, fmt.Errorf("completion client cannot be nil")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizGenerator{
		client:    client,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Generate authors the first quiz. Notes are embedded verbatim, whatever
// their length, and the reply is returned without parsing.
func (g *QuizGenerator) Generate(ctx context.Context, notes string) (string, error) {
	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: GenerationSystemPrompt},
		{Role: domain.RoleUser, Content: fmt.Sprintf(generationUserTemplate, notes)},
	}
	return g.complete(ctx, "generate", messages)
}

// Regenerate asks for a revised quiz with the notes, the previous quiz and
// the critique it received all included verbatim.
func (g *QuizGenerator) Regenerate(ctx context.Context, notes, previousQuiz, critique string) (string, error) {
	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: RegenerationSystemPrompt},
		{Role: domain.RoleUser, Content: fmt.Sprintf(regenerationUserTemplate, notes, previousQuiz, critique)},
	}
	return g.complete(ctx, "regenerate", messages)
}

func (g *QuizGenerator) complete(ctx context.Context, phase string, messages []domain.ChatMessage) (string, error) {
	g.logger.Debug("Sending quiz prompt",
		zap.String("phase", phase),
		zap.String("model", g.modelName),
		zap.String("user_prompt", messages[len(messages)-1].Content),
	)

	start := time.Now()
	quiz, err := g.client.Complete(ctx, messages, g.modelName)
	if err != nil {
		g.logger.Error("Quiz completion failed", zap.String("phase", phase), zap.Error(err))
		return "", domain.NewLLMServiceError(phase, err)
	}

	g.logger.Info("Quiz completion received",
		zap.String("phase", phase),
		zap.Int("quiz_chars", len(quiz)),
		zap.Duration("latency", time.Since(start)),
	)
	return quiz, nil
}

var _ domain.QuizGenerationService = (*QuizGenerator)(nil)
