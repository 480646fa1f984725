package reflector

import (
	"context"
	"fmt"
	"time"

	"quiz-reflect/internal/domain"

	"go.uber.org/zap"
)

// QuizReflector implements domain.QuizReflectionService. It performs no
// checks of its own; the verdict is whatever the model answers.
type QuizReflector struct {
	client    domain.CompletionClient
	modelName string
	logger    *zap.Logger
}

// NewQuizReflector creates a new instance of QuizReflector.
func NewQuizReflector(client domain.CompletionClient, modelName string, logger *zap.Logger) (*QuizReflector, error) {
	if client == nil {
		return nil, fmt.Errorf("completion client cannot be nil")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizReflector{
		client:    client,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Reflect critiques the quiz text as given.
func (r *QuizReflector) Reflect(ctx context.Context, quiz string) (string, error) {
	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: ReflectionSystemPrompt},
		{Role: domain.RoleUser, Content: fmt.Sprintf(reflectionUserTemplate, quiz)},
	}

	start := time.Now()
	critique, err := r.client.Complete(ctx, messages, r.modelName)
	if err != nil {
		r.logger.Error("Quiz reflection failed", zap.String("model", r.modelName), zap.Error(err))
		return "", domain.NewLLMServiceError("reflect", err)
	}

	r.logger.Info("Quiz reflection received",
		zap.Bool("approved", domain.IsApproval(critique)),
		zap.Int("critique_chars", len(critique)),
		zap.Duration("latency", time.Since(start)),
	)
	r.logger.Debug("Quiz critique", zap.String("critique", critique))
	return critique, nil
}

var _ domain.QuizReflectionService = (*QuizReflector)(nil)
