package service

import (
	"context"
	"strings"
	"time"

	"quiz-reflect/internal/domain"
	"quiz-reflect/internal/util"

	"go.uber.org/zap"
)

// StudySessionService runs the generate → reflect → regenerate loop.
type StudySessionService interface {
	// RunStudySession returns the final quiz text, approved or not.
	RunStudySession(ctx context.Context, notes string, maxIterations int) (string, error)
	// Run is RunStudySession with the session's bookkeeping attached.
	Run(ctx context.Context, notes string, maxIterations int) (*domain.SessionResult, error)
}

type studySessionService struct {
	generator domain.QuizGenerationService
	reflector domain.QuizReflectionService
	observer  domain.SessionObserver
	modelName string
	logger    *zap.Logger
}

// NewStudySessionService wires the generator and reflector. observer may be
// nil when no progress output is wanted.
func NewStudySessionService(
	generator domain.QuizGenerationService,
	reflector domain.QuizReflectionService,
	observer domain.SessionObserver,
	modelName string,
	logger *zap.Logger,
) StudySessionService {
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &studySessionService{
		generator: generator,
		reflector: reflector,
		observer:  observer,
		modelName: modelName,
		logger:    logger,
	}
}

func (s *studySessionService) RunStudySession(ctx context.Context, notes string, maxIterations int) (string, error) {
	result, err := s.Run(ctx, notes, maxIterations)
	if err != nil {
		return "", err
	}
	return result.Quiz, nil
}

// Run performs at most maxIterations reflections and maxIterations-1
// regenerations. It stops as soon as a critique contains the approval
// sentinel. Any client error ends the session with no partial result.
func (s *studySessionService) Run(ctx context.Context, notes string, maxIterations int) (*domain.SessionResult, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, domain.NewInvalidInputError("notes cannot be empty")
	}
	if maxIterations < 0 {
		return nil, domain.NewInvalidInputError("max_iterations must not be negative")
	}

	result := &domain.SessionResult{
		ID:        util.NewULID(),
		Model:     s.modelName,
		StartedAt: time.Now(),
		Critiques: []string{},
	}
	l := s.logger.With(zap.String("session_id", result.ID))
	l.Info("Study session started",
		zap.Int("notes_chars", len(notes)),
		zap.Int("max_iterations", maxIterations),
	)

	state := domain.NewSessionState(notes, maxIterations)
	quiz, err := s.generator.Generate(ctx, state.Notes)
	if err != nil {
		l.Error("Initial quiz generation failed", zap.Error(err))
		return nil, err
	}
	state.CurrentQuiz = quiz
	s.observer.InitialQuiz(result.ID, state.CurrentQuiz)

	for !state.Exhausted() {
		state.Phase = domain.PhaseReflecting
		critique, err := s.reflector.Reflect(ctx, state.CurrentQuiz)
		if err != nil {
			l.Error("Quiz reflection failed", zap.Int("iteration", state.IterationIndex+1), zap.Error(err))
			return nil, err
		}
		result.Reflections++
		result.Critiques = append(result.Critiques, critique)

		approved := domain.IsApproval(critique)
		s.observer.Reflection(result.ID, state.IterationIndex+1, state.MaxIterations, critique, approved)
		if approved {
			state.Phase = domain.PhaseApproved
			l.Info("Quiz approved", zap.Int("iteration", state.IterationIndex+1))
			break
		}

		// A quiz regenerated after the last reflection would never be reviewed.
		if state.HasRegenerationBudget() {
			state.Phase = domain.PhaseRegenerating
			regenerated, err := s.generator.Regenerate(ctx, state.Notes, state.CurrentQuiz, critique)
			if err != nil {
				l.Error("Quiz regeneration failed", zap.Int("iteration", state.IterationIndex+1), zap.Error(err))
				return nil, err
			}
			state.CurrentQuiz = regenerated
			result.Regenerations++
			s.observer.RegeneratedQuiz(result.ID, state.IterationIndex+1, state.CurrentQuiz)
		}
		state.IterationIndex++
	}

	if state.Phase != domain.PhaseApproved {
		state.Phase = domain.PhaseExhausted
	}

	result.Quiz = state.CurrentQuiz
	result.Approved = state.Phase == domain.PhaseApproved
	result.Duration = time.Since(result.StartedAt)

	l.Info("Study session finished",
		zap.Bool("approved", result.Approved),
		zap.Int("reflections", result.Reflections),
		zap.Int("regenerations", result.Regenerations),
		zap.Duration("duration", result.Duration),
	)
	s.observer.Finished(result)
	return result, nil
}

type noopObserver struct{}

func (noopObserver) InitialQuiz(string, string)                {}
func (noopObserver) Reflection(string, int, int, string, bool) {}
func (noopObserver) RegeneratedQuiz(string, int, string)       {}
func (noopObserver) Finished(*domain.SessionResult)            {}
