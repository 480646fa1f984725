package domain

import (
	"context"
)

// QuizGenerationService authors quizzes from study notes.
type QuizGenerationService interface {
	// Generate produces a raw quiz text from the notes. The output is not
	// parsed or validated.
	Generate(ctx context.Context, notes string) (string, error)

	// Regenerate produces a revised quiz given the original notes, the
	// previous quiz and the critique it received.
	Regenerate(ctx context.Context, notes, previousQuiz, critique string) (string, error)
}

// QuizReflectionService critiques a quiz against the QA rubric.
type QuizReflectionService interface {
	// Reflect returns either a critique containing ApprovalSentinel or a
	// structured list of defects.
	Reflect(ctx context.Context, quiz string) (string, error)
}

// SessionObserver receives progress notifications from a running session.
// Implementations must not influence the loop.
type SessionObserver interface {
	InitialQuiz(sessionID, quiz string)
	Reflection(sessionID string, iteration, maxIterations int, critique string, approved bool)
	RegeneratedQuiz(sessionID string, iteration int, quiz string)
	Finished(result *SessionResult)
}
