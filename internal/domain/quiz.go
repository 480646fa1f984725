package domain

import (
	"strings"
	"time"
)

// ApprovalSentinel is the literal marker the reflector emits when a quiz has
// no defects. The reflection prompt and IsApproval must use this same value.
const ApprovalSentinel = "<OK>"

// DefaultMaxIterations is the reflection budget used when none is configured.
const DefaultMaxIterations = 3

// IsApproval reports whether a critique approves the quiz. Any critique that
// contains the sentinel counts as approval, even if it also lists defects.
func IsApproval(critique string) bool {
	return strings.Contains(critique, ApprovalSentinel)
}

// SessionPhase names the step of the study session loop.
type SessionPhase string

const (
	PhaseGenerating   SessionPhase = "generating"
	PhaseReflecting   SessionPhase = "reflecting"
	PhaseRegenerating SessionPhase = "regenerating"
	PhaseApproved     SessionPhase = "approved"
	PhaseExhausted    SessionPhase = "exhausted"
)

// SessionState is the mutable state of one running study session.
// It holds exactly one current quiz at any point of the loop.
type SessionState struct {
	Notes          string
	CurrentQuiz    string
	IterationIndex int
	MaxIterations  int
	Phase          SessionPhase
}

// NewSessionState creates the state of a session about to generate its
// first quiz.
func NewSessionState(notes string, maxIterations int) *SessionState {
	return &SessionState{
		Notes:         notes,
		MaxIterations: maxIterations,
		Phase:         PhaseGenerating,
	}
}

// Exhausted reports whether the reflection budget has been consumed.
func (s *SessionState) Exhausted() bool {
	return s.IterationIndex >= s.MaxIterations
}

// HasRegenerationBudget reports whether a regenerated quiz would still get a
// reflection pass before the budget runs out.
func (s *SessionState) HasRegenerationBudget() bool {
	return s.IterationIndex < s.MaxIterations-1
}

// SessionResult is what a finished study session hands back to its caller.
// Quiz is the best attempt, not a validated one, unless Approved is true.
type SessionResult struct {
	ID            string
	Quiz          string
	Approved      bool
	Reflections   int
	Regenerations int
	Critiques     []string
	Model         string
	StartedAt     time.Time
	Duration      time.Duration
}
