package dto

import "quiz-reflect/internal/domain"

// StudySessionRequest is the body of POST /api/study-sessions
// @Description Lecture notes and an optional reflection budget
type StudySessionRequest struct {
	Notes string `json:"notes"`
	// MaxIterations defaults to the configured session budget when omitted.
	MaxIterations *int `json:"max_iterations,omitempty"`
}

// StudySessionResponse reports the outcome of one generate/reflect session
type StudySessionResponse struct {
	ID            string   `json:"id"`
	Quiz          string   `json:"quiz"`
	Approved      bool     `json:"approved"`
	Reflections   int      `json:"reflections"`
	Regenerations int      `json:"regenerations"`
	Critiques     []string `json:"critiques"`
	Model         string   `json:"model"`
	DurationMS    int64    `json:"duration_ms"`
}

// NewStudySessionResponse maps a finished session onto the API shape.
func NewStudySessionResponse(r *domain.SessionResult) *StudySessionResponse {
	critiques := r.Critiques
	if critiques == nil {
		critiques = []string{}
	}
	return &StudySessionResponse{
		ID:            r.ID,
		Quiz:          r.Quiz,
		Approved:      r.Approved,
		Reflections:   r.Reflections,
		Regenerations: r.Regenerations,
		Critiques:     critiques,
		Model:         r.Model,
		DurationMS:    r.Duration.Milliseconds(),
	}
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache,omitempty"`
}
