package validation

import (
	"strings"

	"quiz-reflect/internal/domain"
	"quiz-reflect/internal/dto"
)

const (
	// MaxIterationsLimit caps the reflection budget a caller may request.
	MaxIterationsLimit = 10
	// MaxNotesLength bounds request bodies; the CLI has no such limit.
	MaxNotesLength = 100_000
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateStudySessionRequest validates a study session request body
func (v *Validator) ValidateStudySessionRequest(req *dto.StudySessionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Notes) == "" {
		errors = append(errors, domain.NewMissingFieldError("notes"))
	} else if len(req.Notes) > MaxNotesLength {
		errors = append(errors, domain.NewOutOfRangeError("notes", len(req.Notes), 1, MaxNotesLength))
	}

	if req.MaxIterations != nil {
		if n := *req.MaxIterations; n < 0 || n > MaxIterationsLimit {
			errors = append(errors, domain.NewOutOfRangeError("max_iterations", n, 0, MaxIterationsLimit))
		}
	}

	return errors
}
