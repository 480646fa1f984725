package middleware

import (
	"quiz-reflect/internal/dto"
	"quiz-reflect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LocalsStudySessionRequest is the c.Locals key holding the validated body.
const LocalsStudySessionRequest = "validated_study_session_request"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateStudySessionRequest parses and validates the study session body
func (vm *ValidationMiddleware) ValidateStudySessionRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.StudySessionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errors := vm.validator.ValidateStudySessionRequest(&req); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(LocalsStudySessionRequest, &req)
		return c.Next()
	}
}
