package handler

import (
	"context"
	"time"

	"quiz-reflect/internal/domain"
	"quiz-reflect/internal/dto"
	"quiz-reflect/internal/logger"
	"quiz-reflect/internal/middleware"
	"quiz-reflect/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StudySessionHandler handles study session HTTP requests
type StudySessionHandler struct {
	service              service.StudySessionService
	cache                domain.Cache
	defaultMaxIterations int
}

// NewStudySessionHandler creates a new StudySessionHandler instance.
// cache may be nil when completion caching is disabled.
func NewStudySessionHandler(service service.StudySessionService, cache domain.Cache, defaultMaxIterations int) *StudySessionHandler {
	return &StudySessionHandler{
		service:              service,
		cache:                cache,
		defaultMaxIterations: defaultMaxIterations,
	}
}

// CreateStudySession godoc
// @Summary Run a study session
// @Description Generates a quiz from lecture notes and refines it until approved or the budget is spent.
// @Description Notes are limited to 100000 bytes and max_iterations to 0..10 on this endpoint; the CLI has no such limits.
// @Description With the Redis completion cache enabled, identical notes replay cached model replies until cache_ttls.completion expires.
// @Tags study-sessions
// @Accept json
// @Produce json
// @Param request body dto.StudySessionRequest true "Lecture notes"
// @Success 200 {object} dto.StudySessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /study-sessions [post]
func (h *StudySessionHandler) CreateStudySession(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.LocalsStudySessionRequest).(*dto.StudySessionRequest)
	if !ok {
		req = new(dto.StudySessionRequest)
		if err := c.BodyParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	maxIterations := h.defaultMaxIterations
	if req.MaxIterations != nil {
		maxIterations = *req.MaxIterations
	}

	result, err := h.service.Run(c.UserContext(), req.Notes, maxIterations)
	if err != nil {
		logger.Get().Error("Study session failed", zap.Error(err))
		return err
	}

	return c.JSON(dto.NewStudySessionResponse(result))
}

// HealthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *StudySessionHandler) HealthCheck(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok"}
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Cache ping failed", zap.Error(err))
			resp.Cache = "unavailable"
		} else {
			resp.Cache = "ok"
		}
	}
	return c.JSON(resp)
}

// RegisterRoutes mounts the study session API under /api.
func (h *StudySessionHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", h.HealthCheck)
	api.Post("/study-sessions", middleware.NewValidationMiddleware().ValidateStudySessionRequest(), h.CreateStudySession)
}
