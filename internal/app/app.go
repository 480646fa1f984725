package app

import (
	"context"
	"fmt"
	"time"

	"quiz-reflect/internal/adapter"
	"quiz-reflect/internal/adapter/llm"
	"quiz-reflect/internal/adapter/quizgen"
	"quiz-reflect/internal/adapter/reflector"
	"quiz-reflect/internal/cache"
	"quiz-reflect/internal/config"
	"quiz-reflect/internal/domain"
	"quiz-reflect/internal/service"

	"go.uber.org/zap"
)

// App holds the wired study session components shared by the CLI and API.
type App struct {
	Config  *config.Config
	Service service.StudySessionService
	// Cache is nil when redis.address is unset or unreachable.
	Cache domain.Cache

	closers []func() error
}

// New validates cfg and wires the completion client, generator, reflector
// and session service. A Redis cache is attached when configured; failing
// to reach it only disables caching.
func New(ctx context.Context, cfg *config.Config, observer domain.SessionObserver, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, domain.NewError(domain.CodeConfiguration, "invalid configuration", err)
	}

	a := &App{Config: cfg}

	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, completion cache disabled",
				zap.String("address", cfg.Redis.Address),
				zap.Error(err),
			)
		} else {
			cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
			a.Cache = cacheAdapter
			a.closers = append(a.closers, cacheAdapter.Close)
			logger.Info("Completion cache enabled", zap.String("address", cfg.Redis.Address))
		}
	}

	ttl := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Completion, 24*time.Hour)
	client, err := llm.NewCompletionClient(cfg.LLM, a.Cache, ttl, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	generator, err := quizgen.NewQuizGenerator(client, cfg.LLM.Model, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create quiz generator: %w", err)
	}
	quizReflector, err := reflector.NewQuizReflector(client, cfg.LLM.Model, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create quiz reflector: %w", err)
	}

	a.Service = service.NewStudySessionService(generator, quizReflector, observer, cfg.LLM.Model, logger)
	logger.Info("Study session service initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.Int("default_max_iterations", cfg.Session.MaxIterations),
	)
	return a, nil
}

// Close releases the Redis connection, if any.
func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
