package middleware

import (
	"time"

	"quiz-reflect/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		// On error the status is written later by ErrorHandler.
		if err != nil {
			logger.Get().Info("HTTP request", append(fields, zap.Error(err))...)
			return err
		}
		logger.Get().Info("HTTP request", append(fields, zap.Int("status", c.Response().StatusCode()))...)
		return nil
	}
}
