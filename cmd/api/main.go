// @title Quiz Reflect API
// @version 1.0
// @description Generates multiple-choice quizzes from lecture notes and refines them through LLM self-review.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-reflect/internal/app"
	"quiz-reflect/internal/config"
	"quiz-reflect/internal/handler"
	"quiz-reflect/internal/logger"
	"quiz-reflect/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "api",
		Short:        "Serve the study session HTTP API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return serve(configPath)
		},
	}
	rootCmd.Flags().String("config", "", "Path to config.yaml")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(configPath string) error {
	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Progress is reported through the logs; there is no console observer here.
	application, err := app.New(ctx, cfg, nil, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize application", zap.Error(err))
		return err
	}
	defer application.Close()

	studySessionHandler := handler.NewStudySessionHandler(application.Service, application.Cache, cfg.Session.MaxIterations)

	server := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	server.Use(middleware.RequestLogger())
	server.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	server.Use(recover.New())

	studySessionHandler.RegisterRoutes(server)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := server.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	appLogger.Info("Server exited gracefully")
	return nil
}
