package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"quiz-reflect/internal/app"
	"quiz-reflect/internal/config"
	"quiz-reflect/internal/domain"
	"quiz-reflect/internal/logger"
	"quiz-reflect/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runOptions struct {
	notesFile     string
	maxIterations int
	model         string
	logLevel      string
	quiet         bool
	noCache       bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one study session and print the final quiz",
		Long: "Run one study session and print the final quiz.\n\n" +
			"When redis.address is set, model replies are cached for cache_ttls.completion " +
			"keyed by the exact prompt, so rerunning the same notes replays the cached quiz " +
			"and critiques. Pass --no-cache for a fresh draft.",
		Example: "  study_session run --notes-file lecture.md\n" +
			"  cat lecture.md | study_session run --max-iterations 5 --quiet",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudySession(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.notesFile, "notes-file", "f", "", "Lecture notes file (reads stdin when empty or \"-\")")
	cmd.Flags().IntVarP(&opts.maxIterations, "max-iterations", "n", -1, "Reflection budget (defaults to session.max_iterations)")
	cmd.Flags().StringVar(&opts.model, "model", "", "Model name (overrides llm.model)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level for diagnostics on stderr (overrides logger.level)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Print only the final quiz")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Skip the Redis completion cache for this run")
	return cmd
}

func runStudySession(cmd *cobra.Command, opts *runOptions) error {
	notes, err := readNotes(cmd.InOrStdin(), opts.notesFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(notes) == "" {
		return errors.New("no lecture notes provided")
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	maxIterations, err := applyRunFlags(cmd, opts, cfg)
	if err != nil {
		return err
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Logger.Level, err)
	}
	defer logger.Sync()

	var observer domain.SessionObserver
	if !opts.quiet {
		observer = report.NewConsoleReporter(cmd.ErrOrStderr())
	}

	application, err := app.New(cmd.Context(), cfg, observer, logger.Get())
	if err != nil {
		return err
	}
	defer application.Close()

	result, err := application.Service.Run(cmd.Context(), notes, maxIterations)
	if err != nil {
		logger.Get().Error("Study session failed", zap.Error(err))
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(result.Quiz, "\n"))
	return err
}

// applyRunFlags folds explicitly set flags into cfg and returns the
// reflection budget for this run.
func applyRunFlags(cmd *cobra.Command, opts *runOptions, cfg *config.Config) (int, error) {
	if opts.model != "" {
		cfg.LLM.Model = opts.model
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logger.Level = opts.logLevel
	}
	if opts.noCache {
		cfg.Redis.Address = ""
	}

	maxIterations := cfg.Session.MaxIterations
	if cmd.Flags().Changed("max-iterations") {
		if opts.maxIterations < 0 {
			return 0, fmt.Errorf("--max-iterations must not be negative, got %d", opts.maxIterations)
		}
		maxIterations = opts.maxIterations
	}
	return maxIterations, nil
}

// readNotes reads the whole notes document from path, or from stdin when
// path is empty or "-".
func readNotes(stdin io.Reader, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read notes from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read notes file: %w", err)
	}
	return string(data), nil
}
