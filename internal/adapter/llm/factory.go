package llm

import (
	"net/http"
	"time"

	"quiz-reflect/internal/config"
	"quiz-reflect/internal/domain"

	"github.com/tmc/langchaingo/llms/ollama"
	langchainopenai "github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const defaultOllamaServerURL = "http://localhost:11434"

// Documented API defaults, used when llm.temperature is unset because
// langchaingo cannot omit the field.
const (
	defaultOpenAITemperature = 1.0
	defaultOllamaTemperature = 0.8
)

func temperatureOrDefault(t *float64, def float64) float64 {
	if t == nil {
		return def
	}
	return *t
}

// NewCompletionClient builds the configured provider client. When cache is
// non-nil the client is wrapped so identical conversations are served from it.
func NewCompletionClient(cfg config.LLMConfig, c domain.Cache, cacheTTL time.Duration, logger *zap.Logger) (domain.CompletionClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Model == "" {
		return nil, domain.NewConfigurationError("llm model cannot be empty")
	}

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	var client domain.CompletionClient
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		if cfg.APIKey == "" {
			return nil, domain.NewConfigurationError("llm api key is not configured: set GROQ_API_KEY or llm.api_key")
		}
		model, err := langchainopenai.New(
			langchainopenai.WithToken(cfg.APIKey),
			langchainopenai.WithModel(cfg.Model),
			langchainopenai.WithBaseURL(cfg.BaseURL),
			langchainopenai.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, domain.NewError(domain.CodeConfiguration, "failed to create OpenAI-compatible LLM client", err)
		}
		temperature := temperatureOrDefault(cfg.Temperature, defaultOpenAITemperature)
		if client, err = NewLangchainClient(model, cfg.Timeout, temperature, logger); err != nil {
			return nil, err
		}
	case config.ProviderOllama:
		serverURL := cfg.BaseURL
		if serverURL == "" || serverURL == config.DefaultBaseURL {
			serverURL = defaultOllamaServerURL
		}
		model, err := ollama.New(
			ollama.WithServerURL(serverURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			return nil, domain.NewError(domain.CodeConfiguration, "failed to create Ollama LLM client", err)
		}
		temperature := temperatureOrDefault(cfg.Temperature, defaultOllamaTemperature)
		if client, err = NewLangchainClient(model, cfg.Timeout, temperature, logger); err != nil {
			return nil, err
		}
	case config.ProviderOpenAISDK:
		if cfg.APIKey == "" {
			return nil, domain.NewConfigurationError("llm api key is not configured: set GROQ_API_KEY or llm.api_key")
		}
		sdkClient, err := NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout, cfg.Temperature, logger)
		if err != nil {
			return nil, domain.NewError(domain.CodeConfiguration, "failed to create OpenAI SDK client", err)
		}
		client = sdkClient
	default:
		return nil, domain.NewConfigurationError("unsupported llm provider: " + cfg.Provider)
	}

	logger.Info("Completion client initialized",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Bool("cached", c != nil),
	)

	if c == nil {
		return client, nil
	}
	cached, err := NewCachedClient(client, c, cacheTTL, logger)
	if err != nil {
		return nil, err
	}
	return cached, nil
}
