package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderOpenAISDK = "openai-sdk"

	DefaultModel   = "openai/gpt-oss-120b"
	DefaultBaseURL = "https://api.groq.com/openai/v1"
)

type Config struct {
	LLM       LLMConfig
	Session   SessionConfig
	Logger    LoggerConfig
	Server    ServerConfig
	Redis     RedisConfig
	CacheTTLs CacheTTLConfig
}

type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Timeout     time.Duration `yaml:"timeout"`
	Temperature *float64      `yaml:"temperature"` // nil when unset
}

type SessionConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheTTLConfig struct {
	Completion string `yaml:"completion"`
}

// LoadConfig reads config.yaml (when present) and environment overrides.
// An explicit path takes precedence over the search paths.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.model", DefaultModel)
	v.SetDefault("llm.base_url", DefaultBaseURL)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("session.max_iterations", 3)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache_ttls.completion", "24h")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Running without a file is fine; a file that was asked for is not.
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		if absPath, err := filepath.Abs(configFile); err == nil {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
		}
	}

	config := &Config{
		LLM: LLMConfig{
			Provider: v.GetString("llm.provider"),
			Model:    v.GetString("llm.model"),
			BaseURL:  v.GetString("llm.base_url"),
			APIKey:   v.GetString("llm.api_key"),
			Timeout:  v.GetDuration("llm.timeout"),
		},
		Session: SessionConfig{
			MaxIterations: v.GetInt("session.max_iterations"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		CacheTTLs: CacheTTLConfig{
			Completion: v.GetString("cache_ttls.completion"),
		},
	}

	if v.IsSet("llm.temperature") {
		temperature := v.GetFloat64("llm.temperature")
		config.LLM.Temperature = &temperature
	}

	dotenvDirs := []string{".", "./config"}
	if path != "" {
		dotenvDirs = append([]string{filepath.Dir(path)}, dotenvDirs...)
	}
	dotenv, err := loadDotEnv(dotenvDirs...)
	if err != nil {
		return nil, err
	}

	// Provider keys use their conventional variable names. The process
	// environment wins over .env.
	if config.LLM.APIKey == "" {
		if key := lookupEnv(dotenv, "GROQ_API_KEY"); key != "" {
			config.LLM.APIKey = key
		} else if key := lookupEnv(dotenv, "OPENAI_API_KEY"); key != "" {
			config.LLM.APIKey = key
		}
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}

	return config, nil
}

// loadDotEnv reads the first .env file found in dirs. It returns nil when
// there is none.
func loadDotEnv(dirs ...string) (*viper.Viper, error) {
	for _, dir := range dirs {
		file := filepath.Join(dir, ".env")
		if _, err := os.Stat(file); err != nil {
			continue
		}
		dv := viper.New()
		dv.SetConfigFile(file)
		dv.SetConfigType("env")
		if err := dv.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		return dv, nil
	}
	return nil, nil
}

func lookupEnv(dotenv *viper.Viper, key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if dotenv == nil {
		return ""
	}
	return dotenv.GetString(key)
}

// Validate checks the settings needed to build a completion client.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderOpenAISDK:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm api key is not configured: set GROQ_API_KEY or llm.api_key")
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm model cannot be empty")
	}
	if c.Session.MaxIterations < 0 {
		return fmt.Errorf("session.max_iterations must not be negative, got %d", c.Session.MaxIterations)
	}
	return nil
}

// ParseTTLStringOrDefault parses a duration string, falling back to def when
// the string is empty or malformed.
func (c *Config) ParseTTLStringOrDefault(ttlString string, def time.Duration) time.Duration {
	if ttlString == "" {
		return def
	}
	d, err := time.ParseDuration(ttlString)
	if err != nil || d < 0 {
		return def
	}
	return d
}
