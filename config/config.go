package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"sitegen/internal/ai"
	"sitegen/internal/sources"
)

// Config holds all configuration for the application.
// Mapstructure tags map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"
	AppEnv        string `mapstructure:"APP_ENV"`        // "development" or "production"
	LogLevel      string `mapstructure:"LOG_LEVEL"`      // DEBUG, INFO, WARN, ERROR

	// AI Configuration
	OpenAIKey             string  `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL         string  `mapstructure:"OPENAI_BASE_URL"` // any OpenAI-compatible endpoint
	ModelID               string  `mapstructure:"MODEL_ID"`
	Temperature           float64 `mapstructure:"TEMPERATURE"`
	MaxTokens             int     `mapstructure:"MAX_TOKENS"`
	RequestTimeoutSeconds int     `mapstructure:"REQUEST_TIMEOUT_SECONDS"`

	// Pipeline Configuration
	Candidates      int    `mapstructure:"CANDIDATES"`       // completions sampled per stage call
	SelectionPolicy string `mapstructure:"SELECTION_POLICY"` // last, first, last-valid, best-scored
	ChainOfThought  bool   `mapstructure:"CHAIN_OF_THOUGHT"`
	FeedLayoutGuide bool   `mapstructure:"FEED_LAYOUT_GUIDE"`

	// Sources
	StyleGuidePath     string `mapstructure:"STYLE_GUIDE_PATH"`
	LayoutTemplatePath string `mapstructure:"LAYOUT_TEMPLATE_PATH"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":          ":8080",
	"APP_ENV":                 "development",
	"LOG_LEVEL":               "INFO",
	"OPENAI_API_KEY":          "",
	"OPENAI_BASE_URL":         "",
	"MODEL_ID":                "gpt-4o",
	"TEMPERATURE":             0.3,
	"MAX_TOKENS":              4096,
	"REQUEST_TIMEOUT_SECONDS": 120,
	"CANDIDATES":              1,
	"SELECTION_POLICY":        ai.PolicyLast,
	"CHAIN_OF_THOUGHT":        true,
	"FEED_LAYOUT_GUIDE":       false,
	"STYLE_GUIDE_PATH":        sources.DefaultStyleGuidePath,
	"LAYOUT_TEMPLATE_PATH":    sources.DefaultLayoutTemplatePath,
}

// LoadConfig reads configuration from an optional config.yaml in path and
// from environment variables, which win over the file.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		slog.Debug("config file ('config.yaml') not found, relying on environment variables", "path", path)
	} else {
		slog.Info("using configuration file", "file", v.ConfigFileUsed())
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.OpenAIKey == "" {
		slog.Warn("OPENAI_API_KEY is not set")
	}
	return config, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	var problems []error
	if c.OpenAIKey == "" && c.OpenAIBaseURL == "" {
		problems = append(problems, errors.New("OPENAI_API_KEY is required unless OPENAI_BASE_URL points at a keyless endpoint"))
	}
	if c.ModelID == "" {
		problems = append(problems, errors.New("MODEL_ID is empty"))
	}
	if c.Candidates < 1 {
		problems = append(problems, fmt.Errorf("CANDIDATES must be at least 1, got %d", c.Candidates))
	}
	if _, err := ai.ParsePolicy(c.SelectionPolicy); err != nil {
		problems = append(problems, fmt.Errorf("SELECTION_POLICY: %w", err))
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		problems = append(problems, fmt.Errorf("TEMPERATURE must be between 0 and 2, got %v", c.Temperature))
	}
	if c.MaxTokens < 0 {
		problems = append(problems, fmt.Errorf("MAX_TOKENS must not be negative, got %d", c.MaxTokens))
	}
	if c.RequestTimeoutSeconds < 0 {
		problems = append(problems, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must not be negative, got %d", c.RequestTimeoutSeconds))
	}
	return errors.Join(problems...)
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool { return c.AppEnv == "production" }

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// GeneratorOptions maps the AI settings onto the model client.
func (c Config) GeneratorOptions(logger *slog.Logger) ai.Options {
	return ai.Options{
		APIKey:      c.OpenAIKey,
		BaseURL:     c.OpenAIBaseURL,
		Model:       c.ModelID,
		Temperature: float32(c.Temperature),
		MaxTokens:   c.MaxTokens,
		JSONMode:    true,
		Timeout:     c.RequestTimeout(),
		Logger:      logger,
	}
}

// CallOptions maps the pipeline settings onto every stage call.
func (c Config) CallOptions(logger *slog.Logger) (ai.CallOptions, error) {
	policy, err := ai.ParsePolicy(c.SelectionPolicy)
	if err != nil {
		return ai.CallOptions{}, err
	}
	return ai.CallOptions{
		Candidates:     c.Candidates,
		Policy:         policy,
		ChainOfThought: c.ChainOfThought,
		Logger:         logger,
	}, nil
}
