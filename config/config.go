package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of the chat engine. Zero-valued API keys disable
// the corresponding provider adapter; with no keys set the engine runs purely
// rule-based.
type Config struct {
	// Provider credentials. An empty key disables that adapter.
	SambaNovaAPIKey  string `env:"CHATCORE_SAMBANOVA_API_KEY"`
	SambaNovaBaseURL string `env:"CHATCORE_SAMBANOVA_BASE_URL"`
	OpenAIAPIKey     string `env:"CHATCORE_OPENAI_API_KEY"`
	AnthropicAPIKey  string `env:"CHATCORE_ANTHROPIC_API_KEY"`

	// Provider chain tuning.
	ConfidenceFloor  float64       `env:"CHATCORE_CONFIDENCE_FLOOR" envDefault:"0.6"`
	CallTimeout      time.Duration `env:"CHATCORE_CALL_TIMEOUT" envDefault:"3s"`
	FailureThreshold int           `env:"CHATCORE_FAILURE_THRESHOLD" envDefault:"3"`
	BreakerCoolDown  time.Duration `env:"CHATCORE_BREAKER_COOLDOWN" envDefault:"60s"`
	RateLimit        float64       `env:"CHATCORE_RATE_LIMIT" envDefault:"0"`
	RateBurst        int           `env:"CHATCORE_RATE_BURST" envDefault:"1"`

	// Session store tuning.
	SessionTTL   time.Duration `env:"CHATCORE_SESSION_TTL" envDefault:"30m"`
	HistoryLimit int           `env:"CHATCORE_HISTORY_LIMIT" envDefault:"10"`

	// Logging.
	LogLevel  string `env:"CHATCORE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"CHATCORE_LOG_FORMAT" envDefault:"json"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.ConfidenceFloor < 0 || c.ConfidenceFloor > 1 {
		return fmt.Errorf("confidence floor %v outside [0,1]", c.ConfidenceFloor)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive, got %v", c.CallTimeout)
	}
	if c.FailureThreshold <= 0 {
		return fmt.Errorf("failure threshold must be positive, got %d", c.FailureThreshold)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %v", c.SessionTTL)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.HistoryLimit)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log format %q not supported, use json or text", c.LogFormat)
	}
	return nil
}
