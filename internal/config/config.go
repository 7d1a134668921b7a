package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultAPIBaseURL is the loopback address the nutrition server listens on in development.
	DefaultAPIBaseURL = "http://localhost:5002/api"

	SuggestBackendAPI    = "api"
	SuggestBackendGemini = "gemini"
)

// Config holds the configuration for the application.
type Config struct {
	APIBaseURL     string        `yaml:"api_base"`
	APISecret      string        `yaml:"api_secret"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"`
	SuggestBackend string        `yaml:"suggest_backend"`
	GeminiAPIKey   string        `yaml:"gemini_api_key"`
	LogEnv         string        `yaml:"log_env"`
	Port           string        `yaml:"port"`

	// Telegram Config
	TelegramBotToken       string  `yaml:"telegram_bot_token"`
	TelegramWebhookURL     string  `yaml:"telegram_webhook_url"`
	TelegramAllowedUserIDs []int64 `yaml:"telegram_allowed_user_ids"`
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first when present, and
// PLATEPAL_CONFIG may name a YAML file providing base values that the
// environment overrides.
func NewFromEnv() (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:     DefaultAPIBaseURL,
		SuggestBackend: SuggestBackendAPI,
		LogEnv:         "development",
		Port:           "8080",
	}

	if path := os.Getenv("PLATEPAL_CONFIG"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("PLATEPAL_API_BASE"); v != "" {
		cfg.APIBaseURL = v
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if v := os.Getenv("PLATEPAL_API_SECRET"); v != "" {
		cfg.APISecret = v
	}

	if v := os.Getenv("PLATEPAL_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PLATEPAL_HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}

	if v := os.Getenv("SUGGEST_BACKEND"); v != "" {
		cfg.SuggestBackend = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	switch cfg.SuggestBackend {
	case SuggestBackendAPI:
	case SuggestBackendGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown SUGGEST_BACKEND %q", cfg.SuggestBackend)
	}

	if v := os.Getenv("LOG_ENV"); v != "" {
		cfg.LogEnv = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	// Telegram Config (Optional for CLI, required for Bot)
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramBotToken = v
	}
	if v := os.Getenv("TELEGRAM_WEBHOOK_URL"); v != "" {
		cfg.TelegramWebhookURL = v
	}
	if v := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); v != "" {
		ids, err := parseIDs(v)
		if err != nil {
			return nil, err
		}
		cfg.TelegramAllowedUserIDs = ids
	}

	return cfg, nil
}

// RequireTelegram reports the first missing setting the bot cannot start without.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}

// IsAllowed reports whether a Telegram user may talk to the bot. An empty
// allow list admits everyone.
func (c *Config) IsAllowed(userID int64) bool {
	if len(c.TelegramAllowedUserIDs) == 0 {
		return true
	}
	for _, id := range c.TelegramAllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
