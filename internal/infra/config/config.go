package config

import (
	"fmt"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrConfig marks configuration problems. They are the only fatal errors of the bot.
var ErrConfig = fmt.Errorf("invalid configuration")

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken    string        `mapstructure:"practicum_token"`
	PracticumEndpoint string        `mapstructure:"practicum_endpoint"`
	TelegramToken     string        `mapstructure:"telegram_token"`
	TelegramChatID    string        `mapstructure:"telegram_chat_id"` // Numeric ID or @channel username, passed through as is
	TelegramAPIURL    string        `mapstructure:"telegram_api_url"` // Empty means api.telegram.org
	RetryPeriod       time.Duration `mapstructure:"retry_period"`     // Fixed sleep between poll cycles
	APITimeout        time.Duration `mapstructure:"api_timeout"`      // Zero disables the per-request timeout
	SendAttempts      uint          `mapstructure:"send_attempts"`    // Delivery attempts per message
	SendRetryDelay    time.Duration `mapstructure:"send_retry_delay"`
	LogLevel          string        `mapstructure:"log_level"`
	Environment       string        `mapstructure:"environment"`
	LogFile           string        `mapstructure:"log_file"` // Empty disables the rotating file
}

var defaults = map[string]any{
	"practicum_endpoint": "https://practicum.yandex.ru/api/user_api/homework_statuses/",
	"telegram_api_url":   "",
	"retry_period":       "10m",
	"api_timeout":        "30s",
	"send_attempts":      3,
	"send_retry_delay":   "2s",
	"log_level":          "info",        // Default log level
	"environment":        "development", // Default environment
	"log_file":           "main.log",
}

// Read loads configuration from .env files and the environment without validating it.
// With no envFiles the .env file of the working directory is tried.
func Read(envFiles ...string) (*AppConfig, error) {
	// Errors are ignored if the default .env file doesn't exist.
	// godotenv.Load will not override existing env variables.
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("%w: could not load env file: %v", ErrConfig, err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for _, key := range []string{"practicum_token", "telegram_token", "telegram_chat_id"} {
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)
	return cfg, nil
}

// Load reads the configuration and validates it.
func Load(envFiles ...string) (*AppConfig, error) {
	cfg, err := Read(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every credential is present.
func (c *AppConfig) Validate() error {
	missing := c.MissingCredentials()
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s is not set", ErrConfig, strings.Join(missing, ", "))
	}
	c.TelegramChatID = strings.TrimSpace(c.TelegramChatID)

	if c.RetryPeriod < time.Second {
		return fmt.Errorf("%w: RETRY_PERIOD must be at least 1s, got %s", ErrConfig, c.RetryPeriod)
	}
	if c.SendAttempts == 0 {
		return fmt.Errorf("%w: SEND_ATTEMPTS must be positive", ErrConfig)
	}
	return nil
}

// MissingCredentials returns the names of the empty required variables.
func (c *AppConfig) MissingCredentials() []string {
	var missing []string
	tokens := []struct {
		name  string
		value string
	}{
		{"PRACTICUM_TOKEN", c.PracticumToken},
		{"TELEGRAM_TOKEN", c.TelegramToken},
		{"TELEGRAM_CHAT_ID", c.TelegramChatID},
	}
	for _, token := range tokens {
		if strings.TrimSpace(token.value) == "" {
			missing = append(missing, token.name)
		}
	}
	return missing
}

// Redacted returns a copy with secrets masked, suitable for printing.
func (c *AppConfig) Redacted() AppConfig {
	out := *c
	out.PracticumToken = mask(c.PracticumToken)
	out.TelegramToken = mask(c.TelegramToken)
	return out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
}
