package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/settlement"
	"golang.org/x/text/language"
)

type Config struct {
	// Discord Bot (disabled when empty)
	DiscordToken string

	// Web Server
	WebBind       string   `validate:"required,hostname_port"`
	CORSOrigins   []string `validate:"min=1,dive,required"`
	MaxInputBytes int64    `validate:"min=1024,max=1048576"`

	// Logging
	LogLevel       string `validate:"oneof=debug info warn error"`
	LogDevelopment bool

	// Session parsing
	SessionTimezone   string `validate:"required,timezone"`
	SessionDateLayout string `validate:"required"`
	SettlementOrder   string `validate:"oneof=input largest-first"`
	StrictParsing     bool

	// Share text
	ShareLocale string `validate:"required,bcp47_language_tag"`
	ShareFooter string
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		WebBind:           getEnvDefault("WEB_BIND", "0.0.0.0:3000"),
		CORSOrigins:       splitList(getEnvDefault("CORS_ORIGINS", "*")),
		LogLevel:          strings.ToLower(getEnvDefault("LOG_LEVEL", "info")),
		SessionTimezone:   getEnvDefault("SESSION_TIMEZONE", "UTC"),
		SessionDateLayout: getEnvDefault("SESSION_DATE_LAYOUT", hunt.DefaultDateLayout),
		SettlementOrder:   getEnvDefault("SETTLEMENT_ORDER", "input"),
		ShareLocale:       getEnvDefault("SHARE_LOCALE", "en"),
		ShareFooter:       os.Getenv("SHARE_FOOTER"),
	}

	var err error
	if cfg.MaxInputBytes, err = getEnvInt("MAX_INPUT_BYTES", 64*1024); err != nil {
		return nil, err
	}
	if cfg.LogDevelopment, err = getEnvBool("LOG_DEVELOPMENT", false); err != nil {
		return nil, err
	}
	if cfg.StrictParsing, err = getEnvBool("STRICT_PARSING", false); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config after flags or tests have changed it.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// HuntOptions converts the session settings into parser options.
func (c *Config) HuntOptions() (hunt.Options, error) {
	loc, err := time.LoadLocation(c.SessionTimezone)
	if err != nil {
		return hunt.Options{}, fmt.Errorf("SESSION_TIMEZONE: %w", err)
	}
	order, ok := settlement.ParseOrder(c.SettlementOrder)
	if !ok {
		return hunt.Options{}, fmt.Errorf("SETTLEMENT_ORDER: unknown order %q", c.SettlementOrder)
	}
	return hunt.Options{
		Location:   loc,
		DateLayout: c.SessionDateLayout,
		Strict:     c.StrictParsing,
		Order:      order,
	}, nil
}

// Locale returns the share text locale.
func (c *Config) Locale() language.Tag {
	tag, err := language.Parse(c.ShareLocale)
	if err != nil {
		return language.English
	}
	return tag
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
