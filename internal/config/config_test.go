package config

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/susu3304/lootsplit/internal/hunt"
	"github.com/susu3304/lootsplit/internal/settlement"
	"golang.org/x/text/language"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DISCORD_TOKEN", "WEB_BIND", "CORS_ORIGINS", "MAX_INPUT_BYTES", "LOG_LEVEL",
		"LOG_DEVELOPMENT", "SESSION_TIMEZONE", "SESSION_DATE_LAYOUT", "SETTLEMENT_ORDER",
		"STRICT_PARSING", "SHARE_LOCALE", "SHARE_FOOTER",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.DiscordToken)
	assert.Equal(t, "0.0.0.0:3000", cfg.WebBind)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, int64(65536), cfg.MaxInputBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "UTC", cfg.SessionTimezone)
	assert.Equal(t, hunt.DefaultDateLayout, cfg.SessionDateLayout)
	assert.Equal(t, language.English, cfg.Locale())

	opts, err := cfg.HuntOptions()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, opts.Location)
	assert.Equal(t, settlement.InputOrder, opts.Order)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEB_BIND", "127.0.0.1:8080")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SESSION_TIMEZONE", "Europe/Warsaw")
	t.Setenv("SETTLEMENT_ORDER", "largest-first")
	t.Setenv("STRICT_PARSING", "true")
	t.Setenv("SHARE_LOCALE", "de")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, language.German, cfg.Locale())

	opts, err := cfg.HuntOptions()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Warsaw", opts.Location.String())
	assert.Equal(t, settlement.LargestFirst, opts.Order)
	assert.True(t, opts.Strict)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string][2]string{
		"bad level":    {"LOG_LEVEL", "loud"},
		"bad timezone": {"SESSION_TIMEZONE", "Mars/Olympus"},
		"bad order":    {"SETTLEMENT_ORDER", "random"},
		"bad int":      {"MAX_INPUT_BYTES", "lots"},
		"tiny limit":   {"MAX_INPUT_BYTES", "10"},
		"bad bool":     {"STRICT_PARSING", "maybe"},
		"bad bind":     {"WEB_BIND", "not a bind"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
