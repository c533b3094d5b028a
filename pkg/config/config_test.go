package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "environment: development\n")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "https://query1.finance.yahoo.com", c.Quotes.BaseURL)
	assert.Equal(t, 1000.0, c.Quotes.FallbackPrice)
	assert.Equal(t, 15*time.Second, c.Quotes.CacheTTL)
	assert.Equal(t, "termpulse", c.Cache.Redis.Prefix)
	assert.Equal(t, 20.0, c.RateLimit.Capacity)
	assert.False(t, c.Stream.Enabled)
	assert.False(t, c.Kafka.Enabled)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
quotes:
  fallback_price: 1500
  timeout: 3s
logging:
  level: debug
  format: json
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 1500.0, c.Quotes.FallbackPrice)
	assert.Equal(t, 3*time.Second, c.Quotes.Timeout)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRequiresEnvironment(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment is required")
}

func TestLoadStreamEnabledNeedsAPIKey(t *testing.T) {
	path := writeConfig(t, `
environment: development
stream:
  enabled: true
  symbols: ["OANDA:XAU_USD"]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream.api_key")
}

func TestLoadKafkaEnabledNeedsBrokers(t *testing.T) {
	path := writeConfig(t, `
environment: development
kafka:
  enabled: true
  topic: termpulse.analyses
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka.brokers")
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: development\n")

	t.Setenv("PORT", "9191")
	t.Setenv("QUOTE_BASE_URL", "http://localhost:1234")
	t.Setenv("FALLBACK_PRICE", "2500")
	t.Setenv("STREAM_SYMBOLS", "OANDA:XAU_USD,BINANCE:BTCUSDT")
	t.Setenv("REDIS_ADDR", "localhost:6380")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, c.Server.Port)
	assert.Equal(t, "http://localhost:1234", c.Quotes.BaseURL)
	assert.Equal(t, 2500.0, c.Quotes.FallbackPrice)
	assert.Equal(t, []string{"OANDA:XAU_USD", "BINANCE:BTCUSDT"}, c.Stream.Symbols)
	assert.Equal(t, "localhost:6380", c.Cache.Redis.Addr)
}

func TestLoadWithEnvIgnoresBadValues(t *testing.T) {
	path := writeConfig(t, "environment: development\n")

	t.Setenv("PORT", "not-a-port")
	t.Setenv("FALLBACK_PRICE", "not-a-price")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 1000.0, c.Quotes.FallbackPrice)
}
