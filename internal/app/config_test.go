package app

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 15*time.Second, cfg.AppReadTimeout)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Zero(t, cfg.SubmitFailureEvery)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DEFAULT_PAGE_SIZE", "50")
	t.Setenv("SUBMIT_FAILURE_EVERY", "3")
	t.Setenv("FIXTURES_DIR", "/srv/fixtures")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 50, cfg.DefaultPageSize)
	assert.Equal(t, 3, cfg.SubmitFailureEvery)
	assert.Equal(t, "/srv/fixtures", cfg.FixturesDir)
}

func TestLoadConfigRejectsInvalidSettings(t *testing.T) {
	t.Run("page size", func(t *testing.T) {
		t.Setenv("DEFAULT_PAGE_SIZE", "25")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page size")
	})
	t.Run("rate limit", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
		_, err := LoadConfig()
		require.Error(t, err)
	})
	t.Run("log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log level")
	})
	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("APP_READ_TIMEOUT", "soon")
		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&Config{LogFormat: "json"}, &buf).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	newLogger(&Config{LogFormat: "pretty"}, &buf).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Config{LogLevel: "warn"}, &buf)
	logger.Info("quiet")
	logger.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "msg=loud")
}
