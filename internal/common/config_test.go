package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Clients.Gemini.GetTimeout())
	assert.Equal(t, 50, cfg.Scheduler.NewsFetchLimit)
	assert.Equal(t, "@every 30m", cfg.Scheduler.NewsRefreshSpec)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finbuddy.toml")
	content := `
environment = "production"

[server]
port = 9001

[clients.gemini]
model = "gemini-2.5-pro"
timeout = "2s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.Clients.Gemini.Model)
	assert.Equal(t, 2*time.Second, cfg.Clients.Gemini.GetTimeout())
	// Untouched sections keep defaults
	assert.Equal(t, 10, cfg.Clients.MarketData.RateLimit)
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/finbuddy.toml")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FINBUDDY_PORT", "7777")
	t.Setenv("FINBUDDY_GEMINI_API_KEY", "test-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.Clients.Gemini.APIKey)
}

func TestGetTimeout_InvalidFallsBack(t *testing.T) {
	md := MarketDataConfig{Timeout: "bogus"}
	assert.Equal(t, 10*time.Second, md.GetTimeout())

	nf := NewsFeedConfig{}
	assert.Equal(t, 15*time.Second, nf.GetTimeout())

	g := GeminiConfig{Timeout: "250ms"}
	assert.Equal(t, 250*time.Millisecond, g.GetTimeout())
}
