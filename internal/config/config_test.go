package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "setlistfm", cfg.DataSource)
	assert.Equal(t, "https://api.setlist.fm/rest/1.0", cfg.SetlistFMBaseURL)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "lp-setlists-cache", cfg.CacheKey)
	assert.Equal(t, "fromZeroTourData", cfg.TourCacheKey)
	assert.Equal(t, 3, cfg.FetchWorkers)
	assert.Equal(t, 10, cfg.MaxPages)
	assert.Equal(t, 2.0, cfg.UpstreamRPS)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Empty(t, cfg.RefreshSchedule)
	assert.Error(t, cfg.EnvFileErr)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TOUR_NAME", "")
	os.Unsetenv("TOUR_NAME")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TOUR_NAME=Hybrid Theory Tour\n"), 0o644))

	cfg := Load()

	assert.NoError(t, cfg.EnvFileErr)
	assert.Equal(t, "Hybrid Theory Tour", cfg.TourName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL_HOURS", "6")
	t.Setenv("FETCH_WORKERS", "8")
	t.Setenv("UPSTREAM_RPS", "0.5")
	t.Setenv("DATA_SOURCE", "static")
	t.Setenv("REFRESH_SCHEDULE", "@every 6h")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 6*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 8, cfg.FetchWorkers)
	assert.Equal(t, 0.5, cfg.UpstreamRPS)
	assert.Equal(t, "static", cfg.DataSource)
	assert.Equal(t, "@every 6h", cfg.RefreshSchedule)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FETCH_WORKERS", "many")
	t.Setenv("API_RATE_LIMIT", "fast")

	cfg := Load()

	assert.Equal(t, 3, cfg.FetchWorkers)
	assert.Equal(t, 10.0, cfg.APIRateLimit)
}
