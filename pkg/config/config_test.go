package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var configKeys = []string{
	"PORT", "DATABASE_URL", "REDIS_URL", "JWT_SECRET",
	"JWT_ACCESS_EXPIRY", "JWT_REFRESH_EXPIRY",
	"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URI",
	"ANTHROPIC_API_KEY", "ADZUNA_APP_ID", "ADZUNA_APP_KEY", "ADZUNA_COUNTRY",
	"SCAN_INTERVAL", "ACTIVE_USER_WINDOW", "SCAN_BATCH_SIZE", "JOB_FETCH_CRON",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		_ = os.Unsetenv(key)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	assert.Equal(t, time.Minute, cfg.ScanInterval)
	assert.Equal(t, 5*time.Minute, cfg.ActiveUserWindow)
	assert.Equal(t, int64(5), cfg.ScanBatchSize)
	assert.Equal(t, "us", cfg.AdzunaCountry)
	assert.Equal(t, "0 8 * * *", cfg.JobFetchCron)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	_ = os.Setenv("PORT", "9090")
	_ = os.Setenv("SCAN_INTERVAL", "30s")
	_ = os.Setenv("ACTIVE_USER_WINDOW", "10m")
	_ = os.Setenv("SCAN_BATCH_SIZE", "20")
	_ = os.Setenv("ANTHROPIC_API_KEY", "test-key-123")
	defer clearEnv(t)

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ScanInterval)
	assert.Equal(t, 10*time.Minute, cfg.ActiveUserWindow)
	assert.Equal(t, int64(20), cfg.ScanBatchSize)
	assert.Equal(t, "test-key-123", cfg.AnthropicAPIKey)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	_ = os.Setenv("SCAN_INTERVAL", "not-a-duration")
	_ = os.Setenv("SCAN_BATCH_SIZE", "not-a-number")
	defer clearEnv(t)

	cfg := Load()

	assert.Equal(t, time.Minute, cfg.ScanInterval)
	assert.Equal(t, int64(5), cfg.ScanBatchSize)
}
