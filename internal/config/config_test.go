package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "REQUEST_TIMEOUT", "SOLVE_TIMEOUT",
		"MAX_REQUEST_BODY_SIZE", "MAX_BATCH_SOURCES",
		"SEEDER_TYPE", "SOLVER_PRESETS_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 20*time.Second, cfg.SolveTimeout)
	assert.Equal(t, int64(4*1024*1024), cfg.MaxRequestBodySize)
	assert.Equal(t, 4096, cfg.MaxBatchSources)
	assert.Equal(t, "grid", cfg.SeederType)
	assert.Empty(t, cfg.PresetsPath)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("SEEDER_TYPE", "halton")
	t.Setenv("MAX_BATCH_SOURCES", "128")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "halton", cfg.SeederType)
	assert.Equal(t, 128, cfg.MaxBatchSources)
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	clearConfigEnv(t)
	for _, port := range []string{"abc", "0", "70000", "-1"} {
		t.Setenv("PORT", port)
		_, err := LoadFromEnv()
		assert.Error(t, err, "port %q should be rejected", port)
	}
}

func TestLoadFromEnv_InvalidSeederType(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("SEEDER_TYPE", "spiral")

	_, err := LoadFromEnv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SEEDER_TYPE")
}

func TestLoadFromEnv_InvalidBodySize(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MAX_REQUEST_BODY_SIZE", "-5")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnv_InvalidDurationFallsBack(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestServerAddress(t *testing.T) {
	cfg := &Config{Host: " 127.0.0.1 ", Port: " 8080 "}
	assert.Equal(t, "127.0.0.1:8080", cfg.ServerAddress())
}
