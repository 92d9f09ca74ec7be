package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exilekitchen/buildcraft/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"BUILDCRAFT_PORT", "GEMINI_MODEL_CACHE_TTL", "GEMINI_TEMPERATURE", "BUILDCRAFT_LABELS_FILE"} {
		t.Setenv(key, "")
	}
	cfg := config.Load()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.Gemini.ModelCacheTTL)
	assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 1e-9)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("BUILDCRAFT_PORT", "9090")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_MODEL_CACHE_TTL", "90")
	t.Setenv("GEMINI_TEMPERATURE", "not-a-number")
	t.Setenv("BUILDCRAFT_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := config.Load()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 90*time.Second, cfg.Gemini.ModelCacheTTL)
	assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 1e-9)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Labels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("labels:\n  MID_TIER: Medium Budget\n  mirror_tier: Whale Tier\n"), 0o600))
	t.Setenv("BUILDCRAFT_LABELS_FILE", path)
	t.Setenv("BUILDCRAFT_LABEL_MIRROR_TIER", "Endgame")

	cfg := config.Load()
	assert.Equal(t, "Medium Budget", cfg.Labels["mid_tier"])
	assert.Equal(t, "Endgame", cfg.Labels["mirror_tier"], "env overrides the label file")
}

func TestLoadLabels_Errors(t *testing.T) {
	_, err := config.LoadLabels(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("labels: [unclosed"), 0o600))
	_, err = config.LoadLabels(path)
	assert.Error(t, err)
}
