package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// LabelEnvPrefix prefixes per-token label overrides, e.g.
// BUILDCRAFT_LABEL_MID_TIER="Medium Budget".
const LabelEnvPrefix = "BUILDCRAFT_LABEL_"

// Config holds all configuration for the buildcraft service.
type Config struct {
	Port      int
	Version   string
	LogLevel  string
	Gemini    GeminiConfig
	Telemetry TelemetryConfig
	CORS      CORSConfig
	// Labels overrides the primary-language label per canonical enum token.
	Labels map[string]string
}

type GeminiConfig struct {
	APIKey        string
	Model         string
	FallbackModel string
	// ModelCacheTTL bounds how long the live model list is trusted.
	ModelCacheTTL time.Duration
	Temperature   float64
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	cfg := &Config{
		Port:     envInt("BUILDCRAFT_PORT", 8080),
		Version:  envStr("BUILDCRAFT_VERSION", "0.1.0"),
		LogLevel: envStr("BUILDCRAFT_LOG_LEVEL", "info"),
		Gemini: GeminiConfig{
			APIKey:        envStr("GEMINI_API_KEY", ""),
			Model:         envStr("GEMINI_MODEL", ""),
			FallbackModel: envStr("GEMINI_FALLBACK_MODEL", ""),
			ModelCacheTTL: envDuration("GEMINI_MODEL_CACHE_TTL", 10*time.Minute),
			Temperature:   envFloat("GEMINI_TEMPERATURE", 0.7),
		},
		Telemetry: TelemetryConfig{
			Enabled:      envBool("OTEL_ENABLED", false),
			OTLPEndpoint: envStr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  envStr("OTEL_SERVICE_NAME", "buildcraft"),
		},
		CORS: CORSConfig{
			AllowedOrigins: envList("BUILDCRAFT_CORS_ORIGINS", []string{"*"}),
		},
		Labels: map[string]string{},
	}

	if path := envStr("BUILDCRAFT_LABELS_FILE", ""); path != "" {
		labels, err := LoadLabels(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Ignoring label file")
		}
		for token, label := range labels {
			cfg.Labels[token] = label
		}
	}
	for token, label := range envLabels() {
		cfg.Labels[token] = label
	}
	return cfg
}

// labelFile is the YAML layout of BUILDCRAFT_LABELS_FILE:
//
//	labels:
//	  mid_tier: Medium Budget
//	  league_starter: Day-One Build
type labelFile struct {
	Labels map[string]string `yaml:"labels"`
}

// LoadLabels reads a YAML label file. Token keys are lower-cased.
func LoadLabels(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read label file: %w", err)
	}
	var f labelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse label file: %w", err)
	}
	out := make(map[string]string, len(f.Labels))
	for token, label := range f.Labels {
		out[strings.ToLower(strings.TrimSpace(token))] = label
	}
	return out, nil
}

func envLabels() map[string]string {
	out := map[string]string{}
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, LabelEnvPrefix) || value == "" {
			continue
		}
		out[strings.ToLower(strings.TrimPrefix(key, LabelEnvPrefix))] = value
	}
	return out
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envDuration accepts Go durations ("10m") or bare seconds ("600").
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
