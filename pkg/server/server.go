// Package server provides the public entry point for initializing the
// buildcraft service.
//
// This package exists in pkg/ (not internal/) so that other binaries can
// compose the service with their own provider or middleware.
//
// Usage:
//
//	srv, err := server.New(ctx)
//	http.ListenAndServe(":8080", srv.Handler)
//
// Usage (custom provider):
//
//	cfg := server.LoadConfig()
//	cfg.Provider = myProvider
//	srv, err := server.NewWithConfig(ctx, cfg)
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/exilekitchen/buildcraft/internal/api"
	"github.com/exilekitchen/buildcraft/internal/api/handlers"
	"github.com/exilekitchen/buildcraft/internal/buildpayload"
	"github.com/exilekitchen/buildcraft/internal/config"
	"github.com/exilekitchen/buildcraft/internal/craft"
	modelrouter "github.com/exilekitchen/buildcraft/internal/router"
	"github.com/exilekitchen/buildcraft/internal/sanitizer"
	"github.com/exilekitchen/buildcraft/internal/telemetry"
	"github.com/exilekitchen/buildcraft/pkg/contracts"
)

// ErrProviderNotConfigured is returned by crafts when no API key was set.
var ErrProviderNotConfigured = errors.New("AI provider is not configured: set GEMINI_API_KEY")

// Config is the public configuration for the service.
type Config struct {
	Port          int
	Version       string
	LogLevel      string
	OTELEnabled   bool
	OTELEndpoint  string
	ServiceName   string
	GeminiAPIKey  string
	PrimaryModel  string
	FallbackModel string
	ModelCacheTTL time.Duration
	Temperature   float64
	CORSOrigins   []string
	Labels        map[string]string

	// Provider replaces the Gemini driver when set. If it also implements
	// contracts.ModelLister, its list feeds the availability cache.
	Provider contracts.Provider
}

// Server holds the initialized service.
type Server struct {
	// Handler is the HTTP handler with all routes and middleware.
	Handler http.Handler

	// Policy is the model attempt policy, exposed for diagnostics.
	Policy *modelrouter.Policy

	// Config is the server configuration.
	Config *Config

	// Port is the port the server should listen on.
	Port int

	// ShutdownFunc should be called on graceful shutdown to flush telemetry.
	ShutdownFunc func(context.Context) error
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	cfg := config.Load()
	return &Config{
		Port:          cfg.Port,
		Version:       cfg.Version,
		LogLevel:      cfg.LogLevel,
		OTELEnabled:   cfg.Telemetry.Enabled,
		OTELEndpoint:  cfg.Telemetry.OTLPEndpoint,
		ServiceName:   cfg.Telemetry.ServiceName,
		GeminiAPIKey:  cfg.Gemini.APIKey,
		PrimaryModel:  cfg.Gemini.Model,
		FallbackModel: cfg.Gemini.FallbackModel,
		ModelCacheTTL: cfg.Gemini.ModelCacheTTL,
		Temperature:   cfg.Gemini.Temperature,
		CORSOrigins:   cfg.CORS.AllowedOrigins,
		Labels:        cfg.Labels,
	}
}

// New initializes all components from the environment and returns a ready
// Server.
func New(ctx context.Context) (*Server, error) {
	return NewWithConfig(ctx, LoadConfig())
}

// NewWithConfig initializes the service with an explicit configuration.
func NewWithConfig(ctx context.Context, pubCfg *Config) (*Server, error) {
	cfg := internalConfig(pubCfg)

	shutdown, err := telemetry.Init(cfg.Telemetry, cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	provider := pubCfg.Provider
	if provider == nil {
		provider, err = newGeminiProvider(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
	}
	log.Info().Str("provider", provider.Kind()).Msg("✅ AI provider initialized")

	var lister contracts.ModelLister
	if l, ok := provider.(contracts.ModelLister); ok {
		lister = l
	}
	modelCfg := modelrouter.ModelConfig{
		Primary:  cfg.Gemini.Model,
		Fallback: cfg.Gemini.FallbackModel,
	}
	catalog := modelrouter.NewModelCatalog(lister, cfg.Gemini.ModelCacheTTL)
	policy := modelrouter.NewPolicy(modelCfg, catalog)
	log.Info().
		Strs("chain", modelrouter.BuildModelAttemptChain(modelCfg)).
		Dur("cache_ttl", cfg.Gemini.ModelCacheTTL).
		Msg("✅ Model attempt policy initialized")

	san := sanitizer.New(cfg.Labels)
	orchestrator := craft.NewOrchestrator(provider, policy,
		craft.WithSerializer(buildpayload.NewSerializer(san)),
	)

	h := handlers.New(orchestrator, policy, san)
	router := api.NewRouter(cfg, h)

	return &Server{
		Handler:      router,
		Policy:       policy,
		Config:       pubCfg,
		Port:         cfg.Port,
		ShutdownFunc: shutdown,
	}, nil
}

func internalConfig(p *Config) *config.Config {
	cfg := &config.Config{
		Port:     p.Port,
		Version:  p.Version,
		LogLevel: p.LogLevel,
		Gemini: config.GeminiConfig{
			APIKey:        p.GeminiAPIKey,
			Model:         p.PrimaryModel,
			FallbackModel: p.FallbackModel,
			ModelCacheTTL: p.ModelCacheTTL,
			Temperature:   p.Temperature,
		},
		Telemetry: config.TelemetryConfig{
			Enabled:      p.OTELEnabled,
			OTLPEndpoint: p.OTELEndpoint,
			ServiceName:  p.ServiceName,
		},
		CORS:   config.CORSConfig{AllowedOrigins: p.CORSOrigins},
		Labels: p.Labels,
	}
	if cfg.Port <= 0 {
		cfg.Port = 8080
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	return cfg
}

func newGeminiProvider(ctx context.Context, cfg config.GeminiConfig) (contracts.Provider, error) {
	if cfg.APIKey == "" {
		log.Warn().Msg("⚠️  GEMINI_API_KEY is not set, crafting will fail until it is configured")
		return unconfiguredProvider{}, nil
	}
	driver, err := modelrouter.NewGeminiDriver(ctx, cfg.APIKey, float32(cfg.Temperature))
	if err != nil {
		return nil, fmt.Errorf("init gemini: %w", err)
	}
	return driver, nil
}

// unconfiguredProvider fails every call so the rest of the API (normalize,
// sanitize, guardrails) stays usable without credentials.
type unconfiguredProvider struct{}

func (unconfiguredProvider) Kind() string { return "unconfigured" }

func (unconfiguredProvider) Generate(ctx context.Context, model, prompt string) (string, error) {
	return "", ErrProviderNotConfigured
}
