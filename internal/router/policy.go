// Package router implements the model attempt policy.
//
// The policy decides which Gemini models are tried, and in which order, for a
// single craft request: the configured primary, the configured fallback, then
// the canonical quality-descending list. Model ids are deduplicated, and when
// the live model list is known the chain is narrowed to models the API
// actually serves.
package router

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/exilekitchen/buildcraft/pkg/models"
)

// Default model ids used when configuration leaves them unset.
const (
	DefaultPrimaryModel  = "gemini-2.5-flash"
	DefaultFallbackModel = "gemini-2.5-flash-lite"
)

// CanonicalFallbackModels is the ordered, quality-descending fallback list.
var CanonicalFallbackModels = []string{
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
}

// ModelConfig is the configured model preference. Blank values are unset.
type ModelConfig struct {
	Primary  string
	Fallback string
	// Canonical overrides CanonicalFallbackModels when non-nil.
	Canonical []string
}

// BuildModelAttemptChain returns [primary, fallback, ...canonical] with
// blanks and duplicates removed, primary first. It is never empty.
func BuildModelAttemptChain(cfg ModelConfig) []string {
	primary := strings.TrimSpace(cfg.Primary)
	if primary == "" {
		primary = DefaultPrimaryModel
	}
	fallback := strings.TrimSpace(cfg.Fallback)
	if fallback == "" {
		fallback = DefaultFallbackModel
	}
	canonical := cfg.Canonical
	if canonical == nil {
		canonical = CanonicalFallbackModels
	}

	seen := make(map[string]bool, len(canonical)+2)
	chain := make([]string, 0, len(canonical)+2)
	for _, m := range append([]string{primary, fallback}, canonical...) {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		chain = append(chain, m)
	}
	return chain
}

// ── Policy ──────────────────────────────────────────────────

// Policy combines the static attempt chain with the availability cache.
type Policy struct {
	config  ModelConfig
	chain   []string
	catalog *ModelCatalog
}

// NewPolicy creates a policy. catalog may be nil, in which case the chain is
// never filtered.
func NewPolicy(cfg ModelConfig, catalog *ModelCatalog) *Policy {
	return &Policy{
		config:  cfg,
		chain:   BuildModelAttemptChain(cfg),
		catalog: catalog,
	}
}

// Chain returns the models to attempt for one request. When the live list is
// known, models it does not contain are skipped; if that would leave nothing
// the unfiltered chain is returned.
func (p *Policy) Chain(ctx context.Context) []string {
	full := append([]string(nil), p.chain...)
	if p.catalog == nil {
		return full
	}
	available, known := p.catalog.Available(ctx)
	if !known {
		return full
	}

	for _, configured := range []string{p.config.Primary, p.config.Fallback} {
		configured = strings.TrimSpace(configured)
		if configured != "" && !available[configured] {
			log.Warn().Str("model", configured).Msg("Configured model is not served by the provider")
		}
	}

	filtered := make([]string, 0, len(full))
	for _, m := range full {
		if available[m] {
			filtered = append(filtered, m)
		}
	}
	if len(filtered) == 0 {
		log.Warn().Strs("chain", full).Msg("No model in the attempt chain is listed as available, keeping full chain")
		return full
	}
	return filtered
}

// Availability returns the current chain and the cached availability snapshot.
func (p *Policy) Availability(ctx context.Context) models.ModelAvailability {
	out := models.ModelAvailability{Chain: p.Chain(ctx)}
	if p.catalog != nil {
		out.Available, out.Known = p.catalog.Snapshot()
	}
	return out
}
