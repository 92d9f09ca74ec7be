// Package contracts defines the collaborator interfaces of the build pipeline.
//
// The craft orchestrator and the HTTP handlers depend on these interfaces
// only, so the Gemini driver can be swapped for a fake in tests or for
// another provider in a different deployment with a one-line wiring change
// in pkg/server.
package contracts

import (
	"context"

	"github.com/exilekitchen/buildcraft/pkg/models"
)

// ── AI Provider ─────────────────────────────────────────────

// Provider generates build text from a prompt.
// Implementation: internal/router.GeminiDriver
type Provider interface {
	// Kind returns the provider identifier (e.g. "gemini").
	Kind() string

	// Generate sends prompt to model and returns the raw response text.
	// Errors are returned unclassified; callers run them through
	// router.ClassifyProviderError.
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// ModelLister reports the models the provider currently serves.
// Implementation: internal/router.GeminiDriver
type ModelLister interface {
	// ListModels returns bare model names ("gemini-2.5-flash", not
	// "models/gemini-2.5-flash").
	ListModels(ctx context.Context) ([]string, error)
}

// ── Model Attempt Policy ────────────────────────────────────

// ModelChainer yields the ordered list of models to attempt for one request.
// Implementation: internal/router.Policy
type ModelChainer interface {
	Chain(ctx context.Context) []string

	// Availability returns the chain together with the cached availability
	// snapshot.
	Availability(ctx context.Context) models.ModelAvailability
}

// ── Domain Guardrail ────────────────────────────────────────

// Guardrail classifies generated content for culinary drift.
// Implementation: internal/guardrails.Classifier
type Guardrail interface {
	AssessText(text string) models.DomainAssessment
	AssessBuild(rec *models.BuildRecord) models.DomainAssessment
}
