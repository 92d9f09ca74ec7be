// Package craft implements the build generation pipeline.
//
// A craft request flows through:
//
//	session context → normalize → prompt → model attempt chain →
//	parse provider text → domain guardrail → stamp id/model →
//	serialize in the requested shape and locale
//
// Model-not-found advances to the next model in the chain. Quota exhaustion
// and unknown failures stop the chain immediately; there is no inline retry.
package craft

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/exilekitchen/buildcraft/internal/buildpayload"
	"github.com/exilekitchen/buildcraft/internal/guardrails"
	"github.com/exilekitchen/buildcraft/internal/router"
	"github.com/exilekitchen/buildcraft/internal/session"
	"github.com/exilekitchen/buildcraft/pkg/contracts"
	"github.com/exilekitchen/buildcraft/pkg/middleware"
	"github.com/exilekitchen/buildcraft/pkg/models"
)

// DefaultLocale is used when neither the request nor the session names one.
const DefaultLocale = "en"

var tracer = otel.Tracer("buildcraft/craft")

// Request is one craft call.
type Request struct {
	// Context is the raw session context in either vocabulary.
	Context map[string]any
	Shape   models.OutputShape
	// Locale overrides the session language for sanitizing and messages.
	Locale string
}

// Attempt records one model call.
type Attempt struct {
	Model     string             `json:"model"`
	Failure   models.FailureKind `json:"failure,omitempty"`
	LatencyMs int64              `json:"latency_ms"`
}

// Result is a successful craft.
type Result struct {
	Session  models.BuildSessionContext `json:"session"`
	Record   *models.BuildRecord        `json:"-"`
	Payload  any                        `json:"build"`
	Model    string                     `json:"model"`
	Locale   string                     `json:"locale"`
	Attempts []Attempt                  `json:"attempts"`
}

// Orchestrator runs the pipeline against a provider.
type Orchestrator struct {
	provider   contracts.Provider
	chain      contracts.ModelChainer
	guard      contracts.Guardrail
	serializer *buildpayload.Serializer
	newID      func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithGuardrail replaces the default domain classifier.
func WithGuardrail(g contracts.Guardrail) Option {
	return func(o *Orchestrator) { o.guard = g }
}

// WithSerializer replaces the default serializer, e.g. to apply configured
// labels.
func WithSerializer(s *buildpayload.Serializer) Option {
	return func(o *Orchestrator) { o.serializer = s }
}

// WithIDGenerator replaces uuid.NewString, for tests.
func WithIDGenerator(f func() string) Option {
	return func(o *Orchestrator) { o.newID = f }
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(p contracts.Provider, chain contracts.ModelChainer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider:   p,
		chain:      chain,
		guard:      guardrails.Default,
		serializer: buildpayload.NewSerializer(nil),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ResolveLocale picks the request locale, then the session language, then
// DefaultLocale.
func ResolveLocale(requested string, s models.BuildSessionContext) string {
	if l := strings.TrimSpace(requested); l != "" {
		return l
	}
	if l := strings.TrimSpace(s.Language); l != "" {
		return l
	}
	return DefaultLocale
}

// Craft generates one build.
func (o *Orchestrator) Craft(ctx context.Context, req Request) (*Result, error) {
	sess := session.Normalize(req.Context)
	locale := ResolveLocale(req.Locale, sess)
	shape := req.Shape
	if shape == "" {
		shape = models.ShapeCanonical
	}

	ctx, span := tracer.Start(ctx, "craft.build",
		trace.WithAttributes(
			attribute.String("buildcraft.kitchen", middleware.GetKitchen(ctx)),
			attribute.String("buildcraft.archetype", string(sess.RequestedArchetype)),
			attribute.String("buildcraft.cost_tier", string(sess.CostTierPreference)),
			attribute.String("buildcraft.locale", locale),
			attribute.String("buildcraft.shape", string(shape)),
		),
	)
	defer span.End()

	prompt := BuildPrompt(sess, locale)
	chain := o.chain.Chain(ctx)
	result := &Result{Session: sess, Locale: locale}

	var lastErr error
	for _, model := range chain {
		start := time.Now()
		text, err := o.attempt(ctx, model, prompt)
		att := Attempt{Model: model, LatencyMs: time.Since(start).Milliseconds()}
		if err == nil {
			result.Attempts = append(result.Attempts, att)
			rec, err := o.finish(ctx, model, text, locale)
			if err != nil {
				return nil, o.fail(span, err)
			}
			result.Record = rec
			result.Model = model
			result.Payload = o.serializer.Serialize(rec, shape, locale)

			log.Info().
				Str("model", model).
				Str("build_id", rec.ID).
				Str("kitchen", middleware.GetKitchen(ctx)).
				Int("attempts", len(result.Attempts)).
				Msg("Build crafted")
			return result, nil
		}

		cls := router.ClassifyProviderError(err)
		att.Failure = cls.Kind
		result.Attempts = append(result.Attempts, att)

		switch cls.Kind {
		case models.FailureModelNotFound:
			log.Warn().Str("model", model).Err(err).Msg("Model not available, trying next")
			lastErr = err
			continue
		case models.FailureQuotaExceeded:
			retry := DefaultRetryAfterSeconds
			if cls.RetryAfterSeconds != nil {
				retry = *cls.RetryAfterSeconds
			}
			log.Warn().Str("model", model).Int("retry_after_s", retry).Msg("Provider quota exhausted")
			return nil, o.fail(span, &QuotaExceededError{Model: model, RetryAfterSeconds: retry, Err: err})
		default:
			log.Error().
				Str("model", model).
				Str("kind", string(cls.Kind)).
				Interface("status", cls.Status).
				Str("status_text", cls.StatusText).
				Str("kitchen", middleware.GetKitchen(ctx)).
				Str("user", middleware.GetUser(ctx)).
				Err(err).
				Msg("Provider call failed")
			return nil, o.fail(span, &ProviderError{Model: model, Classification: cls, Err: err})
		}
	}
	return nil, o.fail(span, &ModelUnavailableError{Tried: chain, Err: lastErr})
}

// attempt calls the provider under its own span.
func (o *Orchestrator) attempt(ctx context.Context, model, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "craft.attempt",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("gen_ai.system", o.provider.Kind()),
			attribute.String("gen_ai.request.model", model),
		),
	)
	defer span.End()

	text, err := o.provider.Generate(ctx, model, prompt)
	if err != nil {
		cls := router.ClassifyProviderError(err)
		span.SetAttributes(attribute.String("buildcraft.failure_kind", string(cls.Kind)))
		if cls.Status != nil {
			span.SetAttributes(attribute.Int("http.response.status_code", *cls.Status))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, string(cls.Kind))
		return "", err
	}
	span.SetAttributes(attribute.Int("gen_ai.response.length", len(text)))
	return text, nil
}

// finish parses, guards and stamps the provider text.
func (o *Orchestrator) finish(ctx context.Context, model, text, locale string) (*models.BuildRecord, error) {
	rec, err := buildpayload.Parse([]byte(text))
	if err != nil {
		// Drifted output is often prose; classify it before calling it invalid.
		if a := o.guard.AssessText(text); a.IsInvalid {
			return nil, &DomainMismatchError{Model: model, Terms: a.MatchedTerms, Assessment: a}
		}
		log.Warn().Str("model", model).Err(err).Msg("Provider response holds no build")
		return nil, &InvalidResponseError{Model: model, Err: err}
	}

	if a := o.guard.AssessBuild(rec); a.IsInvalid {
		log.Warn().
			Str("model", model).
			Str("reason", a.Reason).
			Strs("terms", a.MatchedTerms).
			Str("kitchen", middleware.GetKitchen(ctx)).
			Msg("Build rejected by domain guardrail")
		return nil, &DomainMismatchError{Model: model, Terms: a.MatchedTerms, Assessment: a}
	}

	rec.ID = o.newID()
	rec.Model = model
	if rec.Language == "" {
		rec.Language = locale
	}
	for i := range rec.Translations {
		if rec.Translations[i].ID == "" {
			rec.Translations[i].ID = o.newID()
		}
	}
	return rec, nil
}

func (o *Orchestrator) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, ErrorCode(err))
	span.SetAttributes(attribute.String("buildcraft.error_code", ErrorCode(err)))
	return err
}
