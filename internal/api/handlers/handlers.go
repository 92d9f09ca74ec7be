// Package handlers implements the HTTP handlers for the buildcraft API.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/exilekitchen/buildcraft/internal/buildpayload"
	"github.com/exilekitchen/buildcraft/internal/craft"
	"github.com/exilekitchen/buildcraft/internal/guardrails"
	"github.com/exilekitchen/buildcraft/internal/sanitizer"
	"github.com/exilekitchen/buildcraft/internal/session"
	"github.com/exilekitchen/buildcraft/pkg/contracts"
	"github.com/exilekitchen/buildcraft/pkg/models"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handlers holds all handler dependencies.
type Handlers struct {
	Orchestrator *craft.Orchestrator
	Models       contracts.ModelChainer
	Guard        contracts.Guardrail
	Sanitizer    *sanitizer.Sanitizer
	Serializer   *buildpayload.Serializer
}

// New creates a Handlers instance. san may be nil for the default labels.
func New(o *craft.Orchestrator, chainer contracts.ModelChainer, san *sanitizer.Sanitizer) *Handlers {
	if san == nil {
		san = sanitizer.Default
	}
	return &Handlers{
		Orchestrator: o,
		Models:       chainer,
		Guard:        guardrails.Default,
		Sanitizer:    san,
		Serializer:   buildpayload.NewSerializer(san),
	}
}

// ══════════════════════════════════════════════════════════════
// ── Build Handlers ───────────────────────────────────────────
// ══════════════════════════════════════════════════════════════

// CraftBuild generates a build. Shape defaults to canonical.
func (h *Handlers) CraftBuild(w http.ResponseWriter, r *http.Request) {
	h.craft(w, r, models.ShapeCanonical)
}

// GenerateRecipe is the recipe-era alias of CraftBuild. Shape defaults to
// legacy.
func (h *Handlers) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	h.craft(w, r, models.ShapeLegacy)
}

func (h *Handlers) craft(w http.ResponseWriter, r *http.Request, defaultShape models.OutputShape) {
	raw, err := decodeObject(r)
	if err != nil {
		respondBadRequest(w, r, err)
		return
	}

	shape := defaultShape
	if q := r.URL.Query().Get("shape"); q != "" {
		shape = buildpayload.ParseShape(q)
	}
	locale := ResolveLocale(r, session.Normalize(raw).Language)

	res, err := h.Orchestrator.Craft(r.Context(), craft.Request{
		Context: raw,
		Shape:   shape,
		Locale:  locale,
	})
	if err != nil {
		respondCraftError(w, err, locale)
		return
	}

	body := map[string]any{
		"build":    res.Payload,
		"model":    res.Model,
		"locale":   res.Locale,
		"attempts": res.Attempts,
	}
	if shape == models.ShapeLegacy {
		body["recipe"] = res.Payload
	}
	respondJSON(w, http.StatusOK, body)
}

// NormalizeBuild normalizes and serializes a raw build payload without
// calling the provider.
func (h *Handlers) NormalizeBuild(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeObject(r)
	if err != nil {
		respondBadRequest(w, r, err)
		return
	}
	rec := buildpayload.Normalize(raw)
	locale := ResolveLocale(r, rec.Language)
	shape := buildpayload.ParseShape(r.URL.Query().Get("shape"))
	respondJSON(w, http.StatusOK, h.Serializer.Serialize(rec, shape, locale))
}

// SanitizeBuild rewrites leaked enum tokens in the narrative fields of a raw
// build payload, keeping its vocabulary and every other field as sent.
func (h *Handlers) SanitizeBuild(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeObject(r)
	if err != nil {
		respondBadRequest(w, r, err)
		return
	}
	lang, _ := raw["language"].(string)
	respondJSON(w, http.StatusOK, h.Sanitizer.Fields(raw, ResolveLocale(r, lang)))
}

// ══════════════════════════════════════════════════════════════
// ── Guardrail / Session / Model Handlers ─────────────────────
// ══════════════════════════════════════════════════════════════

// AssessDomain classifies either {"text": "..."} or a build payload.
func (h *Handlers) AssessDomain(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeObject(r)
	if err != nil {
		respondBadRequest(w, r, err)
		return
	}
	if text, ok := raw["text"].(string); ok {
		respondJSON(w, http.StatusOK, h.Guard.AssessText(text))
		return
	}
	respondJSON(w, http.StatusOK, h.Guard.AssessBuild(buildpayload.Normalize(raw)))
}

// NormalizeSession returns both vocabulary projections of a session context.
func (h *Handlers) NormalizeSession(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeObject(r)
	if err != nil {
		respondBadRequest(w, r, err)
		return
	}
	ctx := session.Normalize(raw)
	respondJSON(w, http.StatusOK, map[string]any{
		"canonical": session.ToCanonical(ctx),
		"legacy":    session.ToLegacy(ctx),
	})
}

// ModelChain reports the attempt chain and the availability snapshot.
func (h *Handlers) ModelChain(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.Models.Availability(r.Context()))
}

// ── Helpers ─────────────────────────────────────────────────

var errNotObject = errors.New("request body must be a JSON object")

// decodeObject reads the body as a JSON object. An empty body is an empty
// object.
func decodeObject(r *http.Request) (map[string]any, error) {
	raw := map[string]any{}
	if r.Body == nil {
		return raw, nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return raw, nil
		}
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	log.Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected request body")
	locale := ResolveLocale(r, "")
	respondJSON(w, http.StatusBadRequest, map[string]any{
		"code":  CodeInvalidJSON,
		"error": message(CodeInvalidJSON, locale),
	})
}

func trimmed(s string) string { return strings.TrimSpace(s) }
