package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/exilekitchen/buildcraft/internal/api"
	"github.com/exilekitchen/buildcraft/internal/api/handlers"
	"github.com/exilekitchen/buildcraft/internal/config"
	"github.com/exilekitchen/buildcraft/internal/craft"
	"github.com/exilekitchen/buildcraft/pkg/models"
)

// mockProvider answers every model with the same reply.
type mockProvider struct {
	text string
	err  error
}

func (p *mockProvider) Kind() string { return "mock" }
func (p *mockProvider) Generate(ctx context.Context, model, prompt string) (string, error) {
	return p.text, p.err
}

type staticChain []string

func (c staticChain) Chain(ctx context.Context) []string { return c }
func (c staticChain) Availability(ctx context.Context) models.ModelAvailability {
	return models.ModelAvailability{Chain: c}
}

const poeBuild = `{"build_title":"A mid_tier Cyclone Slayer","build_steps":["Buy a \"mirror_tier\" weapon"],"build_cost_tier":"mid_tier","build_items":[{"name":"Chaos Orb","quantity":"5","unit":"x"}]}`

func newServer(t *testing.T, p *mockProvider) *httptest.Server {
	t.Helper()
	chain := staticChain{"gemini-2.5-flash", "gemini-2.5-flash-lite"}
	h := handlers.New(craft.NewOrchestrator(p, chain), chain, nil)
	cfg := &config.Config{Version: "test", CORS: config.CORSConfig{AllowedOrigins: []string{"*"}}}
	srv := httptest.NewServer(api.NewRouter(cfg, h))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealth(t *testing.T) {
	srv := newServer(t, &mockProvider{})
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCraft_Canonical(t *testing.T) {
	srv := newServer(t, &mockProvider{text: poeBuild})
	resp, body := post(t, srv, "/api/v1/builds/craft", `{"requested_archetype":"mapper"}`, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	build := body["build"].(map[string]any)
	assert.Equal(t, "A Mid Tier Cyclone Slayer", build["build_title"])
	assert.Equal(t, "mid_tier", build["build_cost_tier"])
	assert.Equal(t, "gemini-2.5-flash", body["model"])
	assert.NotContains(t, body, "recipe")
}

func TestCraft_LegacyAliasPortuguese(t *testing.T) {
	srv := newServer(t, &mockProvider{text: poeBuild})
	resp, body := post(t, srv, "/api/v1/recipes/generate", `{"who_is_eating":["u1"]}`, map[string]string{"Accept-Language": "pt-BR,pt;q=0.9"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pt-BR", body["locale"])
	recipe := body["recipe"].(map[string]any)
	steps := recipe["step_by_step"].([]any)
	assert.Equal(t, "Buy a Nível Espelho weapon", steps[0])
	assert.Equal(t, "mid_tier", recipe["difficulty"])
}

func TestCraft_QuotaRetryAfter(t *testing.T) {
	srv := newServer(t, &mockProvider{err: genai.APIError{
		Code:    429,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota",
		Details: []map[string]any{{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "45.2s"}},
	}})
	resp, body := post(t, srv, "/api/v1/builds/craft", `{}`, nil)

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "46", resp.Header.Get("Retry-After"))
	assert.Equal(t, float64(46), body["retryAfterSeconds"])
	assert.Equal(t, craft.CodeQuotaExceeded, body["code"])
}

func TestCraft_DomainMismatch(t *testing.T) {
	srv := newServer(t, &mockProvider{text: `{"recipe_title":"Pasta with olive oil","step_by_step":["Boil water"]}`})
	resp, body := post(t, srv, "/api/v1/builds/craft?locale=pt-BR", `{}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, craft.CodeDomainMismatch, body["code"])
	assert.Contains(t, body["details"], "olive oil")
	assert.Contains(t, body["error"], "Path of Exile")
	assert.Contains(t, body["error"], "não era")
}

func TestCraft_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		p      *mockProvider
		status int
		code   string
	}{
		{"model not found", &mockProvider{err: genai.APIError{Code: 404, Status: "NOT_FOUND", Message: "gone"}}, http.StatusServiceUnavailable, craft.CodeModelNotFound},
		{"invalid response", &mockProvider{text: "no json here"}, http.StatusBadGateway, craft.CodeInvalidResponse},
		{"unknown", &mockProvider{err: genai.APIError{Code: 500, Status: "INTERNAL", Message: "boom"}}, http.StatusInternalServerError, craft.CodeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := post(t, newServer(t, tc.p), "/api/v1/builds/craft", `{}`, nil)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestBadJSON(t *testing.T) {
	srv := newServer(t, &mockProvider{text: poeBuild})
	for _, path := range []string{"/api/v1/builds/craft", "/api/v1/builds/normalize", "/api/v1/guardrails/domain"} {
		resp, body := post(t, srv, path, `{not json`, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.Equal(t, handlers.CodeInvalidJSON, body["code"], path)
	}
	resp, _ := post(t, srv, "/api/v1/sessions/normalize", `["array"]`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNormalizeBuild(t *testing.T) {
	srv := newServer(t, &mockProvider{})
	resp, body := post(t, srv, "/api/v1/builds/normalize?shape=legacy&locale=en",
		`{"recipe_title":"Go \"mid_tier\"","ingredients":["{\"name\":\"Chaos Orb\",\"quantity\":2}"],"difficulty":"easy"}`, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Go Mid Tier", body["build_title"])
	assert.Equal(t, "Go Mid Tier", body["recipe_title"])
	assert.Equal(t, "budget", body["build_cost_tier"])
	items := body["ingredients"].([]any)
	assert.Equal(t, "2", items[0].(map[string]any)["quantity"])
}

func TestSanitizeBuild(t *testing.T) {
	srv := newServer(t, &mockProvider{})
	resp, body := post(t, srv, "/api/v1/builds/sanitize", `{"recipe_title":"a mid_tier plan","difficulty":"mid_tier","language":"pt-BR"}`, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "a Intermediário plan", body["recipe_title"])
	assert.Equal(t, "mid_tier", body["difficulty"])
}

func TestAssessDomain(t *testing.T) {
	srv := newServer(t, &mockProvider{})

	_, body := post(t, srv, "/api/v1/guardrails/domain", `{"text":"pasta tomato olive oil"}`, nil)
	assert.Equal(t, true, body["isInvalid"])

	_, body = post(t, srv, "/api/v1/guardrails/domain", `{"build_title":"Path of Exile mapper build with atlas and chaos orb"}`, nil)
	assert.Equal(t, false, body["isInvalid"])
}

func TestNormalizeSession(t *testing.T) {
	srv := newServer(t, &mockProvider{})
	_, body := post(t, srv, "/api/v1/sessions/normalize", `{"who_is_eating":"a, b","difficulty":"hard","prep_time_preference":"plenty"}`, nil)

	canonical := body["canonical"].(map[string]any)
	legacy := body["legacy"].(map[string]any)
	assert.Equal(t, []any{"a", "b"}, canonical["party_member_ids"])
	assert.Equal(t, "high_investment", canonical["cost_tier_preference"])
	assert.Equal(t, "hard", legacy["difficulty_preference"])
	assert.Equal(t, "plenty", legacy["prep_time_preference"])
}

func TestModelChain(t *testing.T) {
	srv := newServer(t, &mockProvider{})
	resp, err := http.Get(srv.URL + "/api/v1/models/chain")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body models.ModelAvailability
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.5-flash-lite"}, body.Chain)
	assert.False(t, body.Known)
}
