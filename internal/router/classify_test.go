package router_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/exilekitchen/buildcraft/internal/router"
	"github.com/exilekitchen/buildcraft/pkg/models"
)

type httpError struct {
	code int
	msg  string
}

func (e *httpError) Error() string   { return e.msg }
func (e *httpError) StatusCode() int { return e.code }

type kindedError struct{}

func (kindedError) Error() string                   { return "culinary output" }
func (kindedError) FailureKind() models.FailureKind { return models.FailureDomainMismatch }

func retryInfo(delay string) []map[string]any {
	return []map[string]any{{
		"@type":      "type.googleapis.com/google.rpc.RetryInfo",
		"retryDelay": delay,
	}}
}

func TestClassifyProviderError_GenAIQuota(t *testing.T) {
	err := fmt.Errorf("gemini generate gemini-2.5-pro: %w", genai.APIError{
		Code:    429,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "You exceeded your current quota",
		Details: retryInfo("45.2s"),
	})
	got := router.ClassifyProviderError(err)

	assert.Equal(t, models.FailureQuotaExceeded, got.Kind)
	require.NotNil(t, got.RetryAfterSeconds)
	assert.Equal(t, 46, *got.RetryAfterSeconds)
	require.NotNil(t, got.Status)
	assert.Equal(t, 429, *got.Status)
	assert.Equal(t, "RESOURCE_EXHAUSTED", got.StatusText)
}

func TestClassifyProviderError_GenAIPointerNotFound(t *testing.T) {
	err := &genai.APIError{
		Code:    404,
		Status:  "NOT_FOUND",
		Message: "models/gemini-1.0-pro is not found for API version v1beta",
	}
	got := router.ClassifyProviderError(err)
	assert.Equal(t, models.FailureModelNotFound, got.Kind)
	assert.Nil(t, got.RetryAfterSeconds)
}

func TestClassifyProviderError(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		kind  models.FailureKind
		retry int // 0 means no hint
	}{
		{
			name: "status coder with retry in message",
			err:  &httpError{code: 429, msg: "rate limited, please retry in 7s"},
			kind: models.FailureQuotaExceeded, retry: 7,
		},
		{
			name: "json envelope in message",
			err:  errors.New(`upstream failed: {"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota","retryAfterSeconds":0.2}}`),
			kind: models.FailureQuotaExceeded, retry: 1,
		},
		{
			name: "json retry info details",
			err:  errors.New(`{"error":{"code":429,"message":"slow down","details":[{"@type":"type.googleapis.com/google.rpc.RetryInfo","retryDelay":"12s"}]}}`),
			kind: models.FailureQuotaExceeded, retry: 12,
		},
		{
			name: "quota without hint",
			err:  errors.New("Quota exceeded for metric generate_content_requests"),
			kind: models.FailureQuotaExceeded,
		},
		{
			name: "unsupported model message",
			err:  errors.New("model gemini-9 is not supported for generateContent"),
			kind: models.FailureModelNotFound,
		},
		{
			name: "status coder 404",
			err:  &httpError{code: 404, msg: "nope"},
			kind: models.FailureModelNotFound,
		},
		{
			name: "already kinded",
			err:  fmt.Errorf("craft: %w", kindedError{}),
			kind: models.FailureDomainMismatch,
		},
		{
			name: "unknown",
			err:  errors.New("connection reset by peer"),
			kind: models.FailureUnknown,
		},
		{
			name: "server error",
			err:  genai.APIError{Code: 500, Status: "INTERNAL", Message: "internal error"},
			kind: models.FailureUnknown,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := router.ClassifyProviderError(tc.err)
			if got.Kind != tc.kind {
				t.Fatalf("ClassifyProviderError(%v).Kind = %q, want %q", tc.err, got.Kind, tc.kind)
			}
			switch {
			case tc.retry == 0 && got.RetryAfterSeconds != nil:
				t.Errorf("RetryAfterSeconds = %d, want none", *got.RetryAfterSeconds)
			case tc.retry != 0 && got.RetryAfterSeconds == nil:
				t.Errorf("RetryAfterSeconds = nil, want %d", tc.retry)
			case tc.retry != 0 && *got.RetryAfterSeconds != tc.retry:
				t.Errorf("RetryAfterSeconds = %d, want %d", *got.RetryAfterSeconds, tc.retry)
			}
		})
	}
}

func TestClassifyProviderError_Nil(t *testing.T) {
	assert.Equal(t, models.FailureUnknown, router.ClassifyProviderError(nil).Kind)
}
