package router

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/exilekitchen/buildcraft/pkg/models"
)

var (
	modelNotFoundPattern = regexp.MustCompile(`(?i)models?\b.*\b(is not found for api version|is not supported for generatecontent|not found)`)
	quotaPattern         = regexp.MustCompile(`(?i)quota|rate.?limit|resource.?exhausted|too many requests`)
	retryInPattern       = regexp.MustCompile(`(?i)retry (?:in|after) ([0-9]+(?:\.[0-9]+)?)\s*s`)
)

// kinded is implemented by errors that already know their failure kind, such
// as the craft pipeline's domain mismatch.
type kinded interface {
	FailureKind() models.FailureKind
}

// statusCoder is implemented by HTTP-ish client errors.
type statusCoder interface {
	StatusCode() int
}

// failurePayload is the provider error reduced to the fields classification
// looks at.
type failurePayload struct {
	status     *int
	statusText string
	message    string
	details    []map[string]any
	retryAfter *float64
}

// ClassifyProviderError inspects a provider failure and returns its kind
// together with the status, message and retry hint. It never panics; a nil
// error classifies as unknown.
func ClassifyProviderError(err error) models.ProviderFailureClassification {
	if err == nil {
		return models.ProviderFailureClassification{Kind: models.FailureUnknown}
	}
	p := extractPayload(err)
	out := models.ProviderFailureClassification{
		Kind:       models.FailureUnknown,
		Status:     p.status,
		StatusText: p.statusText,
		Message:    p.message,
	}

	var k kinded
	switch {
	case errors.As(err, &k):
		out.Kind = k.FailureKind()
	case p.is(http.StatusTooManyRequests, "RESOURCE_EXHAUSTED"):
		out.Kind = models.FailureQuotaExceeded
	case p.is(http.StatusNotFound, "NOT_FOUND"):
		out.Kind = models.FailureModelNotFound
	case modelNotFoundPattern.MatchString(p.message):
		out.Kind = models.FailureModelNotFound
	case quotaPattern.MatchString(p.message) || quotaPattern.MatchString(p.statusText):
		out.Kind = models.FailureQuotaExceeded
	}

	if out.Kind == models.FailureQuotaExceeded {
		if secs, ok := p.retrySeconds(); ok {
			out.RetryAfterSeconds = &secs
		}
	}
	return out
}

func (p *failurePayload) is(code int, status string) bool {
	return (p.status != nil && *p.status == code) || strings.EqualFold(p.statusText, status)
}

// extractPayload pulls the structured fields out of err, preferring the genai
// SDK error, then any StatusCode() error, then JSON embedded in the message.
func extractPayload(err error) failurePayload {
	var p failurePayload

	var apiErr genai.APIError
	var apiPtr *genai.APIError
	switch {
	case errors.As(err, &apiPtr) && apiPtr != nil:
		p.fromAPIError(*apiPtr)
	case errors.As(err, &apiErr):
		p.fromAPIError(apiErr)
	default:
		var sc statusCoder
		if errors.As(err, &sc) {
			code := sc.StatusCode()
			p.status = &code
		}
		p.message = err.Error()
		if obj, ok := jsonInMessage(p.message); ok {
			p.fromJSON(obj)
		}
	}
	if p.message == "" {
		p.message = err.Error()
	}
	return p
}

func (p *failurePayload) fromAPIError(e genai.APIError) {
	if e.Code != 0 {
		code := e.Code
		p.status = &code
	}
	p.statusText = e.Status
	p.message = e.Message
	p.details = e.Details
}

func (p *failurePayload) fromJSON(obj map[string]any) {
	if inner, ok := obj["error"].(map[string]any); ok {
		obj = inner
	}
	if code, ok := number(obj["code"]); ok {
		c := int(code)
		p.status = &c
	}
	if s, ok := obj["status"].(string); ok {
		p.statusText = s
	}
	if m, ok := obj["message"].(string); ok && m != "" {
		p.message = m
	}
	if details, ok := obj["details"].([]any); ok {
		for _, d := range details {
			if m, ok := d.(map[string]any); ok {
				p.details = append(p.details, m)
			}
		}
	}
	for _, key := range []string{"retryAfterSeconds", "retry_after_seconds", "retry_after", "retryAfter"} {
		if f, ok := number(obj[key]); ok {
			p.retryAfter = &f
			break
		}
	}
}

// jsonInMessage decodes the whole message, or its suffix starting at the
// first '{', as a JSON object.
func jsonInMessage(msg string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(msg), &obj); err == nil && obj != nil {
		return obj, true
	}
	i := strings.IndexByte(msg, '{')
	if i < 0 {
		return nil, false
	}
	if err := json.Unmarshal([]byte(msg[i:]), &obj); err == nil && obj != nil {
		return obj, true
	}
	return nil, false
}

// retrySeconds returns the provider's retry hint rounded up to whole seconds,
// minimum 1.
func (p *failurePayload) retrySeconds() (int, bool) {
	if p.retryAfter != nil {
		return ceilSeconds(*p.retryAfter)
	}
	for _, d := range p.details {
		typ, _ := d["@type"].(string)
		if !strings.HasSuffix(typ, "RetryInfo") {
			continue
		}
		switch v := d["retryDelay"].(type) {
		case string:
			if dur, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
				return ceilSeconds(dur.Seconds())
			}
			if f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "s"), 64); err == nil {
				return ceilSeconds(f)
			}
		case float64:
			return ceilSeconds(v)
		}
	}
	for _, d := range p.details {
		for _, key := range []string{"retryAfterSeconds", "retry_after"} {
			if f, ok := number(d[key]); ok {
				return ceilSeconds(f)
			}
		}
	}
	if m := retryInPattern.FindStringSubmatch(p.message); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			return ceilSeconds(f)
		}
	}
	return 0, false
}

func ceilSeconds(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	s := int(math.Ceil(f))
	if s < 1 {
		s = 1
	}
	return s, true
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}
