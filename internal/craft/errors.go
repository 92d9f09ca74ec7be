package craft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/exilekitchen/buildcraft/pkg/models"
)

// Stable error codes surfaced to API clients.
const (
	CodeQuotaExceeded   = "gemini.quota_exceeded"
	CodeDomainMismatch  = "gemini.domain_mismatch"
	CodeModelNotFound   = "gemini.model_not_found"
	CodeInvalidResponse = "gemini.invalid_response"
	CodeUnknown         = "gemini.unknown"
)

// DefaultRetryAfterSeconds is reported when the provider gives no retry hint.
const DefaultRetryAfterSeconds = 60

// QuotaExceededError is returned as soon as any model reports quota
// exhaustion. The remaining chain is not attempted.
type QuotaExceededError struct {
	Model             string
	RetryAfterSeconds int
	Err               error
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded on %s, retry after %ds", e.Model, e.RetryAfterSeconds)
}

func (e *QuotaExceededError) Unwrap() error { return e.Err }

// FailureKind implements the router's kinded interface.
func (e *QuotaExceededError) FailureKind() models.FailureKind { return models.FailureQuotaExceeded }

// DomainMismatchError reports culinary drift in the generated build. It is
// never auto-corrected.
type DomainMismatchError struct {
	Model      string
	Terms      []string
	Assessment models.DomainAssessment
}

func (e *DomainMismatchError) Error() string {
	return fmt.Sprintf("%s produced off-domain content (%s): %s", e.Model, e.Assessment.Reason, strings.Join(e.Terms, ", "))
}

func (e *DomainMismatchError) FailureKind() models.FailureKind { return models.FailureDomainMismatch }

// ModelUnavailableError is returned when every model in the chain reported
// model-not-found.
type ModelUnavailableError struct {
	Tried []string
	Err   error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("no model available (tried %s): %v", strings.Join(e.Tried, ", "), e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

func (e *ModelUnavailableError) FailureKind() models.FailureKind { return models.FailureModelNotFound }

// InvalidResponseError means the provider answered with text that holds no
// decodable build.
type InvalidResponseError struct {
	Model string
	Err   error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response from %s: %v", e.Model, e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// ProviderError wraps a provider failure that is neither quota nor
// model-not-found.
type ProviderError struct {
	Model          string
	Classification models.ProviderFailureClassification
	Err            error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider call to %s failed: %v", e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) FailureKind() models.FailureKind { return models.FailureUnknown }

// ErrorCode maps err to its client-facing code. nil maps to "".
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var (
		quota   *QuotaExceededError
		domain  *DomainMismatchError
		unavail *ModelUnavailableError
		invalid *InvalidResponseError
	)
	switch {
	case errors.As(err, &quota):
		return CodeQuotaExceeded
	case errors.As(err, &domain):
		return CodeDomainMismatch
	case errors.As(err, &unavail):
		return CodeModelNotFound
	case errors.As(err, &invalid):
		return CodeInvalidResponse
	default:
		return CodeUnknown
	}
}
