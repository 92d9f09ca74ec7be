package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/exilekitchen/buildcraft/internal/craft"
	"github.com/exilekitchen/buildcraft/internal/sanitizer"
)

// CodeInvalidJSON is returned for request bodies that are not a JSON object.
const CodeInvalidJSON = "request.invalid_json"

// statusByCode maps pipeline error codes to HTTP statuses.
var statusByCode = map[string]int{
	craft.CodeQuotaExceeded:   http.StatusTooManyRequests,
	craft.CodeDomainMismatch:  http.StatusUnprocessableEntity,
	craft.CodeModelNotFound:   http.StatusServiceUnavailable,
	craft.CodeInvalidResponse: http.StatusBadGateway,
	craft.CodeUnknown:         http.StatusInternalServerError,
	CodeInvalidJSON:           http.StatusBadRequest,
}

// messages holds the client-facing text per code: English, then Portuguese.
var messages = map[string][2]string{
	craft.CodeQuotaExceeded: {
		"The build generator is busy right now. Please try again shortly.",
		"O gerador de builds está ocupado no momento. Tente novamente em instantes.",
	},
	craft.CodeDomainMismatch: {
		"The generated content was not a Path of Exile build. Please try again.",
		"O conteúdo gerado não era uma build de Path of Exile. Tente novamente.",
	},
	craft.CodeModelNotFound: {
		"No build model is available right now. Please try again later.",
		"Nenhum modelo de builds está disponível agora. Tente novamente mais tarde.",
	},
	craft.CodeInvalidResponse: {
		"The build generator returned an unreadable answer. Please try again.",
		"O gerador de builds retornou uma resposta ilegível. Tente novamente.",
	},
	craft.CodeUnknown: {
		"Something went wrong while crafting your build.",
		"Algo deu errado ao criar sua build.",
	},
	CodeInvalidJSON: {
		"The request body must be a JSON object.",
		"O corpo da requisição deve ser um objeto JSON.",
	},
}

func message(code, locale string) string {
	m, ok := messages[code]
	if !ok {
		m = messages[craft.CodeUnknown]
	}
	if sanitizer.IsSecondaryLocale(locale) {
		return m[1]
	}
	return m[0]
}

// respondCraftError writes the failure body for a pipeline error. Quota
// failures carry retryAfterSeconds and a Retry-After header; domain
// mismatches carry the matched terms in details.
func respondCraftError(w http.ResponseWriter, err error, locale string) {
	code := craft.ErrorCode(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	body := map[string]any{
		"code":  code,
		"error": message(code, locale),
	}

	var quota *craft.QuotaExceededError
	if errors.As(err, &quota) {
		retry := quota.RetryAfterSeconds
		if retry < 1 {
			retry = craft.DefaultRetryAfterSeconds
		}
		body["retryAfterSeconds"] = retry
		w.Header().Set("Retry-After", strconv.Itoa(retry))
	}
	var mismatch *craft.DomainMismatchError
	if errors.As(err, &mismatch) {
		terms := mismatch.Terms
		if terms == nil {
			terms = []string{}
		}
		body["details"] = terms
	}
	respondJSON(w, status, body)
}
