package recommendations

import (
	"errors"
	"net/http"

	"garden-backend/internal/llm"
)

// Parser failure modes. These stay sentinel errors so the classifier can match
// on type instead of message text.
var (
	ErrInvalidCompletion = errors.New("invalid completion from llm")
	ErrMissingPlants     = errors.New("missing 'plants' field in llm response")
	ErrNoValidPlants     = errors.New("no valid plants in llm response")
)

// Error codes surfaced in the client-facing error body.
const (
	CodeValidationError    = "validation_error"
	CodeServiceUnavailable = "llm_service_unavailable"
	CodeAuthFailed         = "authentication_failed"
	CodeRequestTimeout     = "request_timeout"
	CodeRateLimited        = "rate_limit_exceeded"
	CodeResponseInvalid    = "llm_response_invalid"
	CodeNoValidPlants      = "no_valid_plants"
	CodeInternal           = "recommendation_failed"
)

// Classify maps an internal failure to HTTP status, error code and retry hint.
func Classify(err error) (status int, code string, retry bool) {
	var statusErr *llm.StatusError
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return http.StatusServiceUnavailable, CodeServiceUnavailable, false
	case errors.Is(err, llm.ErrTimeout):
		return http.StatusGatewayTimeout, CodeRequestTimeout, true
	case errors.As(err, &statusErr):
		switch statusErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return http.StatusServiceUnavailable, CodeAuthFailed, false
		case http.StatusTooManyRequests:
			return http.StatusTooManyRequests, CodeRateLimited, true
		default:
			return http.StatusInternalServerError, CodeInternal, true
		}
	case errors.Is(err, ErrInvalidCompletion), errors.Is(err, ErrMissingPlants):
		return http.StatusBadGateway, CodeResponseInvalid, true
	case errors.Is(err, ErrNoValidPlants):
		return http.StatusInternalServerError, CodeNoValidPlants, true
	default:
		return http.StatusInternalServerError, CodeInternal, true
	}
}
