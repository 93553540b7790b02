// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// Responder converts application errors into HTTP responses with a
// consistent JSON body.
type Responder struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewResponder(logger Logger) *Responder {
	return &Responder{logger: logger}
}

// statusFor maps error codes onto HTTP status codes.
func statusFor(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodePaymentBadPayload, ErrCodeUnknownProduct:
		return http.StatusBadRequest
	case ErrCodePaymentBadSig:
		return http.StatusBadRequest
	case ErrCodeTokenNotFound, ErrCodeTokenExpired:
		return http.StatusUnauthorized
	case ErrCodeClientNotFound, ErrCodeOperationNotFound:
		return http.StatusNotFound
	case ErrCodeDuplicateClient, ErrCodeDuplicateIdentity:
		return http.StatusConflict
	case ErrCodeGenerationFailed, ErrCodeOutputSchemaMismatch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError normalizes err to a StandardError, logs it, and writes the
// JSON error body with the mapped status code.
func (r *Responder) WriteError(w http.ResponseWriter, err error) {
	stdErr := AsStandard(err)

	r.logger.Error("request failed", map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"message":   stdErr.Message,
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(stdErr.Code))
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    stdErr.Code,
			"message": stdErr.Message,
			"details": stdErr.Details,
		},
	})
}
