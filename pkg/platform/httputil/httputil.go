// Package httputil centralizes JSON encoding and error translation for HTTP
// handlers so every endpoint emits the same envelopes.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "riskscope/pkg/domain-errors"
)

// Validatable is implemented by request types that parse and validate
// themselves after JSON decoding.
type Validatable interface {
	Validate() error
}

// FieldError is implemented by validation errors that identify the offending
// input field, letting the UI highlight it.
type FieldError interface {
	error
	Field() string
	Reason() string
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope.
// Internal errors omit the description so infrastructure details never reach
// clients; field-level validation errors include the field and reason tag.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}

	if code != dErrors.CodeInternal {
		if msg := dErrors.MessageOf(err); msg != "" {
			body["error_description"] = msg
		}
	}

	var fieldErr FieldError
	if errors.As(err, &fieldErr) {
		code = dErrors.CodeValidation
		body["error"] = string(code)
		body["error_description"] = fieldErr.Error()
		body["field"] = fieldErr.Field()
		body["reason"] = fieldErr.Reason()
	}

	WriteJSON(w, statusFor(code), body)
}

// DecodeAndPrepare decodes the JSON request body into T and runs its
// validation, writing the error response itself on failure. Handlers use the
// second return value to bail out early.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req := new(T)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "failed to decode request body",
				"request_id", requestID,
				"error", err,
			)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body must be valid JSON"))
		return nil, false
	}
	if v, ok := any(req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			WriteError(w, err)
			return nil, false
		}
	}
	return req, true
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
