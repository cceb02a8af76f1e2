package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"checkout-kart/internal/middleware"
	"checkout-kart/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a model.ErrorResponse with the given status code.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.CorrelationIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("correlation_id", correlationID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	})
}

// writeServiceError maps a service error to its HTTP status. Domain errors
// carry the message shown to the buyer; anything else is reported as a
// network error without leaking details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("service error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeNetworkError, model.ErrNetworkError.Message, logger)
		return
	}

	writeError(w, r, statusFor(de), de.Code, err.Error(), logger)
}

// statusFor returns the HTTP status for a domain error.
func statusFor(de *model.DomainError) int {
	switch de.Code {
	case model.ErrCodeMissingField, model.ErrCodeInvalidCard, model.ErrCodeInvalidJSON, model.ErrCodeInvalidID:
		return http.StatusBadRequest
	case model.ErrCodeBuyerNotFound, model.ErrCodeProductNotFound, model.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusUnprocessableEntity
	}
}

// decodeJSON decodes a bounded JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
