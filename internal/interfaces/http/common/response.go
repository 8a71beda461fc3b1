package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *zap.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Warn("json encode failed", zap.Error(err))
	}
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteError maps domain errors onto HTTP statuses. Unknown errors are logged and answered with 500.
func WriteError(logger *zap.Logger, w http.ResponseWriter, err error) {
	status, body := ErrorStatus(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}
	WriteJSON(logger, w, status, body)
}

// ErrorStatus returns the status code and body for err.
func ErrorStatus(err error) (int, ErrorResponse) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Fields: verr.Fields}
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "not found"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Error: "you must own a store in order to edit it"}
	case errors.Is(err, domain.ErrSlugTaken):
		return http.StatusConflict, ErrorResponse{Error: "could not allocate a unique slug, try again"}
	case errors.Is(err, domain.ErrStorageUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error"}
	}
}

// DecodeJSON reads a size-limited JSON body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBody))
	return dec.Decode(dst)
}
