package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/intakelog/internal/domain"
	"github.com/heartmarshall/intakelog/pkg/ctxutil"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError is one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps err onto a status code: validation 400, unavailable store
// 503, anything else 500. Server-side failures are logged.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		resp := ErrorResponse{Error: domain.ErrValidation.Error()}
		for _, fe := range ve.Errors {
			resp.Fields = append(resp.Fields, FieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	case errors.Is(err, domain.ErrStoreUnavailable):
		logFailure(r, log, slog.LevelWarn, err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: domain.ErrStoreUnavailable.Error()})
		return
	default:
		logFailure(r, log, slog.LevelError, err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func logFailure(r *http.Request, log *slog.Logger, level slog.Level, err error) {
	attrs := append(ctxutil.LogAttrs(r.Context()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	log.LogAttrs(r.Context(), level, "request failed", attrs...)
}
