package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mindcheck/internal/service"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// decodeJSON reads a bounded JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return false
	}
	return true
}

var serviceErrors = []struct {
	err    error
	status int
	code   string
}{
	{service.ErrAnswersRequired, http.StatusBadRequest, "answers_required"},
	{service.ErrCredentialsRequired, http.StatusBadRequest, "credentials_required"},
	{service.ErrPasswordTooLong, http.StatusBadRequest, "password_too_long"},
	{service.ErrInvalidReview, http.StatusBadRequest, "invalid_request"},
	{service.ErrEmailTaken, http.StatusBadRequest, "email_taken"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{service.ErrNotApproved, http.StatusForbidden, "not_approved"},
	{service.ErrNotAuthorized, http.StatusForbidden, "not_authorized"},
	{service.ErrAdminNotFound, http.StatusNotFound, "admin_not_found"},
	{service.ErrEntryNotFound, http.StatusNotFound, "entry_not_found"},
}

// writeServiceError maps service sentinels to HTTP responses. Anything else
// is logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	for _, se := range serviceErrors {
		if errors.Is(err, se.err) {
			writeError(w, se.status, se.code, se.err.Error())
			return
		}
	}
	logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
