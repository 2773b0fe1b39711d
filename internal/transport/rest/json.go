package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/conceptdost/conceptdost-backend/internal/domain"
)

// Machine-readable failure classifiers carried in the error envelope.
// Clients branch on these rather than parsing messages.
const (
	errorTypeLimitExceeded       = "LIMIT_EXCEEDED"
	errorTypeRecentLoginRequired = "RECENT_LOGIN_REQUIRED"
)

// envelope is the uniform response shape: every endpoint answers with
// {"success": bool, ...}; failures additionally carry a human-readable
// message and, where clients need to branch, an errorType.
type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	ErrorType string `json:"errorType,omitempty"`
	Data      any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message, errorType string) {
	writeJSON(w, status, envelope{Success: false, Message: message, ErrorType: errorType})
}

// respondError maps service errors onto the envelope convention.
func respondError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrLimitExceeded):
		writeFailure(w, http.StatusForbidden,
			"You have used all your free questions. Please Login to continue.",
			errorTypeLimitExceeded)
	case errors.Is(err, domain.ErrRecentLoginRequired):
		writeFailure(w, http.StatusForbidden,
			"Please log in again to delete your account.",
			errorTypeRecentLoginRequired)
	case errors.Is(err, domain.ErrValidation):
		writeFailure(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrUnauthorized):
		writeFailure(w, http.StatusUnauthorized, "unauthorized", "")
	case errors.Is(err, domain.ErrNotFound):
		writeFailure(w, http.StatusNotFound, "not found", "")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeFailure(w, http.StatusConflict, "already exists", "")
	case errors.Is(err, domain.ErrUpstream):
		writeFailure(w, http.StatusBadGateway,
			"The AI provider is unavailable. Its daily request quota may have been exceeded; please try again later.", "")
	case errors.Is(err, domain.ErrMalformedOutput):
		writeFailure(w, http.StatusBadGateway,
			"The AI returned an unexpected response. Please try again.", "")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeFailure(w, http.StatusInternalServerError, "internal server error", "")
	}
}

// decodeJSON parses a request body into dst, rejecting unknown garbage with
// a uniform failure envelope. Returns false if a response was already sent.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body", "")
		return false
	}
	return true
}
