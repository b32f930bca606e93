package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/gear-planner/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client may have gone away; nothing left to do.
	json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeError maps err onto an HTTP status and error body. resource names the
// thing being looked up (e.g. "trip") for the default not-found message.
// Unrecognised errors are logged and reported as a bare 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", messageAfter(err, domain.ErrValidation, "invalid request"))
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, "not_found", notFoundMessage(err, resource))
	case errors.Is(err, domain.ErrConflict):
		writeErrorBody(w, http.StatusConflict, "conflict", messageAfter(err, domain.ErrConflict, resource+" conflicts with existing data"))
	case errors.Is(err, domain.ErrUnauthorized):
		writeErrorBody(w, http.StatusUnauthorized, "unauthorized", messageAfter(err, domain.ErrUnauthorized, "authentication required"))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorBody(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// unauthorized is the rejection callback for auth.RequireUser.
func (s *Server) unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, err, "")
}

// tooManyRequests is the limit handler for the auth rate limiter.
func (s *Server) tooManyRequests(w http.ResponseWriter, _ *http.Request) {
	writeErrorBody(w, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
}

// badRequest reports a body or parameter that could not be decoded.
func badRequest(w http.ResponseWriter, message string) {
	writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// messageAfter extracts the human-readable part that follows a wrapped sentinel.
// e.g. "service.TripService.Create: validation error: title is required" → "title is required"
// Returns fallback when the sentinel is the last thing in the chain.
func messageAfter(err, sentinel error, fallback string) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return fallback
}

// notFoundMessage prefers a message supplied by the service ("gear not found")
// and otherwise names the resource.
func notFoundMessage(err error, resource string) string {
	if msg := messageAfter(err, domain.ErrNotFound, ""); strings.HasSuffix(msg, "not found") {
		return msg
	}
	if resource == "" {
		return "not found"
	}
	return resource + " not found"
}
