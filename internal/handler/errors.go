package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/photo-journal/internal/domain"
	"github.com/pkordes/photo-journal/internal/handler/gen"
	"github.com/pkordes/photo-journal/internal/store"
)

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the message because the handler knows what was looked up.
func notFoundBody(message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
func validationBody(err error) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a request rejected before it
// reached the service layer (e.g. a malformed multipart body).
func requestBody(message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: "bad_request", Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.FormController.Submit: validation error: photo is required" → "photo is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return msg
}

// writeJSON encodes v with the given status. Encoding errors are ignored:
// the status line has already been sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorStatus maps an unexpected error to a status. An unreadable store maps
// to 503 so clients can retry.
func errorStatus(err error) int {
	if errors.Is(err, store.ErrUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// serverError logs err and answers with a generic JSON error. It is also the
// strict server's response error handler.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeJSON(w, status, gen.ErrorResponse{Error: gen.ErrorDetail{
		Code:    "internal_error",
		Message: http.StatusText(status),
	}})
}

// requestError answers a request whose parameters could not be bound.
func (s *Server) requestError(w http.ResponseWriter, _ *http.Request, err error) {
	writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
}

// isValidation reports whether err is a user-correctable input problem.
func isValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}
