package api

import (
	"encoding/json"
	"net/http"

	"github.com/backtoschool/progcompare/pkg/errors"
	"github.com/backtoschool/progcompare/pkg/observability"
)

type errorBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an error code to its HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidProgram,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeProgramNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeAIUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes err as a JSON error. Errors without a code are internal
// and their text is never shown to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		msg = "internal server error"
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.loggerFrom(r.Context()).Error("request failed", "code", code, "error", err)
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	}
	s.writeJSON(w, status, errorBody{Code: string(code), Message: msg})
}
