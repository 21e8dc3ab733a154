package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/rnadraw/pkg/errors"
)

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsInput(err):
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)}
	if status == http.StatusInternalServerError && resp.Code == "" {
		resp.Code = errors.ErrCodeInternal
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
