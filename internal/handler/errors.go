package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"blogapi/internal/service"
	"blogapi/internal/validation"
)

const (
	msgUnauthorized       = "unauthorized"
	msgInternal           = "internal server error"
	msgValidationFailed   = "validation failed"
	msgInvalidReference   = "referenced record does not exist"
	msgInvalidCredentials = "invalid credentials"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteError writes {"error": message} with the given status.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// handleServiceError maps service errors onto status codes. Unknown errors are
// logged and answered with a generic 500.
func (h *Handlers) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		writeSuccess(w, ErrorResponse{Error: msgValidationFailed, Fields: verrs.Fields()}, http.StatusBadRequest)
	case errors.Is(err, service.ErrDuplicateEmail):
		WriteError(w, service.ErrDuplicateEmail.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidReference):
		WriteError(w, msgInvalidReference, http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, msgInvalidCredentials, http.StatusUnauthorized)
	case errors.Is(err, service.ErrUnauthorized):
		WriteError(w, msgUnauthorized, http.StatusUnauthorized)
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	default:
		h.Log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		WriteError(w, msgInternal, http.StatusInternalServerError)
	}
}
