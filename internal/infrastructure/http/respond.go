package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"inventory-admin/internal/application"
	infraconfig "inventory-admin/internal/infrastructure/config"
	"inventory-admin/internal/infrastructure/logx"
	"inventory-admin/internal/transaction"

	"go.uber.org/zap"
)

type errorBody struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	writeJSON(w, status, errorBody{Code: status, Message: msg, Errors: details})
}

// fail maps a service error onto the JSON error envelope. Server errors
// never echo the cause to the client.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case transaction.IsValidation(err):
		writeError(w, http.StatusBadRequest, "invalid input", transaction.Violations(err)...)
	case errors.Is(err, application.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad request")
	case errors.Is(err, application.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, application.ErrInsufficientStock):
		writeError(w, http.StatusConflict, "insufficient stock")
	case errors.Is(err, application.ErrDuplicateRequest):
		writeError(w, http.StatusConflict, "duplicate request")
	case errors.Is(err, application.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		logx.WithFields(r.Context()).Error("http.internal_error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decode reads a JSON body into v. Unknown fields are rejected.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, infraconfig.DefaultMaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", application.ErrBadRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON body", application.ErrBadRequest)
	}
	return nil
}
