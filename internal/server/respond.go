package server

import (
	"encoding/json"
	"net/http"

	"github.com/alexmenard/e2ee-api/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func statusFromCode(code errors.Code) int {
	switch code {
	case errors.CodeInvalidArgument:
		return http.StatusBadRequest
	case errors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case errors.CodePermissionDenied:
		return http.StatusForbidden
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeAlreadyExists:
		return http.StatusConflict
	case errors.CodeFailedPrecondition:
		return http.StatusUnprocessableEntity
	case errors.CodeResourceExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps an error chain to a status code and a flat error body.
// Unclassified errors never leak their text to the client.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromCode(errors.CodeOf(err))

	message := "internal server error"
	var app *errors.AppError
	if errors.As(err, &app) {
		message = app.Message
	}

	writeJSON(w, status, map[string]string{"error": message})
}
